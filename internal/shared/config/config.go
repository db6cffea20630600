package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/samber/lo"
	"github.com/samber/oops"

	"github.com/dailydonald/ragefeed/internal/modules/news/domain"
	"github.com/dailydonald/ragefeed/internal/shared/errors"
)

type Config struct {
	HTTPPort         string              `koanf:"http_port"`
	CacheTTL         int                 `koanf:"cache_ttl"`     // seconds
	FetchTimeout     int                 `koanf:"fetch_timeout"` // seconds
	UserAgent        string              `koanf:"user_agent"`
	RateLimitRPS     float64             `koanf:"rate_limit_rps"`
	RateLimitBurst   int                 `koanf:"rate_limit_burst"`
	Feeds            []domain.FeedSource `koanf:"feeds"`
	TelegramBotToken string              `koanf:"telegram_bot_token"`
	TelegramChatID   string              `koanf:"telegram_chat_id"`
}

// defaultFeeds is the static source list used when the config file does
// not override it.
var defaultFeeds = []domain.FeedSource{
	{Name: "Google News", URL: "https://news.google.com/rss/search?q=trump&hl=en-US&gl=US&ceid=US:en"},
	{Name: "The Guardian", URL: "https://www.theguardian.com/us-news/donaldtrump/rss"},
	{Name: "NPR Politics", URL: "https://feeds.npr.org/1014/rss.xml"},
	{Name: "Politico", URL: "https://rss.politico.com/politics-news.xml"},
	{Name: "BBC News", URL: "https://feeds.bbci.co.uk/news/world/us_and_canada/rss.xml"},
	{Name: "Reuters", URL: "https://www.reutersagency.com/feed/?taxonomy=best-topics&post_type=best"},
	{Name: "NY Times", URL: "https://rss.nytimes.com/services/xml/rss/nyt/Politics.xml"},
	{Name: "Washington Post", URL: "https://feeds.washingtonpost.com/rss/politics"},
	{Name: "CBS News", URL: "https://www.cbsnews.com/latest/rss/politics"},
	{Name: "ABC News", URL: "https://abcnews.go.com/abcnews/politicsheadlines"},
	{Name: "The Hill", URL: "https://thehill.com/feed/"},
	{Name: "Axios", URL: "https://api.axios.com/feed/politics/"},
}

func Load() (*Config, error) {
	k := koanf.New(".")

	// Try to load config file from various formats
	configFiles := []string{
		"config.yaml",
		"config.yml",
		"config.json",
		"config.toml",
	}

	configFile, found := lo.Find(configFiles, func(file string) bool {
		_, err := os.Stat(file)
		return err == nil
	})

	if found {
		var parser koanf.Parser
		ext := filepath.Ext(configFile)

		switch ext {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		case ".toml":
			parser = toml.Parser()
		default:
			return nil, oops.Errorf("unsupported config file extension: %s", ext)
		}

		if err := k.Load(file.Provider(configFile), parser); err != nil {
			return nil, oops.With("config_file", configFile).Wrap(err)
		}
	}

	// Environment variables override config file values
	if err := k.Load(env.Provider("", ".", func(s string) string {
		return strings.ToLower(s)
	}), nil); err != nil {
		return nil, oops.With("context", "loading environment variables").Wrap(err)
	}

	// Set defaults
	if !k.Exists("http_port") {
		k.Set("http_port", "8080")
	}
	if !k.Exists("cache_ttl") {
		k.Set("cache_ttl", 60)
	}
	if !k.Exists("fetch_timeout") {
		k.Set("fetch_timeout", 10)
	}
	if !k.Exists("user_agent") {
		k.Set("user_agent", "Mozilla/5.0 (compatible; RageFeed/1.0)")
	}
	if !k.Exists("rate_limit_rps") {
		k.Set("rate_limit_rps", 5.0)
	}
	if !k.Exists("rate_limit_burst") {
		k.Set("rate_limit_burst", 10)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, oops.With("context", "unmarshaling config").Wrap(err)
	}

	if len(cfg.Feeds) == 0 {
		cfg.Feeds = defaultFeeds
	}

	for _, feed := range cfg.Feeds {
		if feed.Name == "" || feed.URL == "" {
			return nil, oops.With("feed_name", feed.Name, "feed_url", feed.URL).Wrap(errors.ErrInvalidFeedSource)
		}
	}

	return &cfg, nil
}
