package di

import (
	"log/slog"
	"time"

	"github.com/go-telegram/bot"
	"github.com/samber/do/v2"
	"github.com/samber/oops"

	feedService "github.com/dailydonald/ragefeed/internal/modules/feed/service"
	"github.com/dailydonald/ragefeed/internal/modules/news/fetcher"
	newsService "github.com/dailydonald/ragefeed/internal/modules/news/service"
	notifyService "github.com/dailydonald/ragefeed/internal/modules/notify/service"
	"github.com/dailydonald/ragefeed/internal/shared/config"
	httpServer "github.com/dailydonald/ragefeed/internal/transport/http"
)

// Setup initializes the dependency injection container
func Setup() (do.Injector, error) {
	injector := do.New()

	// Register Config
	do.Provide(injector, func(i do.Injector) (*config.Config, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, oops.With("context", "failed to load config").Wrap(err)
		}
		return cfg, nil
	})

	// Register Fetcher
	do.Provide(injector, func(i do.Injector) (*fetcher.Fetcher, error) {
		cfg := do.MustInvoke[*config.Config](i)
		timeout := time.Duration(cfg.FetchTimeout) * time.Second
		return fetcher.New(timeout, cfg.UserAgent), nil
	})

	// Register News Service
	do.Provide(injector, func(i do.Injector) (*newsService.Service, error) {
		cfg := do.MustInvoke[*config.Config](i)
		f := do.MustInvoke[*fetcher.Fetcher](i)
		svc := newsService.New(cfg, f)

		// Breaking news notifications are optional; only wire the
		// Telegram notifier when both token and chat are configured.
		if cfg.TelegramBotToken != "" && cfg.TelegramChatID != "" {
			notifier, err := do.Invoke[*notifyService.Service](i)
			if err != nil {
				return nil, err
			}
			svc.SetNotifier(notifier)
		}

		return svc, nil
	})

	// Register Feed Service
	do.Provide(injector, func(i do.Injector) (*feedService.Service, error) {
		news := do.MustInvoke[*newsService.Service](i)
		return feedService.New(news), nil
	})

	// Register Notify Service
	do.Provide(injector, func(i do.Injector) (*notifyService.Service, error) {
		cfg := do.MustInvoke[*config.Config](i)

		b, err := bot.New(cfg.TelegramBotToken, bot.WithSkipGetMe())
		if err != nil {
			return nil, oops.With("context", "failed to create telegram bot").Wrap(err)
		}

		return notifyService.New(b, cfg.TelegramChatID), nil
	})

	// Register HTTP Server
	do.Provide(injector, func(i do.Injector) (*httpServer.Server, error) {
		cfg := do.MustInvoke[*config.Config](i)
		news := do.MustInvoke[*newsService.Service](i)
		feed := do.MustInvoke[*feedService.Service](i)
		server := httpServer.New(cfg, news, feed)
		server.SetLogger(slog.Default())
		return server, nil
	})

	return injector, nil
}

// Shutdown gracefully shuts down all services
func Shutdown(injector do.Injector) error {
	// No service holds background resources; the snapshot cache is
	// ephemeral and rebuilt on the next start.
	return nil
}
