package fetcher

import (
	"encoding/base64"
	"regexp"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/dailydonald/ragefeed/internal/modules/news/domain"
	"github.com/dailydonald/ragefeed/internal/shared/textutil"
)

const (
	idLength       = 20
	excerptLength  = 200
	breakingWindow = time.Hour
)

var imgSrcPattern = regexp.MustCompile(`<img[^>]+src="([^">]+)"`)

// Extract builds a NewsItem from a raw feed entry. Title and description
// must already be cleaned. Missing or malformed entry fields degrade to
// defaults; Extract never fails.
func Extract(entry *gofeed.Item, title, description, sourceName string, now time.Time) domain.NewsItem {
	published := now
	if entry.PublishedParsed != nil {
		published = *entry.PublishedParsed
	}

	return domain.NewsItem{
		ID:       itemID(title),
		Title:    title,
		Source:   sourceName,
		Excerpt:  textutil.Truncate(description, excerptLength),
		Date:     published,
		Breaking: now.Sub(published) < breakingWindow,
		Link:     entry.Link,
		Image:    extractImage(entry),
	}
}

// itemID derives a stable short id from the title. Identical titles map
// to the same id on purpose; collisions across sources are the
// deduplication signal, not a defect.
func itemID(title string) string {
	return textutil.Truncate(base64.StdEncoding.EncodeToString([]byte(title)), idLength)
}

// extractImage tries the common RSS image carriers in order: enclosure,
// media:content, media:thumbnail, then an <img> tag in the content body.
func extractImage(entry *gofeed.Item) string {
	for _, enc := range entry.Enclosures {
		if enc != nil && enc.URL != "" {
			return enc.URL
		}
	}

	if media, ok := entry.Extensions["media"]; ok {
		for _, name := range []string{"content", "thumbnail"} {
			for _, ext := range media[name] {
				if url := ext.Attrs["url"]; url != "" {
					return url
				}
			}
		}
	}

	if m := imgSrcPattern.FindStringSubmatch(entry.Content); len(m) > 1 {
		return m[1]
	}

	return ""
}
