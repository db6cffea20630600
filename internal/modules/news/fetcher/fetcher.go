package fetcher

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/samber/lo"

	"github.com/dailydonald/ragefeed/internal/modules/news/domain"
	"github.com/dailydonald/ragefeed/internal/modules/news/scoring"
	"github.com/dailydonald/ragefeed/internal/shared/metrics"
	"github.com/dailydonald/ragefeed/internal/shared/textutil"
)

// Fetcher downloads and parses one feed source at a time. Parsing is
// delegated to gofeed, which handles RSS and Atom variants transparently.
type Fetcher struct {
	parser  *gofeed.Parser
	timeout time.Duration
	now     func() time.Time
}

// New creates a fetcher with a per-source request timeout.
func New(timeout time.Duration, userAgent string) *Fetcher {
	parser := gofeed.NewParser()
	parser.UserAgent = userAgent
	parser.Client = &http.Client{Timeout: timeout}

	return &Fetcher{
		parser:  parser,
		timeout: timeout,
		now:     time.Now,
	}
}

// FetchOne fetches a single feed source and converts its relevant entries
// into news items. Fetch and parse failures are contained here: the
// returned FeedResult carries the error and the item slice is empty.
// Failures never propagate to the caller.
func (f *Fetcher) FetchOne(ctx context.Context, source domain.FeedSource) ([]domain.NewsItem, domain.FeedResult) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	feed, err := f.parser.ParseURLWithContext(source.URL, ctx)
	if err != nil {
		slog.Error("Failed to fetch feed", "source", source.Name, "url", source.URL, "error", err)
		metrics.FeedFetchesTotal.WithLabelValues(source.Name, domain.StatusError).Inc()
		return nil, domain.FeedResult{
			Name:   source.Name,
			Status: domain.StatusError,
			Error:  err.Error(),
		}
	}

	now := f.now()
	var items []domain.NewsItem
	for _, entry := range feed.Items {
		if entry == nil {
			continue
		}

		title := textutil.Clean(entry.Title)
		description := textutil.Clean(lo.CoalesceOrEmpty(entry.Description, entry.Content))

		if !scoring.IsRelevant(title, description) {
			continue
		}

		item := Extract(entry, title, description, source.Name, now)
		item.RageLevel = scoring.RageLevel(title, description)
		items = append(items, item)
	}

	slog.Debug("Fetched feed", "source", source.Name, "matched", len(items), "total", len(feed.Items))
	metrics.FeedFetchesTotal.WithLabelValues(source.Name, domain.StatusOK).Inc()

	return items, domain.FeedResult{
		Name:   source.Name,
		Status: domain.StatusOK,
		Count:  len(items),
	}
}
