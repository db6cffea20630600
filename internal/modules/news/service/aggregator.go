package service

import (
	"context"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/dailydonald/ragefeed/internal/modules/news/domain"
	"github.com/dailydonald/ragefeed/internal/shared/metrics"
	"github.com/dailydonald/ragefeed/internal/shared/textutil"
)

const dedupKeyLength = 50

var nonAlnumPattern = regexp.MustCompile(`[^a-z0-9]`)

// Aggregate fetches every configured source concurrently, waits for all
// of them to settle, then merges, deduplicates and sorts the results
// into one snapshot. Individual source failures are recorded in the
// snapshot's feed results and never abort the run.
func (s *Service) Aggregate(ctx context.Context) *domain.Snapshot {
	start := s.now()

	type outcome struct {
		items  []domain.NewsItem
		result domain.FeedResult
	}

	// One slot per source: results are merged in configured source order
	// so the dedup survivor does not depend on fetch completion timing.
	outcomes := make([]outcome, len(s.sources))

	var wg sync.WaitGroup
	for i, source := range s.sources {
		wg.Add(1)
		go func(i int, source domain.FeedSource) {
			defer wg.Done()
			items, result := s.fetcher.FetchOne(ctx, source)
			outcomes[i] = outcome{items: items, result: result}
		}(i, source)
	}
	wg.Wait()

	var merged []domain.NewsItem
	feeds := make([]domain.FeedResult, 0, len(s.sources))
	for _, o := range outcomes {
		merged = append(merged, o.items...)
		feeds = append(feeds, o.result)
	}

	items := dedupe(merged)
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Date.After(items[j].Date)
	})

	metrics.AggregationRunsTotal.Inc()
	metrics.AggregationDuration.Observe(s.now().Sub(start).Seconds())
	metrics.ItemsCollected.Set(float64(len(items)))

	return &domain.Snapshot{
		Items:      items,
		Feeds:      feeds,
		FetchedAt:  s.now(),
		TotalCount: len(items),
	}
}

// dedupe collapses near-duplicate items from different sources; the
// first-seen item per key survives.
func dedupe(items []domain.NewsItem) []domain.NewsItem {
	seen := make(map[string]struct{}, len(items))
	unique := make([]domain.NewsItem, 0, len(items))
	for _, item := range items {
		key := dedupKey(item.Title)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, item)
	}
	return unique
}

// dedupKey normalizes a title to lower-case alphanumerics capped at 50
// characters.
func dedupKey(title string) string {
	key := nonAlnumPattern.ReplaceAllString(strings.ToLower(title), "")
	return textutil.Truncate(key, dedupKeyLength)
}
