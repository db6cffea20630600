package service

import (
	"context"
	"log/slog"

	"github.com/samber/lo"
	"github.com/samber/oops"

	"github.com/dailydonald/ragefeed/internal/modules/news/domain"
	"github.com/dailydonald/ragefeed/internal/shared/errors"
	"github.com/dailydonald/ragefeed/internal/shared/metrics"
)

// Fresh returns the cached snapshot, re-aggregating first when no
// snapshot exists yet, the cached one is empty, or it is older than the
// freshness window. Concurrent callers observing staleness may trigger
// duplicate refreshes; the last writer wins, which is safe because every
// refresh builds a complete snapshot before the swap.
func (s *Service) Fresh(ctx context.Context) (*domain.Snapshot, error) {
	s.mu.RLock()
	current := s.snapshot
	s.mu.RUnlock()

	if current != nil && len(current.Items) > 0 && s.now().Sub(current.FetchedAt) <= s.ttl {
		metrics.CacheHitsTotal.Inc()
		return current, nil
	}

	metrics.CacheMissesTotal.Inc()
	slog.Info("Refreshing news snapshot", "sources", len(s.sources))

	// The snapshot is shared state: a refresh must survive the caller
	// going away. Only the per-source fetch timeout bounds it.
	fresh := s.Aggregate(context.WithoutCancel(ctx))

	// Cold start with every source down is a hard failure: there is
	// nothing meaningful to serve yet. Once a snapshot exists, an empty
	// refresh replaces it like any other.
	if current == nil && len(fresh.Items) == 0 && allFailed(fresh.Feeds) {
		return nil, oops.With("sources", len(s.sources)).Wrap(errors.ErrAllSourcesFailed)
	}

	s.mu.Lock()
	s.snapshot = fresh
	s.mu.Unlock()

	s.notifyBreaking(current, fresh)
	return fresh, nil
}

// Current returns the cached snapshot without refreshing it.
func (s *Service) Current() (*domain.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snapshot == nil {
		return nil, errors.ErrNoSnapshot
	}
	return s.snapshot, nil
}

func allFailed(feeds []domain.FeedResult) bool {
	return lo.EveryBy(feeds, func(f domain.FeedResult) bool {
		return f.Status == domain.StatusError
	})
}

// notifyBreaking hands level-5 breaking items that were not in the
// previous snapshot to the notifier, off the request path.
func (s *Service) notifyBreaking(previous, fresh *domain.Snapshot) {
	if s.notifier == nil {
		return
	}

	known := make(map[string]struct{})
	if previous != nil {
		for _, item := range previous.Items {
			known[item.ID] = struct{}{}
		}
	}

	items := lo.Filter(fresh.Items, func(item domain.NewsItem, _ int) bool {
		if !item.Breaking || item.RageLevel < 5 {
			return false
		}
		_, seen := known[item.ID]
		return !seen
	})

	if len(items) > 0 {
		go s.notifier.BreakingNews(context.Background(), items)
	}
}
