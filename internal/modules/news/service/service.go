package service

import (
	"context"
	"sync"
	"time"

	"github.com/dailydonald/ragefeed/internal/modules/news/domain"
	"github.com/dailydonald/ragefeed/internal/modules/news/fetcher"
	"github.com/dailydonald/ragefeed/internal/shared/config"
)

// Notifier receives breaking items that appeared in a fresh snapshot.
type Notifier interface {
	BreakingNews(ctx context.Context, items []domain.NewsItem)
}

// Service owns the aggregation pipeline and the cached snapshot. It is
// the single writer of the snapshot; queries read it concurrently.
type Service struct {
	sources []domain.FeedSource
	fetcher *fetcher.Fetcher
	ttl     time.Duration

	mu       sync.RWMutex
	snapshot *domain.Snapshot

	notifier Notifier
	now      func() time.Time
}

// New creates the news service with the configured feed sources.
func New(cfg *config.Config, f *fetcher.Fetcher) *Service {
	return &Service{
		sources: cfg.Feeds,
		fetcher: f,
		ttl:     time.Duration(cfg.CacheTTL) * time.Second,
		now:     time.Now,
	}
}

// SetNotifier attaches an optional breaking-news notifier.
func (s *Service) SetNotifier(n Notifier) {
	s.notifier = n
}

// Sources returns the configured feed sources.
func (s *Service) Sources() []domain.FeedSource {
	return s.sources
}
