package service

import (
	"math"
	"strings"

	"github.com/samber/lo"

	"github.com/dailydonald/ragefeed/internal/modules/news/domain"
)

const (
	defaultPage  = 1
	defaultLimit = 20
	avgSample    = 20
)

// Query applies filtering, search, pagination and statistics over a
// snapshot for a single request. The snapshot itself is never modified.
func (s *Service) Query(snap *domain.Snapshot, q domain.Query) *domain.QueryResult {
	page := q.Page
	if page < 1 {
		page = defaultPage
	}
	limit := q.Limit
	if limit < 1 {
		limit = defaultLimit
	}

	filtered := applyFilter(snap.Items, q.Filter)

	if q.Search != "" {
		needle := strings.ToLower(q.Search)
		filtered = lo.Filter(filtered, func(item domain.NewsItem, _ int) bool {
			return strings.Contains(strings.ToLower(item.Title), needle) ||
				strings.Contains(strings.ToLower(item.Excerpt), needle)
		})
	}

	total := len(filtered)
	start := (page - 1) * limit
	end := start + limit
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	news := make([]domain.NewsItem, end-start)
	copy(news, filtered[start:end])

	return &domain.QueryResult{
		News: news,
		Pagination: domain.Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: (total + limit - 1) / limit,
		},
		Stats: domain.Stats{
			TotalNews:     snap.TotalCount,
			FilteredCount: total,
			AvgRageLevel:  averageRage(filtered),
			BreakingCount: lo.CountBy(snap.Items, func(item domain.NewsItem) bool { return item.Breaking }),
		},
		Feeds:       snap.Feeds,
		LastUpdated: snap.FetchedAt,
	}
}

func applyFilter(items []domain.NewsItem, filter string) []domain.NewsItem {
	switch filter {
	case domain.FilterBreaking:
		return lo.Filter(items, func(item domain.NewsItem, _ int) bool { return item.Breaking })
	case domain.FilterLevel5:
		return lo.Filter(items, func(item domain.NewsItem, _ int) bool { return item.RageLevel == 5 })
	case domain.FilterLevel4:
		return lo.Filter(items, func(item domain.NewsItem, _ int) bool { return item.RageLevel >= 4 })
	default:
		return items
	}
}

// averageRage averages the rage level of at most the first 20 filtered
// items, rounded to one decimal. Empty input yields 0.
func averageRage(items []domain.NewsItem) float64 {
	if len(items) == 0 {
		return 0
	}
	sample := items
	if len(sample) > avgSample {
		sample = sample[:avgSample]
	}
	sum := lo.SumBy(sample, func(item domain.NewsItem) int { return item.RageLevel })
	return math.Round(float64(sum)/float64(len(sample))*10) / 10
}
