package service

import (
	"context"
	"fmt"

	"github.com/gorilla/feeds"
	"github.com/samber/oops"

	"github.com/dailydonald/ragefeed/internal/modules/news/domain"
	newsService "github.com/dailydonald/ragefeed/internal/modules/news/service"
)

const feedItemLimit = 50

// Service re-exports the aggregated news snapshot as an RSS feed.
type Service struct {
	news *newsService.Service
}

// New creates a new feed service
func New(news *newsService.Service) *Service {
	return &Service{news: news}
}

// Generate builds an RSS feed from the current snapshot, refreshing the
// cache first when it is stale.
func (s *Service) Generate(ctx context.Context, baseURL string) (*feeds.Feed, error) {
	snap, err := s.news.Fresh(ctx)
	if err != nil {
		return nil, oops.With("context", "failed to get news snapshot").Wrap(err)
	}

	feed := &feeds.Feed{
		Title:       "Rage Feed - Aggregated News",
		Link:        &feeds.Link{Href: fmt.Sprintf("%s/rss", baseURL)},
		Description: "Aggregated news items ranked by rage level",
		Created:     snap.FetchedAt,
		Updated:     snap.FetchedAt,
	}

	items := snap.Items
	if len(items) > feedItemLimit {
		items = items[:feedItemLimit]
	}

	for _, item := range items {
		feed.Items = append(feed.Items, newsToFeedItem(item))
	}

	return feed, nil
}

func newsToFeedItem(item domain.NewsItem) *feeds.Item {
	title := item.Title
	if item.Breaking {
		title = "[BREAKING] " + title
	}

	description := item.Excerpt
	if description == "" {
		description = "No description available"
	}
	description += fmt.Sprintf(" (rage level %d/5)", item.RageLevel)

	return &feeds.Item{
		Title:       title,
		Link:        &feeds.Link{Href: item.Link},
		Description: description,
		Author:      &feeds.Author{Name: item.Source},
		Created:     item.Date,
		Id:          item.ID,
	}
}
