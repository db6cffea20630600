package domain

import "time"

// FeedSource is one RSS feed to aggregate. The list of sources is static
// configuration; it never changes at runtime.
type FeedSource struct {
	Name string `json:"name" koanf:"name"`
	URL  string `json:"url" koanf:"url"`
}

// Feed fetch statuses reported per source after an aggregation run.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// FeedResult is the per-source diagnostic outcome of one aggregation run.
type FeedResult struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Count  int    `json:"count,omitempty"`
	Error  string `json:"error,omitempty"`
}

// NewsItem is a single aggregated news entry. Items are created during
// aggregation and immutable afterwards.
type NewsItem struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Source    string    `json:"source"`
	Excerpt   string    `json:"excerpt"`
	Date      time.Time `json:"date"`
	RageLevel int       `json:"rageLevel"`
	Breaking  bool      `json:"breaking"`
	Link      string    `json:"link"`
	Image     string    `json:"image,omitempty"`
}

// Snapshot is one consistent aggregated view of all relevant news items
// plus per-source diagnostics. Exactly one live snapshot exists at a time;
// each successful aggregation run replaces it wholesale.
type Snapshot struct {
	Items      []NewsItem
	Feeds      []FeedResult
	FetchedAt  time.Time
	TotalCount int
}
