package domain

import "time"

// Filter values accepted by the query endpoint. Anything else means "all".
const (
	FilterAll      = "all"
	FilterBreaking = "breaking"
	FilterLevel5   = "5"
	FilterLevel4   = "4"
)

// Query is one incoming request against a cached snapshot.
type Query struct {
	Page   int
	Limit  int
	Filter string
	Search string
}

// Pagination describes the slice of the filtered set that was returned.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// Stats are computed over the filtered set before pagination, except
// BreakingCount which counts the entire unfiltered snapshot.
type Stats struct {
	TotalNews     int     `json:"totalNews"`
	FilteredCount int     `json:"filteredCount"`
	AvgRageLevel  float64 `json:"avgRageLevel"`
	BreakingCount int     `json:"breakingCount"`
}

// QueryResult is the full answer to one query.
type QueryResult struct {
	News        []NewsItem   `json:"news"`
	Pagination  Pagination   `json:"pagination"`
	Stats       Stats        `json:"stats"`
	Feeds       []FeedResult `json:"feeds"`
	LastUpdated time.Time    `json:"lastUpdated"`
}
