package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Aggregation pipeline metrics
	AggregationRunsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ragefeed_aggregation_runs_total",
			Help: "Total number of feed aggregation runs",
		},
	)

	AggregationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ragefeed_aggregation_duration_seconds",
			Help:    "Feed aggregation duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	FeedFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ragefeed_feed_fetches_total",
			Help: "Total number of per-source feed fetches",
		},
		[]string{"source", "status"},
	)

	ItemsCollected = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ragefeed_items_collected",
			Help: "Number of deduplicated news items in the current snapshot",
		},
	)

	// Cache metrics
	CacheHitsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ragefeed_cache_hits_total",
			Help: "Total number of queries served from the cached snapshot",
		},
	)

	CacheMissesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ragefeed_cache_misses_total",
			Help: "Total number of queries that triggered a re-aggregation",
		},
	)
)
