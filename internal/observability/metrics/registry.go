// Package metrics provides centralized Prometheus metrics for the application.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Provider chain metrics track how requests are served by the upstream tiers
var (
	// ProviderAttemptsTotal counts provider attempts by outcome.
	// outcome: success, empty, error, skipped
	ProviderAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "news_provider_attempts_total",
			Help: "Total number of news provider attempts",
		},
		[]string{"provider", "outcome"},
	)

	// ProviderDuration measures the latency of a single provider attempt
	ProviderDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "news_provider_duration_seconds",
			Help:    "News provider attempt duration in seconds",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"provider"},
	)

	// StaticFallbackTotal counts resolutions served from the bundled dataset
	StaticFallbackTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "news_static_fallback_total",
			Help: "Total number of resolutions served from the static dataset",
		},
		[]string{"operation"},
	)

	// ArticlesResolvedTotal counts articles returned to callers per operation
	ArticlesResolvedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "news_articles_resolved_total",
			Help: "Total number of articles returned by the resolver",
		},
		[]string{"operation"},
	)
)

// Content enrichment metrics track full-text fetching for single articles
var (
	// ContentFetchAttemptsTotal counts content fetch attempts by result
	ContentFetchAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "content_fetch_attempts_total",
			Help: "Total number of content fetch attempts",
		},
		[]string{"result"}, // result: success, failure, skipped
	)

	// ContentFetchDuration measures time to fetch article content
	ContentFetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "content_fetch_duration_seconds",
			Help:    "Time taken to fetch article content",
			Buckets: []float64{0.1, 0.2, 0.4, 0.8, 1.6, 3.2, 6.4, 12.8},
		},
	)

	// ContentFetchSize measures fetched content size in characters
	ContentFetchSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "content_fetch_size_bytes",
			Help:    "Fetched article content size in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 2, 14),
		},
	)
)

// Database metrics track the user store
var (
	// DBQueryDuration measures database query duration
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 10),
		},
		[]string{"operation"},
	)
)
