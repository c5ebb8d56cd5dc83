// Package metrics provides Prometheus metrics for the card catalog API.
// Scrape these at /metrics for Grafana dashboards and alerting.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP Metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "optcg_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "optcg_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// Catalog Metrics
	CatalogCardsTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "optcg_catalog_cards_total",
			Help: "Number of cards loaded into the catalog",
		},
	)

	CatalogSetsTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "optcg_catalog_sets_total",
			Help: "Number of distinct sets in the catalog",
		},
	)

	CardQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "optcg_card_queries_total",
			Help: "Card list queries by whether any filter was supplied",
		},
		[]string{"filtered"}, // "true" or "false"
	)

	CardQueryMatches = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "optcg_card_query_matches",
			Help:    "Number of cards matching a list query before pagination",
			Buckets: []float64{0, 1, 5, 25, 100, 500, 1000, 5000},
		},
	)

	NotFoundTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "optcg_not_found_total",
			Help: "Lookups that found nothing",
		},
		[]string{"kind"}, // "card" or "set"
	)

	// Last-modified lookup Metrics
	LastModifiedLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "optcg_last_modified_lookups_total",
			Help: "Last-modified lookups by source",
		},
		[]string{"source"}, // "cache", "api", "error"
	)

	LastModifiedLatency = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "optcg_last_modified_api_latency_seconds",
			Help:    "GitHub commits API call latency, retries included",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10},
		},
	)
)

// SetCatalogSize records the size of the loaded catalog.
func SetCatalogSize(cards, sets int) {
	CatalogCardsTotal.Set(float64(cards))
	CatalogSetsTotal.Set(float64(sets))
}
