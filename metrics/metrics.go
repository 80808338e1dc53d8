// Package metrics declares the Prometheus collectors the service exports.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Recommendations counts answered requests by mode and outcome
	// (ok, no_match, error).
	Recommendations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cochlea_recommendations_total",
			Help: "Recommendation requests by mode and outcome",
		},
		[]string{"mode", "outcome"},
	)

	// LinkLookups counts external link lookups by provider and outcome
	// (hit, miss, error, timeout, open).
	LinkLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cochlea_link_lookups_total",
			Help: "External link lookups by provider and outcome",
		},
		[]string{"provider", "outcome"},
	)

	LinkLookupDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cochlea_link_lookup_duration_seconds",
			Help:    "External link lookup latency",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"provider"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cochlea_http_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)

	HistorySize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cochlea_history_entries",
			Help: "Entries currently held in the recommendation history",
		},
	)
)

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
