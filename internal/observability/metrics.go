package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters for the safety API.
type Metrics struct {
	PredictionsServed prometheus.Counter
	HistoricalQueries prometheus.Counter

	// Search / geocoding metrics.
	SearchRequests *prometheus.CounterVec // label: outcome={found,not_found,geocode_error,invalid}
	GeocodeCache   *prometheus.CounterVec // label: result={hit,miss}
}

// NewMetrics creates and registers all metrics with the default registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.PredictionsServed,
		m.HistoricalQueries,
		m.SearchRequests,
		m.GeocodeCache,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics across tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		PredictionsServed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "safety_api",
			Name:      "predictions_served_total",
			Help:      "Total hourly prediction sets served.",
		}),
		HistoricalQueries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "safety_api",
			Name:      "historical_queries_total",
			Help:      "Total historical data queries served.",
		}),
		SearchRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "safety_api",
			Name:      "search_requests_total",
			Help:      "Location search requests by outcome.",
		}, []string{"outcome"}),
		GeocodeCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "safety_api",
			Name:      "geocode_cache_total",
			Help:      "Geocode cache lookups by result.",
		}, []string{"result"}),
	}
}
