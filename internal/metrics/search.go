package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search Prometheus metrics.
var (
	ReconcileTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "casafind",
			Name:      "reconcile_total",
			Help:      "Total number of reconciled searches by mode",
		},
		[]string{"mode", "status"},
	)

	ReconcileDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "casafind",
			Name:      "reconcile_duration_seconds",
			Help:      "Reconciled search duration in seconds",
			Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"mode"},
	)

	SuggestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "casafind",
			Name:      "suggest_total",
			Help:      "Total number of suggestion requests",
		},
		[]string{"status"},
	)

	SearchCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "casafind",
			Name:      "search_cache_total",
			Help:      "Search result cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers Prometheus search metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(ReconcileTotal)
	prometheus.MustRegister(ReconcileDuration)
	prometheus.MustRegister(SuggestTotal)
	prometheus.MustRegister(SearchCacheTotal)
	searchMetricsRegistered = true
}
