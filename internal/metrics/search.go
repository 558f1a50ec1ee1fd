package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Search Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "docfind",
			Name:      "search_requests_total",
			Help:      "Total number of search requests",
		},
		[]string{"sort", "status"}, // status: ok / syntax_error / error
	)

	SearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "docfind",
			Name:      "search_duration_seconds",
			Help:      "Search duration in seconds, corpus listing included",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"sort"},
	)

	SearchMatches = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "docfind",
			Name:      "search_matches",
			Help:      "Number of matching documents per search",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250, 1000},
		},
	)

	SearchPageClampedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "docfind",
			Name:      "search_page_clamped_total",
			Help:      "Searches whose requested page was clamped into range",
		},
	)

	SuggestionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "docfind",
			Name:      "suggestions_total",
			Help:      "Suggestion requests",
		},
		[]string{"result"}, // "hit" / "empty"
	)

	HistoryWriteErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "docfind",
			Name:      "history_write_errors_total",
			Help:      "Failed search history writes",
		},
	)

	DocumentsStored = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "docfind",
			Name:      "documents_stored",
			Help:      "Documents in storage as of the last stats call",
		},
	)
)

var registerSearch sync.Once

// RegisterSearchMetrics registers the search collectors with the default registry.
// Safe to call more than once.
func RegisterSearchMetrics() {
	registerSearch.Do(func() {
		prometheus.MustRegister(
			SearchRequestsTotal,
			SearchDuration,
			SearchMatches,
			SearchPageClampedTotal,
			SuggestionsTotal,
			HistoryWriteErrorsTotal,
			DocumentsStored,
		)
	})
}
