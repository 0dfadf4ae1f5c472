package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Index outcome label values.
const (
	OutcomeCreated  = "created"
	OutcomeReplaced = "replaced"
	OutcomeBatched  = "batched"
	OutcomeError    = "error"
)

// Indexing Prometheus metrics.
var (
	DocumentsIndexedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "documents_indexed_total",
			Help:      "Total number of recipe documents written to the index",
		},
		[]string{"status"}, // created / replaced / batched / error
	)

	DocumentNestedItems = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "document_nested_items",
			Help:      "Nested items per indexed recipe document",
			Buckets:   []float64{0, 1, 2, 5, 10, 20, 50, 100},
		},
		[]string{"kind"}, // ingredient / instruction
	)

	IndexBatchSize = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "index_batch_size",
			Help:      "Recipes per bulk index request",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 8),
		},
	)

	StoreBreakerOpen = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "store_breaker_open",
			Help:      "1 while the document store circuit breaker is open",
		},
	)
)

var registerIndexing sync.Once

// RegisterIndexingMetrics registers the indexing metrics. Safe to call more than once.
func RegisterIndexingMetrics() {
	registerIndexing.Do(func() {
		prometheus.MustRegister(DocumentsIndexedTotal)
		prometheus.MustRegister(DocumentNestedItems)
		prometheus.MustRegister(IndexBatchSize)
		prometheus.MustRegister(StoreBreakerOpen)
	})
}
