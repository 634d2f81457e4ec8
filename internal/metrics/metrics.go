// Package metrics exposes Prometheus collectors for the ingestion pipeline.
package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	submissionsTotal     *prometheus.CounterVec
	enrichmentsTotal     *prometheus.CounterVec
	fetchDurationSeconds *prometheus.HistogramVec
	batchesTotal         prometheus.Counter

	once sync.Once
)

// Init initializes the Prometheus metrics collectors.
// It is safe to call this function multiple times.
func Init() {
	once.Do(func() {
		submissionsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dealflow_submissions_total",
				Help: "Total number of submissions processed, labeled by outcome.",
			},
			[]string{"status"},
		)

		enrichmentsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dealflow_enrichments_total",
				Help: "Total number of enrichment attempts, labeled by source and outcome.",
			},
			[]string{"source", "status"},
		)

		fetchDurationSeconds = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "dealflow_fetch_duration_seconds",
				Help:    "Histogram of outbound fetch latencies, labeled by source.",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
			},
			[]string{"source"},
		)

		batchesTotal = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "dealflow_batches_total",
				Help: "Total number of batch runs started.",
			},
		)
	})
}

// Handler returns an http.Handler for exposing Prometheus metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveSubmission increments the submission counter for the given outcome.
func ObserveSubmission(status string) {
	Init()
	submissionsTotal.WithLabelValues(status).Inc()
}

// ObserveEnrichment increments the enrichment counter for one attempt.
func ObserveEnrichment(source, status string) {
	Init()
	enrichmentsTotal.WithLabelValues(source, status).Inc()
}

// ObserveFetch records the duration of one outbound fetch.
func ObserveFetch(source string, duration time.Duration) {
	Init()
	fetchDurationSeconds.WithLabelValues(source).Observe(duration.Seconds())
}

// ObserveBatch counts a batch run.
func ObserveBatch() {
	Init()
	batchesTotal.Inc()
}
