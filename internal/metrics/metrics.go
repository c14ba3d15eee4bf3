// Package metrics exposes Prometheus instrumentation for the scanner.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder holds the scan-level collectors. Create one per process and
// share it across components.
type Recorder struct {
	registry *prometheus.Registry

	ScansStarted   prometheus.Counter
	ScansCompleted prometheus.Counter
	ScansFailed    prometheus.Counter

	PairsScreened prometheus.Counter
	PairsPassed   prometheus.Counter
	PairsSkipped  prometheus.Counter

	SimulationsRun prometheus.Counter

	ScanDuration prometheus.Histogram
	PairDuration prometheus.Histogram
}

// NewRecorder creates a Recorder backed by its own registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		ScansStarted: factory.NewCounter(prometheus.CounterOpts{
			Name: "omnispread_scans_started_total",
			Help: "Number of scans started",
		}),
		ScansCompleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "omnispread_scans_completed_total",
			Help: "Number of scans that finished successfully",
		}),
		ScansFailed: factory.NewCounter(prometheus.CounterOpts{
			Name: "omnispread_scans_failed_total",
			Help: "Number of scans that ended with an error",
		}),
		PairsScreened: factory.NewCounter(prometheus.CounterOpts{
			Name: "omnispread_pairs_screened_total",
			Help: "Number of pairs run through the cointegration screen",
		}),
		PairsPassed: factory.NewCounter(prometheus.CounterOpts{
			Name: "omnispread_pairs_passed_total",
			Help: "Number of pairs that passed screening",
		}),
		PairsSkipped: factory.NewCounter(prometheus.CounterOpts{
			Name: "omnispread_pairs_skipped_total",
			Help: "Number of pairs skipped after screening or simulation errors",
		}),
		SimulationsRun: factory.NewCounter(prometheus.CounterOpts{
			Name: "omnispread_simulations_total",
			Help: "Number of inner Monte Carlo simulations executed",
		}),
		ScanDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "omnispread_scan_duration_seconds",
			Help:    "Wall time of complete scans",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 12),
		}),
		PairDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "omnispread_pair_duration_seconds",
			Help:    "Wall time per pair evaluation",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
		}),
	}
}

// Handler returns the HTTP handler serving this recorder's registry.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
