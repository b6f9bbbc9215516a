// Package observability exposes prometheus collectors for the simulation
// host layers. The core itself stays silent; serve mode records here.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the collectors recorded by the HTTP surface.
type Metrics struct {
	Simulations *prometheus.CounterVec
	Trials      prometheus.Counter
	Duration    prometheus.Histogram
}

// NewMetrics registers the collectors with reg and returns them.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Simulations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mendel_simulations_total",
				Help: "Total number of simulation runs, by status.",
			},
			[]string{"status"},
		),
		Trials: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "mendel_trials_total",
				Help: "Total number of trials folded across all runs.",
			},
		),
		Duration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "mendel_simulation_duration_seconds",
				Help:    "Wall-clock duration of simulation runs.",
				Buckets: prometheus.DefBuckets,
			},
		),
	}
}
