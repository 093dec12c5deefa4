// Package metrics exposes simulation counters on the Prometheus endpoint.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	simulationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "simserver_simulations_total",
			Help: "Total number of simulation runs.",
		},
		[]string{"model", "status"},
	)

	iterationsUsed = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "simserver_iterations_used",
			Help:    "Iterations consumed per simulation run.",
			Buckets: prometheus.ExponentialBuckets(10, 4, 8),
		},
	)

	runDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "simserver_run_duration_seconds",
			Help:    "Wall clock duration of simulation runs.",
			Buckets: prometheus.DefBuckets,
		},
	)
)

func init() {
	prometheus.MustRegister(simulationsTotal)
	prometheus.MustRegister(iterationsUsed)
	prometheus.MustRegister(runDurationSeconds)
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveRun records one finished simulation run.
func ObserveRun(model, status string, iterations int, d time.Duration) {
	simulationsTotal.WithLabelValues(model, status).Inc()
	iterationsUsed.Observe(float64(iterations))
	runDurationSeconds.Observe(d.Seconds())
}
