package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for verification runs.
type Metrics struct {
	RunsTotal        prometheus.Counter
	ValidationErrors prometheus.Counter
	PublishErrors    prometheus.Counter
	RunDuration      prometheus.Histogram
	GridPoints       prometheus.Gauge

	MaxAbsError *prometheus.GaugeVec // labels: field={u velocity,v velocity,velocity magnitude,vorticity}
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.RunsTotal,
		m.ValidationErrors,
		m.PublishErrors,
		m.RunDuration,
		m.GridPoints,
		m.MaxAbsError,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		RunsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "taylor_green",
			Name:      "runs_total",
			Help:      "Completed verification runs.",
		}),
		ValidationErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "taylor_green",
			Name:      "validation_errors_total",
			Help:      "Runs rejected because time or viscosity was invalid.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "taylor_green",
			Name:      "publish_errors_total",
			Help:      "Reports that could not be published to Kafka.",
		}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "taylor_green",
			Name:      "run_duration_seconds",
			Help:      "Duration of the analytic evaluation, reconstruction, and comparison.",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}),
		GridPoints: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "taylor_green",
			Name:      "grid_points",
			Help:      "Number of grid points in the last run.",
		}),
		MaxAbsError: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "taylor_green",
			Name:      "max_abs_error",
			Help:      "Maximum absolute error between the analytic and reconstructed field.",
		}, []string{"field"}),
	}
}
