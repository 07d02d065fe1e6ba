// Package middleware provides cross-cutting concerns for the analytics
// pipeline.
package middleware

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/ruckstats/ruckstats/internal/ports"
)

var _ ports.MetricsCollector = (*PrometheusMetrics)(nil)

// PrometheusMetrics implements the MetricsCollector interface using
// Prometheus. It tracks stage latency, data-quality counters, and the size
// of the computed ranking for each pipeline run.
type PrometheusMetrics struct {
	stageLatency *prometheus.HistogramVec
	counters     *prometheus.CounterVec
	gauges       *prometheus.GaugeVec
}

// NewPrometheusMetrics creates a PrometheusMetrics instance and registers
// all required metrics in the given registry. A nil registerer uses the
// global Prometheus registry.
func NewPrometheusMetrics(reg prometheus.Registerer) *PrometheusMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &PrometheusMetrics{
		stageLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pipeline_stage_duration_seconds",
				Help:    "Execution time of each pipeline stage.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"stage"},
		),
		counters: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pipeline_events_total",
				Help: "Counts of pipeline events such as rows loaded, skipped, and filtered.",
			},
			[]string{"event", "source"},
		),
		gauges: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "pipeline_state",
				Help: "Current pipeline state values such as teams ranked.",
			},
			[]string{"metric"},
		),
	}
}

// RecordLatency implements the MetricsCollector interface by recording
// stage execution time in a Prometheus histogram.
func (pm *PrometheusMetrics) RecordLatency(stage string, duration time.Duration) {
	pm.stageLatency.WithLabelValues(stage).Observe(duration.Seconds())
}

// IncCounter implements the MetricsCollector interface. The "source" label
// is taken from labels when present.
func (pm *PrometheusMetrics) IncCounter(name string, value float64, labels map[string]string) {
	source, ok := labels["source"]
	if !ok {
		source = "unknown"
	}
	pm.counters.WithLabelValues(name, source).Add(value)
}

// SetGauge implements the MetricsCollector interface.
func (pm *PrometheusMetrics) SetGauge(name string, value float64, _ map[string]string) {
	pm.gauges.WithLabelValues(name).Set(value)
}

// NoopMetrics is a MetricsCollector that discards everything. It is the
// default for tests and one-shot CLI runs where nothing scrapes the
// registry.
type NoopMetrics struct{}

var _ ports.MetricsCollector = NoopMetrics{}

// RecordLatency implements the MetricsCollector interface as a no-op.
func (NoopMetrics) RecordLatency(string, time.Duration) {}

// IncCounter implements the MetricsCollector interface as a no-op.
func (NoopMetrics) IncCounter(string, float64, map[string]string) {}

// SetGauge implements the MetricsCollector interface as a no-op.
func (NoopMetrics) SetGauge(string, float64, map[string]string) {}
