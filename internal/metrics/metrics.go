// Package metrics records per-run resolution counters and writes them in the
// Prometheus text format for node-exporter's textfile collector.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"exoparam/core/study"
)

// Outcome label values.
const (
	OutcomeResolved = "resolved"
	OutcomeFailed   = "failed"
)

// Metrics holds one run's collectors on a private registry.
type Metrics struct {
	reg *prometheus.Registry

	// Studies by outcome
	Studies *prometheus.CounterVec

	// Failures by the stage that raised them ("" becomes "unknown")
	StageFailures *prometheus.CounterVec

	// Values recorded by each stage
	ValuesResolved *prometheus.CounterVec

	// Per-study resolution latency
	ResolveLatency prometheus.Histogram
}

// New creates a Metrics instance with all collectors registered.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Metrics{
		reg: reg,
		Studies: f.NewCounterVec(prometheus.CounterOpts{
			Name: "exoparam_studies_total",
			Help: "Studies processed by outcome",
		}, []string{"outcome"}),

		StageFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "exoparam_stage_failures_total",
			Help: "Failed studies by the stage that rejected them",
		}, []string{"stage"}),

		ValuesResolved: f.NewCounterVec(prometheus.CounterOpts{
			Name: "exoparam_values_resolved_total",
			Help: "Values recorded by each resolution stage",
		}, []string{"stage"}),

		ResolveLatency: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "exoparam_resolve_duration_seconds",
			Help:    "Duration of a single study resolution",
			Buckets: []float64{1e-6, 5e-6, 1e-5, 5e-5, 1e-4, 5e-4, 1e-3, 1e-2},
		}),
	}
}

// ObserveStudy records one finished study. stage is the failing stage, if any.
func (m *Metrics) ObserveStudy(ok bool, stage string, d time.Duration) {
	if m == nil {
		return
	}
	m.ResolveLatency.Observe(d.Seconds())
	if ok {
		m.Studies.WithLabelValues(OutcomeResolved).Inc()
		return
	}
	m.Studies.WithLabelValues(OutcomeFailed).Inc()
	if stage == "" {
		stage = "unknown"
	}
	m.StageFailures.WithLabelValues(stage).Inc()
}

// ObserveValue matches engine.Observer; it counts every recorded value.
func (m *Metrics) ObserveValue(stage string, _ study.Field, _ []study.Field) {
	if m != nil {
		m.ValuesResolved.WithLabelValues(stage).Inc()
	}
}

// Gatherer exposes the registry.
func (m *Metrics) Gatherer() prometheus.Gatherer { return m.reg }

// WriteFile writes the registry atomically to path in text format.
func (m *Metrics) WriteFile(path string) error {
	return prometheus.WriteToTextfile(path, m.reg)
}
