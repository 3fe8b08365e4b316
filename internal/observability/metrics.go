// Package observability holds the Prometheus collectors for the assistant
// pipeline.
package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "storefront"

// Pipeline outcome labels.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Metrics groups the pipeline collectors. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	registry *prometheus.Registry

	requests      *prometheus.CounterVec
	toolCalls     *prometheus.CounterVec
	cancellations *prometheus.CounterVec
	duration      prometheus.Histogram
}

// NewMetrics registers the collectors on a fresh registry, so several
// instances can coexist in tests.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		// Labels: intent, status (success, error)
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "assistant",
			Name:      "requests_total",
			Help:      "Pipeline runs by routed intent and outcome",
		}, []string{"intent", "status"}),
		// Labels: tool
		toolCalls: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "assistant",
			Name:      "tool_invocations_total",
			Help:      "Tool invocations made by the dispatcher",
		}, []string{"tool"}),
		// Labels: allowed (true, false)
		cancellations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "policy",
			Name:      "cancellation_decisions_total",
			Help:      "Cancellation decisions by outcome",
		}, []string{"allowed"}),
		duration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "assistant",
			Name:      "pipeline_duration_seconds",
			Help:      "End-to-end pipeline latency in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		}),
	}
}

// ObserveRequest records one pipeline run.
func (m *Metrics) ObserveRequest(intent, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	if intent == "" {
		intent = "unset"
	}
	m.requests.WithLabelValues(intent, status).Inc()
	m.duration.Observe(elapsed.Seconds())
}

// ObserveTools counts each tool name once per occurrence.
func (m *Metrics) ObserveTools(names []string) {
	if m == nil {
		return
	}
	for _, n := range names {
		m.toolCalls.WithLabelValues(n).Inc()
	}
}

// ObserveCancellation records a policy decision.
func (m *Metrics) ObserveCancellation(allowed bool) {
	if m == nil {
		return
	}
	m.cancellations.WithLabelValues(strconv.FormatBool(allowed)).Inc()
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
