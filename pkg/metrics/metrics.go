// Package metrics holds the Prometheus collectors exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics bundles the service-level Prometheus collectors.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	AllocationsTotal *prometheus.CounterVec
}

// New registers the collectors on the default registry.
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),

		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: constLabels,
		}, []string{"method", "path"}),

		AllocationsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "scheduler_allocations_total",
			Help:        "Allocation attempts by outcome (conflict type, NONE for success)",
			ConstLabels: constLabels,
		}, []string{"outcome"}),
	}
}

// ObserveAllocation records one allocation attempt outcome.
func (m *Metrics) ObserveAllocation(outcome string) {
	m.AllocationsTotal.WithLabelValues(outcome).Inc()
}
