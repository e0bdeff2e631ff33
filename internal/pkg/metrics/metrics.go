// Package metrics exposes the escrow's Prometheus collectors.
package metrics

import (
	"strconv"
	"time"

	"escrow/internal/core/domain/model/order"
	"escrow/internal/core/domain/model/transfer"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "escrow"

// EscrowMetrics records committed order and transfer writes, dispatch runs
// and HTTP traffic.
type EscrowMetrics struct {
	orderWrites      *prometheus.CounterVec
	transferWrites   *prometheus.CounterVec
	dispatchFailures prometheus.Counter
	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
}

// NewEscrowMetrics creates the collectors and registers them with reg.
// It panics if any of them is already registered.
func NewEscrowMetrics(reg prometheus.Registerer) *EscrowMetrics {
	m := &EscrowMetrics{
		orderWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_writes_total",
			Help:      "Committed order writes by resulting status.",
		}, []string{"status"}),
		transferWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transfer_writes_total",
			Help:      "Committed transfer writes by kind and resulting status.",
		}, []string{"kind", "status"}),
		dispatchFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transfer_dispatch_failures_total",
			Help:      "Transfers the value transfer service did not accept.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "code"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	reg.MustRegister(
		m.orderWrites,
		m.transferWrites,
		m.dispatchFailures,
		m.httpRequests,
		m.httpDuration,
	)

	return m
}

// AggregatesCommitted counts the orders and transfers a unit of work wrote.
func (m *EscrowMetrics) AggregatesCommitted(aggregates []any) {
	for _, aggregate := range aggregates {
		switch a := aggregate.(type) {
		case *order.Order:
			m.orderWrites.WithLabelValues(a.Status().String()).Inc()
		case *transfer.Transfer:
			m.transferWrites.WithLabelValues(a.Kind().String(), a.Status().String()).Inc()
		}
	}
}

func (m *EscrowMetrics) DispatchFailed(n int) {
	m.dispatchFailures.Add(float64(n))
}

func (m *EscrowMetrics) ObserveHTTP(method, route string, code int, elapsed time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
