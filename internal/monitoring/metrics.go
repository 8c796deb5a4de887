// Package monitoring records Prometheus metrics for Emburse API calls.
package monitoring

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "emburse_client"

// Metrics holds the client's Prometheus collectors
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	ResponseSize    *prometheus.HistogramVec
	ErrorsTotal     *prometheus.CounterVec
}

// NewMetrics registers the client collectors on reg. A nil registerer
// creates unregistered collectors, which is useful for tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "requests_total",
				Help:      "Total number of Emburse API requests",
			},
			[]string{"method", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "request_duration_seconds",
				Help:      "Emburse API round trip duration in seconds",
				Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 80},
			},
			[]string{"method"},
		),
		ResponseSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "response_size_bytes",
				Help:      "Emburse API response size in bytes",
				Buckets:   prometheus.ExponentialBuckets(100, 10, 6),
			},
			[]string{"method"},
		),
		ErrorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "errors_total",
				Help:      "Total number of failed Emburse API calls by error kind",
			},
			[]string{"method", "kind"},
		),
	}
}

// RecordResponse records a completed round trip
func (m *Metrics) RecordResponse(method string, status int, size int, duration time.Duration) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(method, strconv.Itoa(status)).Inc()
	m.RequestDuration.WithLabelValues(method).Observe(duration.Seconds())
	m.ResponseSize.WithLabelValues(method).Observe(float64(size))
}

// RecordError records a call that ended in an error of the given kind
func (m *Metrics) RecordError(method, kind string) {
	if m == nil {
		return
	}
	m.ErrorsTotal.WithLabelValues(method, kind).Inc()
}
