package apiclient

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRecorder records outbound API request outcomes
type MetricsRecorder interface {
	RecordRequest(method string, status int, duration time.Duration)
}

type noopMetrics struct{}

func (noopMetrics) RecordRequest(string, int, time.Duration) {}

// PrometheusMetrics records outbound request metrics to the default
// Prometheus registry
type PrometheusMetrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration prometheus.Histogram
}

func NewPrometheusMetrics() *PrometheusMetrics {
	return &PrometheusMetrics{
		requestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "api_client_requests_total",
				Help: "Total number of outbound requests to the expense API",
			},
			[]string{"method", "status"},
		),
		requestDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "api_client_request_duration_milliseconds",
				Help:    "Outbound request duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
		),
	}
}

// RecordRequest records one completed (or failed) outbound request.
// status 0 means the request never produced an HTTP response.
func (m *PrometheusMetrics) RecordRequest(method string, status int, duration time.Duration) {
	label := "error"
	if status != 0 {
		label = strconv.Itoa(status)
	}
	m.requestsTotal.WithLabelValues(method, label).Inc()
	m.requestDuration.Observe(float64(duration.Milliseconds()))
}
