// Package prometheus implements the metrics interfaces on top of
// prometheus/client_golang. Import it for its side effect of registering the
// constructors with pkg/metrics.
package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/marmos91/snapserve/pkg/metrics"
)

func init() {
	metrics.RegisterStaticMetricsConstructor(NewStaticMetrics)
}

// staticMetrics is the Prometheus implementation of metrics.StaticMetrics.
type staticMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	bytes    *prometheus.HistogramVec
}

// NewStaticMetrics creates a Prometheus-backed StaticMetrics instance.
//
// Returns nil if metrics are not enabled (InitRegistry not called).
func NewStaticMetrics() metrics.StaticMetrics {
	if !metrics.IsEnabled() {
		return nil
	}

	reg := metrics.GetRegistry()

	return &staticMetrics{
		requests: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "snapserve_requests_total",
				Help: "Total number of static file requests by outcome and content type",
			},
			[]string{"outcome", "content_type"},
		),
		duration: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "snapserve_request_duration_milliseconds",
				Help: "Duration of static file requests in milliseconds",
				Buckets: []float64{
					0.1, // 100us - cached inode
					0.5,
					1,
					5,
					10,
					50,
					100, // 100ms - the default process lifetime
					500,
				},
			},
			[]string{"outcome"},
		),
		bytes: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "snapserve_response_bytes",
				Help:    "Distribution of response body sizes",
				Buckets: prometheus.ExponentialBuckets(256, 4, 8), // 256B .. 4MiB
			},
			[]string{"content_type"},
		),
	}
}

func (m *staticMetrics) ObserveRequest(outcome, contentType string, bytes int, duration time.Duration) {
	m.requests.WithLabelValues(outcome, contentType).Inc()
	m.duration.WithLabelValues(outcome).Observe(float64(duration.Microseconds()) / 1000)
	m.bytes.WithLabelValues(contentType).Observe(float64(bytes))
}
