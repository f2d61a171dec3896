package metrics

import "time"

// Request outcomes recorded by StaticMetrics.
const (
	OutcomeServed   = "served"
	OutcomeNotFound = "not_found"
)

// StaticMetrics records static file requests.
//
// A nil StaticMetrics is valid and means metrics are disabled.
type StaticMetrics interface {
	// ObserveRequest records one finished request.
	//
	// Parameters:
	//   - outcome: OutcomeServed or OutcomeNotFound
	//   - contentType: Content-Type of the response, empty on not found
	//   - bytes: response body size
	//   - duration: time spent handling the request
	ObserveRequest(outcome, contentType string, bytes int, duration time.Duration)
}

// NewStaticMetrics returns the Prometheus-backed StaticMetrics.
//
// Returns nil if metrics are not enabled (InitRegistry not called) or if no
// implementation has been registered.
//
// Example usage:
//
//	metrics.InitRegistry()
//	m := metrics.NewStaticMetrics()
//	srv := server.New(cfg, res, m)
func NewStaticMetrics() StaticMetrics {
	if !IsEnabled() || newPrometheusStaticMetrics == nil {
		return nil
	}
	return newPrometheusStaticMetrics()
}

// newPrometheusStaticMetrics is set by pkg/metrics/prometheus so that this
// package does not import its implementation.
var newPrometheusStaticMetrics func() StaticMetrics

// RegisterStaticMetricsConstructor registers the StaticMetrics constructor.
// Called by pkg/metrics/prometheus during package initialization.
func RegisterStaticMetricsConstructor(constructor func() StaticMetrics) {
	newPrometheusStaticMetrics = constructor
}
