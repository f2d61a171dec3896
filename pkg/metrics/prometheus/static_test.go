package prometheus

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marmos91/snapserve/pkg/metrics"
)

func TestNewStaticMetricsDisabled(t *testing.T) {
	metrics.ResetRegistry()
	assert.Nil(t, NewStaticMetrics())
	assert.Nil(t, metrics.NewStaticMetrics())
}

func TestObserveRequest(t *testing.T) {
	metrics.ResetRegistry()
	t.Cleanup(metrics.ResetRegistry)
	reg := metrics.InitRegistry()

	m := metrics.NewStaticMetrics()
	require.NotNil(t, m)

	m.ObserveRequest(metrics.OutcomeServed, "text/html", 11, 2*time.Millisecond)
	m.ObserveRequest(metrics.OutcomeServed, "text/html", 11, time.Millisecond)
	m.ObserveRequest(metrics.OutcomeNotFound, "", 9, time.Millisecond)

	sm := m.(*staticMetrics)
	assert.Equal(t, 2.0, testutil.ToFloat64(sm.requests.WithLabelValues(metrics.OutcomeServed, "text/html")))
	assert.Equal(t, 1.0, testutil.ToFloat64(sm.requests.WithLabelValues(metrics.OutcomeNotFound, "")))

	expected := `
# HELP snapserve_requests_total Total number of static file requests by outcome and content type
# TYPE snapserve_requests_total counter
snapserve_requests_total{content_type="",outcome="not_found"} 1
snapserve_requests_total{content_type="text/html",outcome="served"} 2
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "snapserve_requests_total"))

	n, err := testutil.GatherAndCount(reg, "snapserve_request_duration_milliseconds", "snapserve_response_bytes")
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}
