package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompletionCounter(t *testing.T) {
	m := New()

	m.IncCompletion("analysis", SourceTemplate)
	m.IncCompletion("analysis", SourceTemplate)
	m.IncCompletion("analysis", SourceModel)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.completions.WithLabelValues("analysis", SourceTemplate)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.completions.WithLabelValues("analysis", SourceModel)))
}

func TestInFlightGauge(t *testing.T) {
	m := New()

	m.RequestStarted()
	m.RequestStarted()
	m.RequestFinished()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.inFlight))
}

func TestNilMetricsAreNoops(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveRequest("GET", "/health", 200, time.Millisecond)
		m.IncCompletion("coaching", SourceTemplate)
		m.IncRateLimited("/api/auth/login")
		m.RequestStarted()
		m.RequestFinished()
	})
}

func TestHandlerExposesCollectors(t *testing.T) {
	m := New()
	m.ObserveRequest("GET", "/health", 200, 5*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "goalmaster_http_request_duration_seconds")
}
