package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestObserveCompletion(t *testing.T) {
	m := New()
	m.ObserveCompletion("summarize_chunk", "ok", 20*time.Millisecond)
	m.ObserveCompletion("summarize_chunk", "ok", 30*time.Millisecond)
	m.ObserveCompletion("use_cases", "error", time.Millisecond)

	require.Equal(t, 2.0, testutil.ToFloat64(m.completionTotal.WithLabelValues("summarize_chunk", "ok")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.completionTotal.WithLabelValues("use_cases", "error")))
}

func TestObserveAnalysis(t *testing.T) {
	m := New()
	m.ObserveAnalysis("done", 3)
	m.ObserveAnalysis("no_text", 0)
	require.Equal(t, 1.0, testutil.ToFloat64(m.analysesTotal.WithLabelValues("done")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.analysesTotal.WithLabelValues("no_text")))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.ObserveCompletion("x", "ok", time.Second)
	m.ObserveAnalysis("done", 1)
}

func TestMiddlewareRecordsStatus(t *testing.T) {
	m := New()
	h := m.Middleware("/api/analyze", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/analyze", nil))

	require.Equal(t, 1.0, testutil.ToFloat64(m.requestTotal.WithLabelValues(http.MethodPost, "/api/analyze", "400")))
	require.Equal(t, 0.0, testutil.ToFloat64(m.requestInFlight))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "paper2startup_http_requests_total")
}
