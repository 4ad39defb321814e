package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_CountsAndExposes(t *testing.T) {
	reg := prometheus.NewRegistry()
	svc := NewService(reg)

	svc.IncEnrollmentsCreated()
	svc.IncEnrollmentsCreated()
	svc.IncEnrollmentsRejected("conflict")
	svc.IncTeamSwaps()
	svc.IncEventsPublished("enrollment-created")
	svc.ObserveStatsFetchDuration(0.2)
	svc.IncHTTPRequests("GET /health", http.StatusOK)

	assert.Equal(t, float64(2), testutil.ToFloat64(svc.EnrollmentsCreated))
	assert.Equal(t, float64(1), testutil.ToFloat64(svc.EnrollmentsRejected.WithLabelValues("conflict")))
	assert.Equal(t, float64(1), testutil.ToFloat64(svc.TeamSwaps))

	rr := httptest.NewRecorder()
	NewMetricsHandler(reg).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "squadup_enrollments_created_total 2")
	assert.Contains(t, rr.Body.String(), `squadup_events_published_total{event="enrollment-created"} 1`)
	assert.Contains(t, rr.Body.String(), "squadup_stats_fetch_duration_seconds_count 1")
	assert.Contains(t, rr.Body.String(), `squadup_http_requests_total{route="GET /health",status="200"} 1`)
}
