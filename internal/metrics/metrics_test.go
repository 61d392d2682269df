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

func TestMetrics_Recorder(t *testing.T) {
	m := New()

	m.PersonCreated(true)
	m.PersonCreated(false)
	m.PersonCreated(true)
	m.PersonUpdated(false)
	m.PersonDeleted()
	m.UserCreated()
	m.LoginAttempt(true)
	m.LoginAttempt(false)
	m.LoginAttempt(false)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.PeopleCreated.WithLabelValues("true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PeopleCreated.WithLabelValues("false")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PeopleUpdated.WithLabelValues("false")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PeopleDeleted))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.UsersCreated))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.LoginAttempts.WithLabelValues("success")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.LoginAttempts.WithLabelValues("failure")))
}

func TestMetrics_IndependentRegistries(t *testing.T) {
	a, b := New(), New()

	a.UserCreated()

	assert.Equal(t, 1.0, testutil.ToFloat64(a.UsersCreated))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.UsersCreated))
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.ObserveRequest("/api/v1/people/{personId}", http.MethodGet, http.StatusOK, 15*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `people_registry_http_requests_total{method="GET",route="/api/v1/people/{personId}",status="200"} 1`)
	assert.Contains(t, string(body), "people_registry_http_request_duration_seconds_bucket")
}
