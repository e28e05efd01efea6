package observability

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blockstream/internal/platform/models"
)

func TestObserveOperation(t *testing.T) {
	m := NewMetrics("test")

	m.ObserveOperation("ListWebhooks", nil, time.Millisecond)
	m.ObserveOperation("ListWebhooks", nil, time.Millisecond)
	m.ObserveOperation("ListWebhooks", errors.New("boom"), time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.OperationsTotal.WithLabelValues("ListWebhooks", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.OperationsTotal.WithLabelValues("ListWebhooks", "error")))
}

func TestSetStatus(t *testing.T) {
	m := NewMetrics("test")
	m.SetStatus(models.SystemStatus{WebhooksActive: 3, IndexersRunning: 2, DBConnected: true})

	assert.Equal(t, 3.0, testutil.ToFloat64(m.WebhooksActive))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.IndexersRunning))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DBConnected))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveOperation("x", nil, 0)
	m.ObserveRequest("/", http.MethodGet, 200, 0)
	m.SetStatus(models.SystemStatus{})
	m.IncAudit()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandlerExposition(t *testing.T) {
	m := NewMetrics("bs")
	m.ObserveRequest("/api/v1/webhooks", http.MethodGet, 200, 5*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `bs_http_requests_total{method="GET",route="/api/v1/webhooks",status="200"} 1`)
}
