package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blockstream/internal/platform/ids"
	"blockstream/internal/platform/observability"
)

func TestRateLimiterBucket(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(2)
	rl.now = func() time.Time { return now }

	assert.True(t, rl.Allow("a"))
	assert.True(t, rl.Allow("a"))
	assert.False(t, rl.Allow("a"))
	assert.True(t, rl.Allow("b"))

	now = now.Add(30 * time.Second)
	assert.True(t, rl.Allow("a"))
	assert.False(t, rl.Allow("a"))
}

func TestRateLimiterDisabled(t *testing.T) {
	rl := NewRateLimiter(0)
	for i := 0; i < 100; i++ {
		require.True(t, rl.Allow("x"))
	}
}

func TestRateLimiterEvictsIdle(t *testing.T) {
	now := time.Now()
	rl := NewRateLimiter(1)
	rl.now = func() time.Time { return now }
	rl.Allow("a")

	now = now.Add(bucketIdle + time.Second)
	rl.evictIdle()

	_, ok := rl.store.Load("a")
	assert.False(t, ok)
}

func TestLimitMiddleware(t *testing.T) {
	rl := NewRateLimiter(1)
	h := rl.Limit(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusCreated) })

	req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks", nil)
	req.RemoteAddr = "10.1.1.1:5555"

	rec := httptest.NewRecorder()
	h(rec, req)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = httptest.NewRecorder()
	h(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))
	assert.Contains(t, rec.Body.String(), "RATE_LIMIT_EXCEEDED")
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.168.0.9:4000"
	assert.Equal(t, "192.168.0.9", ClientIP(req, false))

	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	assert.Equal(t, "192.168.0.9", ClientIP(req, false))
	assert.Equal(t, "203.0.113.7", ClientIP(req, true))
}

func TestLimitIgnoresForwardedForFromUntrustedClients(t *testing.T) {
	rl := NewRateLimiter(1)
	h := RequestID(ids.UUID{}, false)(rl.Limit(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	send := func(forwarded string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks", nil)
		req.RemoteAddr = "10.1.1.1:5555"
		req.Header.Set("X-Forwarded-For", forwarded)
		rec := httptest.NewRecorder()
		h(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusCreated, send("198.51.100.1"))
	assert.Equal(t, http.StatusTooManyRequests, send("198.51.100.2"))
}

func TestLimitKeysOnForwardedForBehindTrustedProxy(t *testing.T) {
	rl := NewRateLimiter(1)
	h := RequestID(ids.UUID{}, true)(rl.Limit(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	for _, client := range []string{"198.51.100.1", "198.51.100.2"} {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks", nil)
		req.RemoteAddr = "10.1.1.1:5555"
		req.Header.Set("X-Forwarded-For", client)
		rec := httptest.NewRecorder()
		h(rec, req)
		assert.Equal(t, http.StatusCreated, rec.Code, client)
	}
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(ids.UUID{}, false)(func(w http.ResponseWriter, r *http.Request) {
		seen = requestIDFrom(r)
	})

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.True(t, strings.HasPrefix(seen, ids.PrefixRequest))
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	h(rec, req)
	assert.Equal(t, "abc-123", seen)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}

func TestAccessLogRecordsMetrics(t *testing.T) {
	m := observability.NewMetrics("test")
	h := AccessLog(m)(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	h(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("/missing", http.MethodGet, "404")))
}

func TestRecover(t *testing.T) {
	rec := httptest.NewRecorder()
	Recover(rec, httptest.NewRequest(http.MethodGet, "/", nil), "boom")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "INTERNAL_ERROR")
}
