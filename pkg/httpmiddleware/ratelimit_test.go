package httpmiddleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiterAllow(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	l := newRateLimiter(RateLimitConfig{Requests: 3, Window: time.Minute})
	l.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		assert.True(t, l.allow("10.0.0.1"), "request %d should pass", i+1)
	}
	assert.False(t, l.allow("10.0.0.1"), "fourth request should be throttled")

	// Another client has its own window.
	assert.True(t, l.allow("10.0.0.2"))

	// Once the window slides past the first hits, the client is admitted again.
	now = now.Add(61 * time.Second)
	assert.True(t, l.allow("10.0.0.1"))
}

func TestRateLimiterCleanup(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	l := newRateLimiter(RateLimitConfig{Requests: 1, Window: time.Second})
	l.now = func() time.Time { return now }

	l.allow("a")
	l.allow("b")
	require.Len(t, l.hits, 2)

	now = now.Add(5 * time.Second)
	l.allow("c")
	_, hasA := l.hits["a"]
	_, hasB := l.hits["b"]
	assert.False(t, hasA)
	assert.False(t, hasB)
}

func TestRateLimitMiddleware(t *testing.T) {
	h := Wrap(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		}),
		RateLimit(RateLimitConfig{Requests: 2, Window: time.Minute}),
	)

	do := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/reports", nil)
		req.RemoteAddr = "192.0.2.1:4000"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, do().Code)
	assert.Equal(t, http.StatusOK, do().Code)

	rec := do()
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.9:1234"
	assert.Equal(t, "192.0.2.9", clientIP(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.5, 10.0.0.1")
	assert.Equal(t, "203.0.113.5", clientIP(req))
}
