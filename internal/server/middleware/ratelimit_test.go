package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter_Allow(t *testing.T) {
	limiter := NewRateLimiter(3, time.Minute, testLogger())
	defer limiter.Stop()

	for i := 0; i < 3; i++ {
		ok, _ := limiter.Allow("10.0.0.1")
		assert.True(t, ok, "request %d should pass", i)
	}

	ok, retryAfter := limiter.Allow("10.0.0.1")
	assert.False(t, ok)
	assert.Greater(t, retryAfter, time.Duration(0))
	assert.LessOrEqual(t, retryAfter, time.Minute)

	// A different key has its own bucket.
	ok, _ = limiter.Allow("10.0.0.2")
	assert.True(t, ok)
}

func TestRateLimiter_RefillsAfterWindow(t *testing.T) {
	limiter := NewRateLimiter(1, 20*time.Millisecond, testLogger())
	defer limiter.Stop()

	ok, _ := limiter.Allow("10.0.0.1")
	require.True(t, ok)
	ok, _ = limiter.Allow("10.0.0.1")
	require.False(t, ok)

	time.Sleep(30 * time.Millisecond)

	ok, _ = limiter.Allow("10.0.0.1")
	assert.True(t, ok)
}

func TestRateLimitMiddleware(t *testing.T) {
	wrapped := RateLimitMiddleware(2, time.Minute, testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		wrapped.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	w := httptest.NewRecorder()
	wrapped.ServeHTTP(w, req)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	// Clients use this header to schedule the retry.
	retryAfter, err := strconv.Atoi(w.Header().Get("Retry-After"))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, retryAfter, 1)
	assert.LessOrEqual(t, retryAfter, 60)
}

func TestRateLimitByPathMiddleware(t *testing.T) {
	limits := []PathRateLimit{
		{Path: "/api/v1/auth/login", Rate: 1, Window: time.Minute},
	}
	wrapped := RateLimitByPathMiddleware(limits, 100, time.Minute, testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func(path string) int {
		req := httptest.NewRequest(http.MethodPost, path, nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		wrapped.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, send("/api/v1/auth/login"))
	assert.Equal(t, http.StatusTooManyRequests, send("/api/v1/auth/login"))

	// The default limit still applies elsewhere.
	assert.Equal(t, http.StatusOK, send("/api/v1/sync/push"))
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name     string
		headers  map[string]string
		remote   string
		expected string
	}{
		{"remote addr only", nil, "10.0.0.1:1234", "10.0.0.1:1234"},
		{"x-forwarded-for", map[string]string{"X-Forwarded-For": "203.0.113.5, 10.0.0.2"}, "10.0.0.1:1234", "203.0.113.5"},
		{"x-real-ip", map[string]string{"X-Real-IP": "203.0.113.7"}, "10.0.0.1:1234", "203.0.113.7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.expected, getClientIP(req))
		})
	}
}
