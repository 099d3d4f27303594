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
	rl := NewRateLimiter(2, time.Minute, testLogger())
	defer rl.Stop()

	allowed, _ := rl.Allow("1.2.3.4")
	assert.True(t, allowed)
	allowed, _ = rl.Allow("1.2.3.4")
	assert.True(t, allowed)

	allowed, retryAfter := rl.Allow("1.2.3.4")
	assert.False(t, allowed)
	assert.Greater(t, retryAfter, time.Duration(0))
	assert.LessOrEqual(t, retryAfter, time.Minute)

	// Other clients keep their own bucket
	allowed, _ = rl.Allow("5.6.7.8")
	assert.True(t, allowed)
}

func TestRateLimiter_RefillsAfterWindow(t *testing.T) {
	rl := NewRateLimiter(1, 20*time.Millisecond, testLogger())
	defer rl.Stop()

	allowed, _ := rl.Allow("1.2.3.4")
	require.True(t, allowed)
	allowed, _ = rl.Allow("1.2.3.4")
	require.False(t, allowed)

	time.Sleep(30 * time.Millisecond)

	allowed, _ = rl.Allow("1.2.3.4")
	assert.True(t, allowed)
}

func TestRateLimitMiddleware_RejectsWithRetryAfter(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := RateLimitMiddleware(1, time.Minute, testLogger())(next)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/documents", nil)
	req.RemoteAddr = "1.2.3.4:5678"

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"detail":"rate limit exceeded, please try again later"}`, rec.Body.String())

	seconds, err := strconv.Atoi(rec.Header().Get("Retry-After"))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, seconds, 1)
	assert.LessOrEqual(t, seconds, 60)
}

func TestRateLimitByPathMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := RateLimitByPathMiddleware(
		[]PathRateLimit{{Path: "/api/v1/auth/login", Rate: 1, Window: time.Minute}},
		100, time.Minute, testLogger(),
	)(next)

	send := func(path string) int {
		req := httptest.NewRequest(http.MethodPost, path, nil)
		req.RemoteAddr = "1.2.3.4:5678"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, send("/api/v1/auth/login"))
	assert.Equal(t, http.StatusTooManyRequests, send("/api/v1/auth/login"))

	// Paths without a dedicated limit use the roomy default
	for i := 0; i < 10; i++ {
		assert.Equal(t, http.StatusOK, send("/api/v1/documents"))
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(r *http.Request)
		wantIP string
	}{
		{
			name:   "remote addr",
			setup:  func(r *http.Request) { r.RemoteAddr = "10.0.0.1:1234" },
			wantIP: "10.0.0.1:1234",
		},
		{
			name:   "x-forwarded-for single",
			setup:  func(r *http.Request) { r.Header.Set("X-Forwarded-For", "203.0.113.7") },
			wantIP: "203.0.113.7",
		},
		{
			name:   "x-forwarded-for chain takes first",
			setup:  func(r *http.Request) { r.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1") },
			wantIP: "203.0.113.7",
		},
		{
			name:   "x-real-ip",
			setup:  func(r *http.Request) { r.Header.Set("X-Real-IP", "203.0.113.9") },
			wantIP: "203.0.113.9",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			tt.setup(req)
			assert.Equal(t, tt.wantIP, getClientIP(req))
		})
	}
}
