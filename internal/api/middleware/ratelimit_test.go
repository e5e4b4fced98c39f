package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubLimiter struct {
	allowed bool
	tokens  []string
}

func (s *stubLimiter) Allow(token string) (bool, int) {
	s.tokens = append(s.tokens, token)
	return s.allowed, 0
}

func (s *stubLimiter) Name() string { return "test" }

type nopLogger struct{}

func (nopLogger) Warn(format string, v ...interface{}) {}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		expected   string
	}{
		{
			name:       "remote addr without proxy headers",
			remoteAddr: "203.0.113.7:51234",
			expected:   "203.0.113.7",
		},
		{
			name:       "forwarded-for wins over real-ip",
			remoteAddr: "10.0.0.1:80",
			headers: map[string]string{
				"X-Forwarded-For": "198.51.100.2, 10.0.0.1",
				"X-Real-IP":       "192.0.2.9",
			},
			expected: "198.51.100.2",
		},
		{
			name:       "real-ip fallback",
			remoteAddr: "10.0.0.1:80",
			headers:    map[string]string{"X-Real-IP": "192.0.2.9"},
			expected:   "192.0.2.9",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/services", nil)
			r.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}

			assert.Equal(t, tt.expected, ClientIP(r))
		})
	}
}

func TestRateLimit_PassesAllowedRequests(t *testing.T) {
	limiter := &stubLimiter{allowed: true}
	called := false

	handler := RateLimit(limiter, nil, nopLogger{})(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) { called = true }))

	r := httptest.NewRequest(http.MethodGet, "/api/services", nil)
	r.RemoteAddr = "203.0.113.7:51234"
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.True(t, called)
	assert.Equal(t, []string{"203.0.113.7"}, limiter.tokens)
}

func TestRateLimit_RejectsWith429(t *testing.T) {
	limiter := &stubLimiter{allowed: false}

	handler := RateLimit(limiter, nil, nopLogger{})(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("rejected request must not reach the handler")
		}))

	r := httptest.NewRequest(http.MethodGet, "/api/services", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "too many requests")
}
