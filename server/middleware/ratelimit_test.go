package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"event-finder/config"
	"event-finder/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func limitedHandler(cfg config.RateLimitConfig) http.Handler {
	return RateLimit(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func requestFrom(remoteAddr string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/events?city=Austin", nil)
	req.RemoteAddr = remoteAddr
	return req
}

func TestRateLimit_RejectsOverBudget(t *testing.T) {
	handler := limitedHandler(config.RateLimitConfig{EventsPerMinute: 2})

	for i := 0; i < 2; i++ {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, requestFrom("10.0.0.1:5000"))
		require.Equal(t, http.StatusOK, rr.Code)
	}

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, requestFrom("10.0.0.1:5001"))

	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Equal(t, "60", rr.Header().Get("Retry-After"))
	var body models.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, models.ErrorCodeRateLimited, body.Code)
}

func TestRateLimit_PerClient(t *testing.T) {
	handler := limitedHandler(config.RateLimitConfig{EventsPerMinute: 1})

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, requestFrom("10.0.0.1:5000"))
	other := httptest.NewRecorder()
	handler.ServeHTTP(other, requestFrom("10.0.0.2:5000"))

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusOK, other.Code)
}

func TestRateLimit_Disabled(t *testing.T) {
	handler := limitedHandler(config.RateLimitConfig{})

	for i := 0; i < 10; i++ {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, requestFrom("10.0.0.1:5000"))
		require.Equal(t, http.StatusOK, rr.Code)
	}
}

func TestClientKey(t *testing.T) {
	trusted := []string{"10.0.0.0/8"}
	tests := []struct {
		name       string
		remoteAddr string
		forwarded  string
		realIP     string
		want       string
	}{
		{"direct", "203.0.113.9:4000", "", "", "203.0.113.9"},
		{"untrusted proxy header ignored", "203.0.113.9:4000", "198.51.100.1", "", "203.0.113.9"},
		{"trusted proxy forwarded for", "10.1.2.3:4000", "198.51.100.1, 10.1.2.3", "", "198.51.100.1"},
		{"trusted proxy real ip", "10.1.2.3:4000", "", "198.51.100.2", "198.51.100.2"},
		{"trusted proxy no headers", "10.1.2.3:4000", "", "", "10.1.2.3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := requestFrom(tt.remoteAddr)
			if tt.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			if tt.realIP != "" {
				req.Header.Set("X-Real-IP", tt.realIP)
			}

			assert.Equal(t, tt.want, clientKey(req, trusted))
		})
	}
}
