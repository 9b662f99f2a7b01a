package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"event-finder/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL+"/", time.Second)
}

func TestClient_FetchEvents_Success(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/events", r.URL.Path)
		assert.Equal(t, "New York", r.URL.Query().Get("city"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"city":"New York","events":[{"title":"B"},{"title":"A"}]}`))
	})

	events, err := client.FetchEvents(context.Background(), "New York")

	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "B", events[0].Title)
	assert.Equal(t, "A", events[1].Title)
}

func TestClient_FetchEvents_MissingEventsIsEmpty(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"city":"Nowhere"}`))
	})

	events, err := client.FetchEvents(context.Background(), "Nowhere")

	require.NoError(t, err)
	assert.NotNil(t, events)
	assert.Empty(t, events)
}

func TestClient_FetchEvents_StatusErrors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantCode string
		wantMsg  string
	}{
		{
			name:     "upstream rate limited",
			status:   http.StatusBadGateway,
			body:     `{"error":"Failed to fetch events from SerpApi.","details":"Too many requests","code":"upstream_rate_limited"}`,
			wantCode: models.ErrorCodeUpstreamRateLimited,
			wantMsg:  "Failed to fetch events from SerpApi.",
		},
		{
			name:     "missing key",
			status:   http.StatusInternalServerError,
			body:     `{"error":"API key is not configured on the server.","code":"config"}`,
			wantCode: models.ErrorCodeConfig,
			wantMsg:  "API key is not configured on the server.",
		},
		{
			name:   "non json body",
			status: http.StatusTooManyRequests,
			body:   `slow down`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := client.FetchEvents(context.Background(), "Austin")

			var statusErr *StatusError
			require.ErrorAs(t, err, &statusErr)
			assert.Equal(t, tt.status, statusErr.StatusCode)
			assert.Equal(t, tt.wantCode, statusErr.Code)
			assert.Equal(t, tt.wantMsg, statusErr.Message)
		})
	}
}

func TestClient_FetchEvents_PayloadError(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error":"Invalid API key."}`))
	})

	_, err := client.FetchEvents(context.Background(), "Austin")

	var payloadErr *PayloadError
	require.ErrorAs(t, err, &payloadErr)
	assert.Equal(t, "Invalid API key.", payloadErr.Message)
}

func TestClient_FetchEvents_MalformedBody(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>oops</html>`))
	})

	_, err := client.FetchEvents(context.Background(), "Austin")

	var payloadErr *PayloadError
	assert.ErrorAs(t, err, &payloadErr)
}

func TestClient_FetchEvents_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()
	client := NewClient(server.URL, time.Second)

	_, err := client.FetchEvents(context.Background(), "Austin")

	assert.True(t, errors.Is(err, ErrNetwork))
}

func TestClient_Health(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/health", r.URL.Path)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	health, err := client.Health(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "ok", health.Status)
}
