package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"event-finder/api"
	"event-finder/models"
)

const eventsEndpoint = "/api/events"

// ErrNetwork wraps failures where the backend could not be reached.
var ErrNetwork = errors.New("network error")

// StatusError is a non-2xx answer from the backend. Code is the backend's
// machine readable error class, when it sent one.
type StatusError struct {
	StatusCode int
	Message    string
	Details    string
	Code       string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("API request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("API request failed with status %d: %s", e.StatusCode, e.Message)
}

// PayloadError is a 2xx answer the client could not use: an "error" field in
// the body, or a body that is not an events document.
type PayloadError struct {
	Message string
}

func (e *PayloadError) Error() string {
	return e.Message
}

// Client talks to the event finder backend.
type Client struct {
	*api.HTTPClient
}

// NewClient creates a client for the backend at baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{HTTPClient: api.NewHTTPClient(strings.TrimRight(baseURL, "/"), timeout)}
}

type eventsPayload struct {
	City   string               `json:"city"`
	Events []models.EventRecord `json:"events"`
	Error  string               `json:"error"`
}

// FetchEvents issues a single GET /api/events?city= and returns the events in
// provider order. A missing events field is an empty result.
func (c *Client) FetchEvents(ctx context.Context, city string) ([]models.EventRecord, error) {
	query := url.Values{}
	query.Set("city", city)

	var payload eventsPayload
	err := c.Request(ctx, http.MethodGet, eventsEndpoint, query, nil, nil, &payload)
	if err != nil {
		var statusErr *api.StatusError
		switch {
		case errors.As(err, &statusErr):
			return nil, toStatusError(statusErr)
		case errors.Is(err, api.ErrTransport):
			return nil, fmt.Errorf("%w: %w", ErrNetwork, err)
		default:
			return nil, &PayloadError{Message: err.Error()}
		}
	}

	if payload.Error != "" {
		return nil, &PayloadError{Message: payload.Error}
	}
	if payload.Events == nil {
		return []models.EventRecord{}, nil
	}
	return payload.Events, nil
}

// Health calls GET /api/health.
func (c *Client) Health(ctx context.Context) (*models.HealthResponse, error) {
	var health models.HealthResponse
	if err := c.Request(ctx, http.MethodGet, "/api/health", nil, nil, nil, &health); err != nil {
		var statusErr *api.StatusError
		if errors.As(err, &statusErr) {
			return nil, toStatusError(statusErr)
		}
		if errors.Is(err, api.ErrTransport) {
			return nil, fmt.Errorf("%w: %w", ErrNetwork, err)
		}
		return nil, err
	}
	return &health, nil
}

func toStatusError(statusErr *api.StatusError) *StatusError {
	out := &StatusError{StatusCode: statusErr.StatusCode}
	var body models.ErrorResponse
	if err := json.Unmarshal(statusErr.Body, &body); err == nil {
		out.Message = body.Error
		out.Details = body.Details
		out.Code = body.Code
	}
	return out
}
