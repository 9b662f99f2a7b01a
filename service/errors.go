package services

import (
	"errors"
	"net/http"

	"event-finder/models"
)

// ErrValidation marks requests the caller has to fix before retrying.
var ErrValidation = errors.New("invalid request")

// ErrConfig is returned when the server has no SerpApi key.
var ErrConfig = errors.New("API key is not configured on the server.")

// ValidationError carries a message safe to show to the caller.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// UpstreamError is any failure to obtain events from the provider. StatusCode
// is the provider's HTTP status, or 0 when no response was received.
type UpstreamError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *UpstreamError) Error() string {
	return "Failed to fetch events from SerpApi."
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// Code classifies the failure for API clients.
func (e *UpstreamError) Code() string {
	switch e.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return models.ErrorCodeUpstreamUnauthorized
	case http.StatusTooManyRequests:
		return models.ErrorCodeUpstreamRateLimited
	default:
		return models.ErrorCodeUpstream
	}
}
