package serpapi

import (
	"context"
	"fmt"

	"event-finder/models"
)

// SerpApiAPI defines the interface for interacting with the SerpApi events search
type SerpApiAPI interface {
	SearchEvents(ctx context.Context, city string) (*models.SearchEventsResponse, error)
	SetCredentials(apiKey string)
	HasCredentials() bool
}

// ProviderError is a failure reported by SerpApi itself, either through a
// non-2xx status or through the "error" field of a 2xx payload.
type ProviderError struct {
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("serpapi: status %d: %s", e.StatusCode, e.Message)
}

// EventsQuery is the search phrase sent for a city.
func EventsQuery(city string) string {
	return "Events in " + city
}
