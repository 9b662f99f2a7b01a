// models/search_events_response.go
package models

// SearchEventsResponse is the subset of the SerpApi google_events payload
// the relay cares about. Error is set by the provider on failures, sometimes
// together with a 2xx status.
type SearchEventsResponse struct {
	SearchMetadata   SearchMetadata `json:"search_metadata"`
	SearchParameters map[string]any `json:"search_parameters,omitempty"`
	EventsResults    []EventRecord  `json:"events_results,omitempty"`
	Error            string         `json:"error,omitempty"`
}

type SearchMetadata struct {
	ID             string  `json:"id,omitempty"`
	Status         string  `json:"status,omitempty"`
	CreatedAt      string  `json:"created_at,omitempty"`
	ProcessedAt    string  `json:"processed_at,omitempty"`
	TotalTimeTaken float64 `json:"total_time_taken,omitempty"`
}
