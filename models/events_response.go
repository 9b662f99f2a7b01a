// models/events_response.go
package models

// EventsResponse is the body of a successful GET /api/events.
type EventsResponse struct {
	City   string        `json:"city"`
	Events []EventRecord `json:"events"`
}

// HealthResponse is the body of GET /api/health.
type HealthResponse struct {
	Status string `json:"status"`
}
