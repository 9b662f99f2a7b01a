package util

import (
	"encoding/json"
	"fmt"
	"os"

	"event-finder/models"
)

// ReadSearchEventsResponseFromJSON loads a SearchEventsResponse from JSON on disk.
func ReadSearchEventsResponseFromJSON(filePath string) (*models.SearchEventsResponse, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	var resp models.SearchEventsResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal SearchEventsResponse: %w", err)
	}
	return &resp, nil
}

// ReadEventsResponseFromJSON loads a backend EventsResponse from JSON on disk.
func ReadEventsResponseFromJSON(filePath string) (*models.EventsResponse, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	var resp models.EventsResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal EventsResponse: %w", err)
	}
	return &resp, nil
}
