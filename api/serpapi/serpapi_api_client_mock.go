package serpapi

import (
	"context"
	"strings"
	"sync"

	"event-finder/models"
	"event-finder/util"
)

// SerpApiClientMock serves a recorded SerpApi payload from disk. Every city
// gets the same events; the requested cities are kept for inspection.
type SerpApiClientMock struct {
	responsePath string
	apiKey       string

	mu     sync.Mutex
	Cities []string
}

// NewSerpApiClientMock creates a new instance of SerpApiClientMock
func NewSerpApiClientMock(responsePath string) *SerpApiClientMock {
	return &SerpApiClientMock{responsePath: responsePath, apiKey: "mock"}
}

// SearchEvents returns the fixture, or an empty result for the city "nowhere".
func (c *SerpApiClientMock) SearchEvents(ctx context.Context, city string) (*models.SearchEventsResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.Cities = append(c.Cities, city)
	c.mu.Unlock()
	if strings.EqualFold(city, "nowhere") {
		return &models.SearchEventsResponse{}, nil
	}
	return util.ReadSearchEventsResponseFromJSON(c.responsePath)
}

func (c *SerpApiClientMock) SetCredentials(apiKey string) {
	c.apiKey = apiKey
}

func (c *SerpApiClientMock) HasCredentials() bool {
	return c.apiKey != ""
}
