package serpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"event-finder/api"
	"event-finder/config"
	"event-finder/metrics"
	"event-finder/models"

	"github.com/rs/zerolog"
)

const searchEndpoint = "/search.json"

// SerpApiClient embeds the common HTTPClient
type SerpApiClient struct {
	*api.HTTPClient
	apiKey string
	logger zerolog.Logger
}

// NewSerpApiClient creates a new instance of SerpApiClient
func NewSerpApiClient(httpClient *api.HTTPClient, logger zerolog.Logger) *SerpApiClient {
	return &SerpApiClient{
		HTTPClient: httpClient,
		logger:     logger.With().Str("component", "serpapi").Logger(),
	}
}

func (c *SerpApiClient) SetCredentials(apiKey string) {
	c.apiKey = apiKey
}

func (c *SerpApiClient) HasCredentials() bool {
	return c.apiKey != ""
}

// SearchEvents runs a single google_events search for "Events in {city}".
// There are no retries.
func (c *SerpApiClient) SearchEvents(ctx context.Context, city string) (*models.SearchEventsResponse, error) {
	query := url.Values{}
	query.Set("engine", config.SERPAPI_ENGINE)
	query.Set("q", EventsQuery(city))
	query.Set("api_key", c.apiKey)

	c.logger.Debug().Str("city", city).Msg("fetching events from SerpApi")
	start := time.Now()

	var response models.SearchEventsResponse
	err := c.Request(ctx, http.MethodGet, searchEndpoint, query, nil, nil, &response)
	elapsed := time.Since(start)
	metrics.UpstreamRequestDuration.Observe(elapsed.Seconds())

	if err != nil {
		var statusErr *api.StatusError
		if errors.As(err, &statusErr) {
			metrics.UpstreamRequestsTotal.WithLabelValues("http_" + strconv.Itoa(statusErr.StatusCode)).Inc()
			return nil, &ProviderError{StatusCode: statusErr.StatusCode, Message: providerMessage(statusErr)}
		}
		if errors.Is(err, api.ErrTransport) {
			metrics.UpstreamRequestsTotal.WithLabelValues("transport").Inc()
		} else {
			metrics.UpstreamRequestsTotal.WithLabelValues("decode").Inc()
		}
		return nil, err
	}

	if response.Error != "" {
		metrics.UpstreamRequestsTotal.WithLabelValues("provider_error").Inc()
		return nil, &ProviderError{StatusCode: http.StatusOK, Message: response.Error}
	}

	metrics.UpstreamRequestsTotal.WithLabelValues("ok").Inc()
	c.logger.Info().
		Str("city", city).
		Int("events", len(response.EventsResults)).
		Str("external_request", elapsed.String()).
		Msg("SerpApi search completed")
	return &response, nil
}

// providerMessage extracts SerpApi's {"error": "..."} document, falling back
// to the HTTP status line.
func providerMessage(statusErr *api.StatusError) string {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(statusErr.Body, &body); err == nil && strings.TrimSpace(body.Error) != "" {
		return body.Error
	}
	return statusErr.Status
}
