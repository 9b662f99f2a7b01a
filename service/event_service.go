package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"event-finder/api/serpapi"
	"event-finder/metrics"
	"event-finder/models"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// MaxCityLength bounds the city parameter.
const MaxCityLength = 100

var validate = validator.New()

// EventsCache stores provider results per city. Implementations normalize the
// city themselves.
type EventsCache interface {
	GetEvents(city string) ([]models.EventRecord, bool, error)
	SetEvents(city string, events []models.EventRecord) error
}

// EventService relays event searches to SerpApi.
type EventService struct {
	serpApi serpapi.SerpApiAPI
	cache   EventsCache
	logger  zerolog.Logger
	group   singleflight.Group
}

// NewEventService constructs an EventService. cache may be nil.
func NewEventService(serpApi serpapi.SerpApiAPI, cache EventsCache, logger zerolog.Logger) *EventService {
	return &EventService{
		serpApi: serpApi,
		cache:   cache,
		logger:  logger.With().Str("component", "event_service").Logger(),
	}
}

// SearchEvents returns the provider's events for city. The city is trimmed
// before use and echoed back trimmed. Errors are ErrValidation, ErrConfig or
// *UpstreamError.
func (es *EventService) SearchEvents(ctx context.Context, city string) (*models.EventsResponse, error) {
	city = strings.TrimSpace(city)
	if err := ValidateCity(city); err != nil {
		return nil, err
	}
	if !es.serpApi.HasCredentials() {
		return nil, ErrConfig
	}

	if es.cache != nil {
		events, found, err := es.cache.GetEvents(city)
		if err != nil {
			es.logger.Warn().Err(err).Str("city", city).Msg("events cache lookup failed")
		} else if found {
			es.logger.Debug().Str("city", city).Int("events", len(events)).Msg("serving events from cache")
			return es.respond(city, events), nil
		}
	}

	start := time.Now()
	v, err, shared := es.group.Do(strings.ToLower(city), func() (interface{}, error) {
		return es.fetch(context.WithoutCancel(ctx), city)
	})
	if err != nil {
		return nil, err
	}
	events := v.([]models.EventRecord)
	es.logger.Info().
		Str("city", city).
		Int("events", len(events)).
		Bool("shared", shared).
		Dur("duration", time.Since(start)).
		Msg("events search completed")
	return es.respond(city, events), nil
}

// fetch calls the provider once and caches the result.
func (es *EventService) fetch(ctx context.Context, city string) ([]models.EventRecord, error) {
	response, err := es.serpApi.SearchEvents(ctx, city)
	if err != nil {
		upstreamErr := toUpstreamError(err)
		es.logger.Error().
			Err(err).
			Str("city", city).
			Int("status", upstreamErr.StatusCode).
			Msg("error fetching events from SerpApi")
		return nil, upstreamErr
	}

	events := response.EventsResults
	if events == nil {
		events = []models.EventRecord{}
	}
	if es.cache != nil {
		if err := es.cache.SetEvents(city, events); err != nil {
			es.logger.Warn().Err(err).Str("city", city).Msg("failed to cache events")
		}
	}
	return events, nil
}

func (es *EventService) respond(city string, events []models.EventRecord) *models.EventsResponse {
	metrics.EventsReturned.Observe(float64(len(events)))
	return &models.EventsResponse{City: city, Events: events}
}

// ValidateCity checks an already trimmed city name.
func ValidateCity(city string) error {
	err := validate.Var(city, "required,max="+strconv.Itoa(MaxCityLength))
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 && fieldErrs[0].Tag() == "max" {
		return &ValidationError{Field: "city", Message: fmt.Sprintf("City query parameter must be at most %d characters.", MaxCityLength)}
	}
	return &ValidationError{Field: "city", Message: "City query parameter is required."}
}

func toUpstreamError(err error) *UpstreamError {
	var providerErr *serpapi.ProviderError
	if errors.As(err, &providerErr) {
		return &UpstreamError{StatusCode: providerErr.StatusCode, Message: providerErr.Message, Err: err}
	}
	return &UpstreamError{Message: err.Error(), Err: err}
}
