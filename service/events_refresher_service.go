package services

import (
	"context"
	"errors"
	"time"

	"event-finder/api/serpapi"
	"event-finder/models"

	"github.com/rs/zerolog"
)

// CachedCities is the part of the events cache the refresher walks.
type CachedCities interface {
	EventsCache
	ListCachedCities() ([]string, error)
	DeleteEvents(city string) error
}

// EventsRefresherService periodically re-fetches every cached city so popular
// searches stay warm.
type EventsRefresherService struct {
	cache   CachedCities
	serpApi serpapi.SerpApiAPI
	logger  zerolog.Logger
}

// NewEventsRefresherService constructs a new refresher with dependencies.
func NewEventsRefresherService(cache CachedCities, serpApi serpapi.SerpApiAPI, logger zerolog.Logger) *EventsRefresherService {
	return &EventsRefresherService{
		cache:   cache,
		serpApi: serpApi,
		logger:  logger.With().Str("component", "events_refresher").Logger(),
	}
}

// StartPeriodicJob launches the background loop at the given interval. The
// loop stops when ctx is done.
func (er *EventsRefresherService) StartPeriodicJob(ctx context.Context, interval time.Duration) {
	go er.startPeriodicJob(ctx, interval)
}

func (er *EventsRefresherService) startPeriodicJob(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			er.logger.Info().Msg("running periodic events refresher job")
			refreshed, err := er.RefreshCachedEvents(ctx)
			if err != nil {
				er.logger.Error().Err(err).Msg("RefreshCachedEvents returned error")
				continue
			}
			er.logger.Info().Int("cities", refreshed).Msg("RefreshCachedEvents completed")
		}
	}
}

// RefreshCachedEvents fetches fresh results for every cached city and returns
// how many were refreshed. Cities the provider rejects are evicted; transport
// failures leave the old entry in place.
func (er *EventsRefresherService) RefreshCachedEvents(ctx context.Context) (int, error) {
	cities, err := er.cache.ListCachedCities()
	if err != nil {
		return 0, err
	}
	er.logger.Debug().Int("cities", len(cities)).Msg("found cached cities")

	refreshed := 0
	for _, city := range cities {
		if err := ctx.Err(); err != nil {
			return refreshed, err
		}

		response, err := er.serpApi.SearchEvents(ctx, city)
		if err != nil {
			var providerErr *serpapi.ProviderError
			if errors.As(err, &providerErr) {
				er.logger.Warn().Err(err).Str("city", city).Msg("provider rejected refresh, evicting cache entry")
				if err := er.cache.DeleteEvents(city); err != nil {
					er.logger.Error().Err(err).Str("city", city).Msg("failed to evict cache entry")
				}
				continue
			}
			er.logger.Warn().Err(err).Str("city", city).Msg("refresh failed, keeping cached events")
			continue
		}

		events := response.EventsResults
		if events == nil {
			events = []models.EventRecord{}
		}
		if err := er.cache.SetEvents(city, events); err != nil {
			er.logger.Error().Err(err).Str("city", city).Msg("failed to cache refreshed events")
			continue
		}
		refreshed++
	}
	return refreshed, nil
}
