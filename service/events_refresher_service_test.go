package services

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"testing"
	"time"

	"event-finder/api"
	"event-finder/api/serpapi"
	"event-finder/dao/redis"
	"event-finder/db"
	"event-finder/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventsRefresherService_RefreshCachedEvents(t *testing.T) {
	cache := redis.NewRedisEventsDAO(db.NewMemoryRedisClient(context.Background()), time.Hour)
	require.NoError(t, cache.SetEvents("Austin", []models.EventRecord{{Title: "Stale"}}))
	require.NoError(t, cache.SetEvents("Atlantis", []models.EventRecord{{Title: "Gone"}}))
	require.NoError(t, cache.SetEvents("Boston", []models.EventRecord{{Title: "Kept"}}))

	stub := newStubSerpApi(func(_ context.Context, city string) (*models.SearchEventsResponse, error) {
		switch city {
		case "austin":
			return eventsResponse("Fresh"), nil
		case "atlantis":
			return nil, &serpapi.ProviderError{StatusCode: http.StatusBadRequest, Message: "Unsupported location"}
		default:
			return nil, fmt.Errorf("%w: timeout", api.ErrTransport)
		}
	})
	refresher := NewEventsRefresherService(cache, stub, zerolog.Nop())

	refreshed, err := refresher.RefreshCachedEvents(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, refreshed)

	austin, found, err := cache.GetEvents("Austin")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Fresh", austin[0].Title)

	_, found, err = cache.GetEvents("Atlantis")
	require.NoError(t, err)
	assert.False(t, found)

	boston, found, err := cache.GetEvents("Boston")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Kept", boston[0].Title)

	cities, err := cache.ListCachedCities()
	require.NoError(t, err)
	sort.Strings(cities)
	assert.Equal(t, []string{"austin", "boston"}, cities)
}

func TestEventsRefresherService_StopsOnCancelledContext(t *testing.T) {
	cache := redis.NewRedisEventsDAO(db.NewMemoryRedisClient(context.Background()), time.Hour)
	require.NoError(t, cache.SetEvents("Austin", nil))
	stub := newStubSerpApi(func(context.Context, string) (*models.SearchEventsResponse, error) {
		return eventsResponse("Fresh"), nil
	})
	refresher := NewEventsRefresherService(cache, stub, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	refreshed, err := refresher.RefreshCachedEvents(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, refreshed)
	assert.Zero(t, stub.calls.Load())
}

func TestEventsRefresherService_StartPeriodicJob(t *testing.T) {
	cache := redis.NewRedisEventsDAO(db.NewMemoryRedisClient(context.Background()), time.Hour)
	require.NoError(t, cache.SetEvents("Austin", nil))
	stub := newStubSerpApi(func(context.Context, string) (*models.SearchEventsResponse, error) {
		return eventsResponse("Fresh"), nil
	})
	refresher := NewEventsRefresherService(cache, stub, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	refresher.StartPeriodicJob(ctx, 10*time.Millisecond)

	assert.Eventually(t, func() bool {
		events, found, err := cache.GetEvents("Austin")
		return err == nil && found && len(events) == 1
	}, time.Second, 5*time.Millisecond)
}
