package redis

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"testing"
	"time"

	"event-finder/db"
	"event-finder/metrics"
	"event-finder/models"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEvents() []models.EventRecord {
	return []models.EventRecord{
		{Title: "Blues on the Green", Date: &models.EventDate{StartDate: "Oct 19", When: "Today, 6 PM"}},
		{Title: "Go Meetup", Address: []string{"Hosted by Austin Gophers", "Online"}},
	}
}

func TestEventsKey(t *testing.T) {
	assert.Equal(t, "events_v1:austin", EventsKey("  Austin "))
	assert.Equal(t, EventsKey("NEW YORK"), EventsKey("new york"))
}

func TestRedisEventsDAO_SetEvents_Success(t *testing.T) {
	mockClient := db.NewMemoryRedisClient(context.Background())
	dao := NewRedisEventsDAO(mockClient, time.Minute)

	err := dao.SetEvents("Austin", testEvents())

	require.NoError(t, err)
	stored, err := mockClient.Get("events_v1:austin")
	require.NoError(t, err)
	var decoded []models.EventRecord
	require.NoError(t, json.Unmarshal([]byte(stored), &decoded))
	assert.Equal(t, testEvents(), decoded)
}

func TestRedisEventsDAO_GetEvents_Hit(t *testing.T) {
	mockClient := db.NewMemoryRedisClient(context.Background())
	dao := NewRedisEventsDAO(mockClient, time.Minute)
	require.NoError(t, dao.SetEvents("Austin", testEvents()))
	hits := testutil.ToFloat64(metrics.EventsCacheLookupsTotal.WithLabelValues("hit"))

	events, found, err := dao.GetEvents("austin")

	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, testEvents(), events)
	assert.Equal(t, hits+1, testutil.ToFloat64(metrics.EventsCacheLookupsTotal.WithLabelValues("hit")))
}

func TestRedisEventsDAO_EmptyListIsCached(t *testing.T) {
	dao := NewRedisEventsDAO(db.NewMemoryRedisClient(context.Background()), time.Minute)
	require.NoError(t, dao.SetEvents("Nowhere", nil))

	events, found, err := dao.GetEvents("Nowhere")

	require.NoError(t, err)
	assert.True(t, found)
	assert.Empty(t, events)
}

func TestRedisEventsDAO_GetEvents_Miss(t *testing.T) {
	dao := NewRedisEventsDAO(db.NewMemoryRedisClient(context.Background()), time.Minute)
	misses := testutil.ToFloat64(metrics.EventsCacheLookupsTotal.WithLabelValues("miss"))

	events, found, err := dao.GetEvents("Boston")

	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, events)
	assert.Equal(t, misses+1, testutil.ToFloat64(metrics.EventsCacheLookupsTotal.WithLabelValues("miss")))
}

func TestRedisEventsDAO_GetEvents_Expired(t *testing.T) {
	now := time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC)
	mockClient := db.NewMemoryRedisClient(context.Background())
	mockClient.SetClock(func() time.Time { return now })
	dao := NewRedisEventsDAO(mockClient, 15*time.Minute)
	require.NoError(t, dao.SetEvents("Austin", testEvents()))

	now = now.Add(16 * time.Minute)
	_, found, err := dao.GetEvents("Austin")

	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisEventsDAO_GetEvents_Errors(t *testing.T) {
	mockClient := db.NewMemoryRedisClient(context.Background())
	dao := NewRedisEventsDAO(mockClient, time.Minute)
	require.NoError(t, mockClient.Set(EventsKey("Austin"), "{not json"))

	_, found, err := dao.GetEvents("Austin")
	assert.False(t, found)
	assert.ErrorContains(t, err, "failed to unmarshal cached events JSON")

	mockClient.Err = errors.New("connection reset")
	_, found, err = dao.GetEvents("Austin")
	assert.False(t, found)
	assert.ErrorContains(t, err, "connection reset")
}

func TestRedisEventsDAO_DeleteAndList(t *testing.T) {
	dao := NewRedisEventsDAO(db.NewMemoryRedisClient(context.Background()), time.Minute)
	require.NoError(t, dao.SetEvents("Austin", testEvents()))
	require.NoError(t, dao.SetEvents("Boston", nil))

	cities, err := dao.ListCachedCities()
	require.NoError(t, err)
	sort.Strings(cities)
	assert.Equal(t, []string{"austin", "boston"}, cities)

	require.NoError(t, dao.DeleteEvents("AUSTIN"))
	_, found, err := dao.GetEvents("Austin")
	require.NoError(t, err)
	assert.False(t, found)
}
