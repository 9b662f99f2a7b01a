package db_test

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"event-finder/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisClient_SetAndGet(t *testing.T) {
	tests := []struct {
		name   string
		client db.RedisClient
	}{
		{"MemoryRedisClient", db.NewMemoryRedisClient(context.Background())},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require.NoError(t, test.client.Set("test-key", "test-value"))

			retrieved, err := test.client.Get("test-key")

			require.NoError(t, err)
			assert.Equal(t, "test-value", retrieved)
		})
	}
}

func TestRedisClient_MissingKey(t *testing.T) {
	client := db.NewMemoryRedisClient(context.Background())

	_, err := client.Get("absent")

	assert.ErrorIs(t, err, db.ErrKeyNotFound)
}

func TestRedisClient_SetWithTTLExpires(t *testing.T) {
	now := time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC)
	client := db.NewMemoryRedisClient(context.Background())
	client.SetClock(func() time.Time { return now })

	require.NoError(t, client.SetWithTTL("events_v1:austin", "[]", time.Minute))

	_, err := client.Get("events_v1:austin")
	require.NoError(t, err)

	now = now.Add(time.Minute)
	_, err = client.Get("events_v1:austin")
	assert.ErrorIs(t, err, db.ErrKeyNotFound)
}

func TestRedisClient_KeysAndDel(t *testing.T) {
	client := db.NewMemoryRedisClient(context.Background())
	require.NoError(t, client.Set("events_v1:austin", "a"))
	require.NoError(t, client.Set("events_v1:boston", "b"))
	require.NoError(t, client.Set("other", "c"))

	keys, err := client.Keys("events_v1:*")
	require.NoError(t, err)
	sort.Strings(keys)
	assert.Equal(t, []string{"events_v1:austin", "events_v1:boston"}, keys)

	require.NoError(t, client.Del("events_v1:austin"))
	_, err = client.Get("events_v1:austin")
	assert.ErrorIs(t, err, db.ErrKeyNotFound)
}

func TestRedisClient_Ping(t *testing.T) {
	client := db.NewMemoryRedisClient(context.Background())
	assert.NoError(t, client.Ping())

	client.Err = errors.New("connection refused")
	assert.EqualError(t, client.Ping(), "connection refused")
	assert.Error(t, client.Set("k", "v"))
}

func TestRedisClient_WriteSweepsExpiredEntries(t *testing.T) {
	now := time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC)
	client := db.NewMemoryRedisClient(context.Background())
	client.SetClock(func() time.Time { return now })

	require.NoError(t, client.SetWithTTL("events_v1:austin", "a", time.Minute))
	require.NoError(t, client.SetWithTTL("events_v1:boston", "b", time.Hour))
	assert.Equal(t, 2, client.Len())

	now = now.Add(2 * time.Minute)
	require.NoError(t, client.SetWithTTL("events_v1:chicago", "c", time.Minute))

	assert.Equal(t, 2, client.Len())
	_, err := client.Get("events_v1:boston")
	assert.NoError(t, err)
}
