package redis

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"event-finder/db"
	"event-finder/metrics"
	"event-finder/models"
)

// EVENTS_KEY_FORMAT_V1 keys a city's cached provider results.
const EVENTS_KEY_FORMAT_V1 = "events_v1:%s"

// RedisEventsDAO caches relayed event lists per city.
type RedisEventsDAO struct {
	client db.RedisClient
	ttl    time.Duration
}

// NewRedisEventsDAO initializes a RedisEventsDAO. Entries expire after ttl;
// a zero ttl keeps them until deleted.
func NewRedisEventsDAO(client db.RedisClient, ttl time.Duration) *RedisEventsDAO {
	return &RedisEventsDAO{client: client, ttl: ttl}
}

// EventsKey returns the cache key for city. Cities differing only in case or
// surrounding whitespace share an entry.
func EventsKey(city string) string {
	return fmt.Sprintf(EVENTS_KEY_FORMAT_V1, strings.ToLower(strings.TrimSpace(city)))
}

// SetEvents caches the events found for city.
func (dao *RedisEventsDAO) SetEvents(city string, events []models.EventRecord) error {
	if events == nil {
		events = []models.EventRecord{}
	}
	data, err := json.Marshal(events)
	if err != nil {
		return fmt.Errorf("failed to marshal events for %q: %w", city, err)
	}
	if err := dao.client.SetWithTTL(EventsKey(city), string(data), dao.ttl); err != nil {
		return fmt.Errorf("failed to set events in redis: %w", err)
	}
	return nil
}

// GetEvents returns the cached events for city. found is false on a cache miss.
func (dao *RedisEventsDAO) GetEvents(city string) (events []models.EventRecord, found bool, err error) {
	str, err := dao.client.Get(EventsKey(city))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			metrics.EventsCacheLookupsTotal.WithLabelValues("miss").Inc()
			return nil, false, nil
		}
		metrics.EventsCacheLookupsTotal.WithLabelValues("error").Inc()
		return nil, false, fmt.Errorf("failed to get events from redis: %w", err)
	}
	if err := json.Unmarshal([]byte(str), &events); err != nil {
		metrics.EventsCacheLookupsTotal.WithLabelValues("error").Inc()
		return nil, false, fmt.Errorf("failed to unmarshal cached events JSON: %w", err)
	}
	metrics.EventsCacheLookupsTotal.WithLabelValues("hit").Inc()
	return events, true, nil
}

// DeleteEvents drops the cached entry for city.
func (dao *RedisEventsDAO) DeleteEvents(city string) error {
	key := EventsKey(city)
	if err := dao.client.Del(key); err != nil {
		return fmt.Errorf("failed to delete events key %s: %w", key, err)
	}
	return nil
}

// ListCachedCities returns the normalized city names that have a cache entry.
func (dao *RedisEventsDAO) ListCachedCities() ([]string, error) {
	keys, err := dao.client.Keys(fmt.Sprintf(EVENTS_KEY_FORMAT_V1, "*"))
	if err != nil {
		return nil, fmt.Errorf("failed to list events keys: %w", err)
	}
	prefix := fmt.Sprintf(EVENTS_KEY_FORMAT_V1, "")
	cities := make([]string, 0, len(keys))
	for _, k := range keys {
		cities = append(cities, strings.TrimPrefix(k, prefix))
	}
	return cities, nil
}

// Ping reports whether the cache backend is reachable.
func (dao *RedisEventsDAO) Ping() error {
	return dao.client.Ping()
}
