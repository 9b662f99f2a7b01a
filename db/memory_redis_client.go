package db

import (
	"context"
	"path"
	"sync"
	"time"
)

// MemoryRedisClient is an in-process RedisClient. It backs tests and the
// page results store when no Redis address is configured. Expired entries are
// hidden on read and swept on write.
type MemoryRedisClient struct {
	data    map[string]memoryEntry
	mu      sync.RWMutex
	context context.Context
	now     func() time.Time

	// Err, when set, is returned by every operation.
	Err error
}

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// NewMemoryRedisClient initializes a new MemoryRedisClient.
func NewMemoryRedisClient(ctx context.Context) *MemoryRedisClient {
	return &MemoryRedisClient{
		data:    make(map[string]memoryEntry),
		context: ctx,
		now:     time.Now,
	}
}

// SetClock replaces the clock used for expiry.
func (m *MemoryRedisClient) SetClock(now func() time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
}

func (m *MemoryRedisClient) Set(key, value string) error {
	return m.SetWithTTL(key, value, 0)
}

func (m *MemoryRedisClient) SetWithTTL(key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	for k, e := range m.data {
		if m.expired(e) {
			delete(m.data, k)
		}
	}
	entry := memoryEntry{value: value}
	if ttl > 0 {
		entry.expiresAt = m.now().Add(ttl)
	}
	m.data[key] = entry
	return nil
}

// Len counts stored entries, expired ones included until the next write.
func (m *MemoryRedisClient) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

func (m *MemoryRedisClient) Get(key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.Err != nil {
		return "", m.Err
	}
	entry, exists := m.data[key]
	if !exists || m.expired(entry) {
		return "", ErrKeyNotFound
	}
	return entry.value, nil
}

func (m *MemoryRedisClient) Del(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	delete(m.data, key)
	return nil
}

// Keys supports the glob subset of Redis patterns that path.Match understands.
func (m *MemoryRedisClient) Keys(pattern string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.Err != nil {
		return nil, m.Err
	}
	var keys []string
	for key, entry := range m.data {
		if ok, _ := path.Match(pattern, key); ok && !m.expired(entry) {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

func (m *MemoryRedisClient) GetContext() context.Context {
	return m.context
}

func (m *MemoryRedisClient) Ping() error {
	return m.Err
}

func (m *MemoryRedisClient) Close() error {
	return nil
}

func (m *MemoryRedisClient) expired(entry memoryEntry) bool {
	return !entry.expiresAt.IsZero() && !m.now().Before(entry.expiresAt)
}
