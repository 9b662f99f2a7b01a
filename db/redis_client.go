package db

import (
	"context"
	"errors"
	"time"
)

// ErrKeyNotFound is returned by Get when the key does not exist or has expired.
var ErrKeyNotFound = errors.New("key not found")

// RedisClient is the subset of Redis the events cache needs.
type RedisClient interface {
	Set(key, value string) error
	SetWithTTL(key, value string, ttl time.Duration) error
	Get(key string) (string, error)
	Del(key string) error
	Keys(pattern string) ([]string, error)
	GetContext() context.Context
	Ping() error
	Close() error
}
