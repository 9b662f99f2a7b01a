package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"event-finder/config"

	"github.com/go-redis/redis/v8"
)

// GoRedisClient implements RedisClient on top of go-redis.
type GoRedisClient struct {
	client *redis.Client
	ctx    context.Context
}

// NewGoRedisClient wraps client and checks the connection.
func NewGoRedisClient(ctx context.Context, client *redis.Client) (*GoRedisClient, error) {
	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("could not connect to redis: %w", err)
	}
	return &GoRedisClient{client: client, ctx: ctx}, nil
}

// NewGoRedisClientFromConfig dials the server named by cfg.
func NewGoRedisClientFromConfig(ctx context.Context, cfg config.RedisConfig) (*GoRedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	c, err := NewGoRedisClient(ctx, client)
	if err != nil {
		_ = client.Close()
		return nil, err
	}
	return c, nil
}

// Set stores a key-value pair without expiry.
func (r *GoRedisClient) Set(key, value string) error {
	return r.client.Set(r.ctx, key, value, 0).Err()
}

// SetWithTTL stores a key-value pair that expires after ttl.
func (r *GoRedisClient) SetWithTTL(key, value string, ttl time.Duration) error {
	return r.client.Set(r.ctx, key, value, ttl).Err()
}

// Get retrieves the value for key, or ErrKeyNotFound.
func (r *GoRedisClient) Get(key string) (string, error) {
	value, err := r.client.Get(r.ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrKeyNotFound
	}
	return value, err
}

func (r *GoRedisClient) Del(key string) error {
	return r.client.Del(r.ctx, key).Err()
}

// Keys lists keys matching pattern using SCAN.
func (r *GoRedisClient) Keys(pattern string) ([]string, error) {
	var keys []string
	iter := r.client.Scan(r.ctx, 0, pattern, 100).Iterator()
	for iter.Next(r.ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan keys %q: %w", pattern, err)
	}
	return keys, nil
}

func (r *GoRedisClient) GetContext() context.Context {
	return r.ctx
}

func (r *GoRedisClient) Ping() error {
	_, err := r.client.Ping(r.ctx).Result()
	return err
}

func (r *GoRedisClient) Close() error {
	return r.client.Close()
}
