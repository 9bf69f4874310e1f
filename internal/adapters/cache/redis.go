// Package cache provides the Redis-backed key-value store used for the
// derived-data slots (announcement, featured speaker).
package cache

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"conferencecentral/internal/domain"
)

type redisCache struct {
	client *redis.Client
}

// NewRedisClient creates and pings a Redis client from a redis:// URL.
func NewRedisClient(url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return client, nil
}

// NewRedisCache returns a domain.CacheStore backed by the given client.
func NewRedisCache(client *redis.Client) domain.CacheStore {
	return &redisCache{client: client}
}

func (c *redisCache) Set(ctx context.Context, key, value string) error {
	// Slots are fully derived; no TTL, refresh overwrites.
	return c.client.Set(ctx, key, value, 0).Err()
}

func (c *redisCache) Get(ctx context.Context, key string) (string, error) {
	val, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

func (c *redisCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}
