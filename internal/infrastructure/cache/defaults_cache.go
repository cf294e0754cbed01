// Package cache provides caching infrastructure.
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"

	"textile/internal/domain/reports"
	"textile/pkg/logger"
)

const defaultsKeyPrefix = "textile:defaults:"

// RedisClient is the subset of redis.Cmdable used by the cache.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// DefaultsCache is a read-through Redis cache in front of a DefaultsReader.
// Redis failures fall back to the underlying reader.
type DefaultsCache struct {
	next   reports.DefaultsReader
	client RedisClient
	ttl    time.Duration
}

// NewDefaultsCache wraps next with a Redis cache.
func NewDefaultsCache(next reports.DefaultsReader, client RedisClient, ttl time.Duration) *DefaultsCache {
	return &DefaultsCache{next: next, client: client, ttl: ttl}
}

// NewRedisClient connects to Redis and verifies the connection.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return rdb, nil
}

// GetGlobalDefault returns the cached value or loads it from the underlying reader.
func (c *DefaultsCache) GetGlobalDefault(ctx context.Context, key string) (string, error) {
	cacheKey := defaultsKeyPrefix + key

	value, err := c.client.Get(ctx, cacheKey).Result()
	switch {
	case err == nil:
		return value, nil
	case errors.Is(err, redis.Nil):
	default:
		logger.Warn(ctx, "defaults cache read failed", "key", key, "error", err)
	}

	value, err = c.next.GetGlobalDefault(ctx, key)
	if err != nil {
		return "", err
	}

	if err := c.client.Set(ctx, cacheKey, value, c.ttl).Err(); err != nil {
		logger.Warn(ctx, "defaults cache write failed", "key", key, "error", err)
	}

	return value, nil
}

// Invalidate drops cached values for keys.
func (c *DefaultsCache) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	cacheKeys := make([]string, len(keys))
	for i, k := range keys {
		cacheKeys[i] = defaultsKeyPrefix + k
	}
	return c.client.Del(ctx, cacheKeys...).Err()
}

var _ reports.DefaultsReader = (*DefaultsCache)(nil)
