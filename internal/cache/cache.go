package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"psfinder_backend/internal/logger"

	"github.com/redis/go-redis/v9"
)

// Cache is a JSON value cache backed by Redis. Cache errors are absorbed
// and logged: a broken cache degrades to recomputation, never to a failed
// request.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func New(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// Get unmarshals the cached value for key into dest. The second return is
// false on a miss or any cache error.
func (c *Cache) Get(ctx context.Context, key string, dest any) bool {
	if c == nil || c.client == nil {
		return false
	}

	raw, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.CtxWarn(ctx, "cache get failed", "key", key, "error", err)
		}
		return false
	}

	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		logger.CtxWarn(ctx, "cache value corrupt", "key", key, "error", err)
		return false
	}
	return true
}

// Set stores value under key with the configured TTL.
func (c *Cache) Set(ctx context.Context, key string, value any) {
	if c == nil || c.client == nil {
		return
	}

	raw, err := json.Marshal(value)
	if err != nil {
		logger.CtxWarn(ctx, "cache marshal failed", "key", key, "error", err)
		return
	}

	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		logger.CtxWarn(ctx, "cache set failed", "key", key, "error", err)
	}
}

// Delete removes a single key.
func (c *Cache) Delete(ctx context.Context, key string) {
	if c == nil || c.client == nil {
		return
	}

	if err := c.client.Del(ctx, key).Err(); err != nil {
		logger.CtxWarn(ctx, "cache delete failed", "key", key, "error", err)
	}
}

// ClearPattern removes every key matching the glob pattern. Used to drop
// derived analytics after new data arrives.
func (c *Cache) ClearPattern(ctx context.Context, pattern string) {
	if c == nil || c.client == nil {
		return
	}

	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	keys := []string{}
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		logger.CtxWarn(ctx, "cache scan failed", "pattern", pattern, "error", err)
		return
	}

	if len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		logger.CtxWarn(ctx, "cache clear failed", "pattern", pattern, "error", err)
	}
}
