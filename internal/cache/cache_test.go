package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type statsPayload struct {
	Total int64   `json:"total"`
	Avg   float64 `json:"avg"`
}

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return New(client, 5*time.Minute), mr
}

func TestSetGetRoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	c.Set(ctx, "analytics:stats", statsPayload{Total: 42, Avg: 0.61})

	var got statsPayload
	require.True(t, c.Get(ctx, "analytics:stats", &got))
	assert.Equal(t, int64(42), got.Total)
	assert.Equal(t, 0.61, got.Avg)
}

func TestGetMiss(t *testing.T) {
	c, _ := newTestCache(t)

	var got statsPayload
	assert.False(t, c.Get(context.Background(), "absent", &got))
}

func TestEntriesExpire(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	c.Set(ctx, "analytics:stats", statsPayload{Total: 1})
	mr.FastForward(6 * time.Minute)

	var got statsPayload
	assert.False(t, c.Get(ctx, "analytics:stats", &got))
}

func TestClearPattern(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	c.Set(ctx, "analytics:stats", statsPayload{Total: 1})
	c.Set(ctx, "analytics:categories", statsPayload{Total: 2})
	c.Set(ctx, "session:abc", statsPayload{Total: 3})

	c.ClearPattern(ctx, "analytics:*")

	var got statsPayload
	assert.False(t, c.Get(ctx, "analytics:stats", &got))
	assert.False(t, c.Get(ctx, "analytics:categories", &got))
	assert.True(t, c.Get(ctx, "session:abc", &got))
}

func TestNilCacheIsSafe(t *testing.T) {
	var c *Cache

	var got statsPayload
	assert.False(t, c.Get(context.Background(), "x", &got))
	c.Set(context.Background(), "x", got)
	c.Delete(context.Background(), "x")
}
