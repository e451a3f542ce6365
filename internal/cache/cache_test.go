package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/schema-scout/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*ResultCache, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	c := NewWithClient(client, time.Minute)
	t.Cleanup(func() { c.Close() })
	return c, mr
}

func TestCacheRoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	result := models.ProcessingResult{
		"orders": {
			Columns: []models.Column{
				{Name: "order_id", Type: "integer", Description: "Unique order identifier"},
			},
			RelevanceScore: 0.85,
		},
	}

	key := Key("digest", "find orders", "json", 0.1)
	require.NoError(t, c.Set(ctx, key, result))

	got, ok, err := c.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, result, got)
}

func TestCacheMiss(t *testing.T) {
	c, _ := newTestCache(t)

	got, ok, err := c.Get(context.Background(), Key("digest", "no such query", "json", 0.1))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestCacheExpiry(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	key := Key("digest", "orders", "json", 0.1)
	require.NoError(t, c.Set(ctx, key, models.ProcessingResult{}))

	mr.FastForward(2 * time.Minute)

	_, ok, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestKey(t *testing.T) {
	base := Key("digest", "find orders", "json", 0.1)

	// Deterministic for identical inputs.
	assert.Equal(t, base, Key("digest", "find orders", "json", 0.1))

	// Any input change produces a different key.
	assert.NotEqual(t, base, Key("other", "find orders", "json", 0.1))
	assert.NotEqual(t, base, Key("digest", "find users", "json", 0.1))
	assert.NotEqual(t, base, Key("digest", "find orders", "yaml", 0.1))
	assert.NotEqual(t, base, Key("digest", "find orders", "json", 0.2))

	assert.Contains(t, base, "schema-scout:result:")
}

func TestPing(t *testing.T) {
	c, mr := newTestCache(t)
	require.NoError(t, c.Ping(context.Background()))

	mr.Close()
	assert.Error(t, c.Ping(context.Background()))
}
