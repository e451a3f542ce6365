// cache.go - Redis-backed result cache
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/schema-scout/backend/internal/models"
	"github.com/vmihailenco/msgpack/v5"
)

// ResultCache stores processing results keyed by the request that
// produced them. Values are msgpack-encoded to keep entries compact.
type ResultCache struct {
	client *redis.Client
	ttl    time.Duration
}

// Options configures the cache connection.
type Options struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// New creates a result cache against the given Redis instance.
func New(opts Options) *ResultCache {
	client := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ttl := opts.TTL
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}

	return &ResultCache{client: client, ttl: ttl}
}

// NewWithClient wraps an existing client; used by tests.
func NewWithClient(client *redis.Client, ttl time.Duration) *ResultCache {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &ResultCache{client: client, ttl: ttl}
}

// Ping tests the Redis connection.
func (c *ResultCache) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// Close closes the Redis connection.
func (c *ResultCache) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// Key derives the cache key for a processing request.
func Key(schemaDigest, query, format string, threshold float64) string {
	h := sha256.Sum256([]byte(fmt.Sprintf("%s|%s|%s|%.3f", schemaDigest, query, format, threshold)))
	return "schema-scout:result:" + hex.EncodeToString(h[:])
}

// Get fetches a cached result. The second return value reports whether
// the key was present.
func (c *ResultCache) Get(ctx context.Context, key string) (models.ProcessingResult, bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get: %w", err)
	}

	var result models.ProcessingResult
	if err := msgpack.Unmarshal(data, &result); err != nil {
		return nil, false, fmt.Errorf("decoding cached result: %w", err)
	}
	return result, true, nil
}

// Set stores a result under the key with the configured TTL.
func (c *ResultCache) Set(ctx context.Context, key string, result models.ProcessingResult) error {
	data, err := msgpack.Marshal(result)
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}
