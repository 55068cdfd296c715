package adapter

import (
	"context"
	"errors"
	"time"

	"wiki-quiz/internal/domain"

	"github.com/redis/go-redis/v9"
)

// scanBatch is the COUNT hint for SCAN during prefix deletion
const scanBatch = 100

// RedisCacheAdapter implements the domain.Cache interface using a Redis client.
type RedisCacheAdapter struct {
	client redis.UniversalClient
}

// NewRedisCacheAdapter creates a new instance of RedisCacheAdapter.
// It expects a connected client.
func NewRedisCacheAdapter(client redis.UniversalClient) domain.Cache {
	return &RedisCacheAdapter{client: client}
}

// Get retrieves an item from the Redis cache.
// It translates redis.Nil to domain.ErrCacheMiss.
func (r *RedisCacheAdapter) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", domain.ErrCacheMiss
		}
		return "", err
	}
	return val, nil
}

// Set adds an item to the Redis cache.
func (r *RedisCacheAdapter) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	return r.client.Set(ctx, key, value, expiration).Err()
}

// Delete removes an item from the Redis cache.
func (r *RedisCacheAdapter) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

// DeleteByPrefix walks the keyspace with SCAN and deletes every match batch by batch.
func (r *RedisCacheAdapter) DeleteByPrefix(ctx context.Context, prefix string) (int64, error) {
	var (
		cursor  uint64
		deleted int64
	)
	for {
		keys, next, err := r.client.Scan(ctx, cursor, prefix+"*", scanBatch).Result()
		if err != nil {
			return deleted, err
		}
		if len(keys) > 0 {
			n, err := r.client.Del(ctx, keys...).Result()
			if err != nil {
				return deleted, err
			}
			deleted += n
		}
		if next == 0 {
			return deleted, nil
		}
		cursor = next
	}
}

// Ping checks the health of the Redis server.
func (r *RedisCacheAdapter) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// NoopCache is used when Redis is not configured. Every read misses.
type NoopCache struct{}

// NewNoopCache returns a cache that stores nothing
func NewNoopCache() domain.Cache {
	return NoopCache{}
}

func (NoopCache) Get(context.Context, string) (string, error) {
	return "", domain.ErrCacheMiss
}

func (NoopCache) Set(context.Context, string, string, time.Duration) error {
	return nil
}

func (NoopCache) Delete(context.Context, string) error {
	return nil
}

func (NoopCache) DeleteByPrefix(context.Context, string) (int64, error) {
	return 0, nil
}

func (NoopCache) Ping(context.Context) error {
	return nil
}
