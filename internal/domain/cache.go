package domain

import (
	"context"
	"time"
)

// CacheError is a sentinel error type of the cache port
type CacheError string

func (e CacheError) Error() string {
	return string(e)
}

// ErrCacheMiss is returned by Get for absent keys
const ErrCacheMiss = CacheError("cache: key not found")

// Cache stores serialized quiz details. Callers treat every failure as a miss.
type Cache interface {
	// Get returns ErrCacheMiss when key is absent
	Get(ctx context.Context, key string) (string, error)
	// Set overwrites key; a zero expiration keeps it until deleted
	Set(ctx context.Context, key string, value string, expiration time.Duration) error
	// Delete succeeds when key is already absent
	Delete(ctx context.Context, key string) error
	// DeleteByPrefix removes every key starting with prefix and reports how many went
	DeleteByPrefix(ctx context.Context, prefix string) (int64, error)
	Ping(ctx context.Context) error
}
