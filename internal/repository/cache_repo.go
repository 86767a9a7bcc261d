package repository

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by CacheRepository.Get when the key is absent or expired.
var ErrCacheMiss = errors.New("cache miss")

// CacheRepository defines the raw key-value store behind the cache layer.
// Every entry carries its own expiry.
type CacheRepository interface {
	// Get returns the stored payload or ErrCacheMiss.
	Get(ctx context.Context, key string) ([]byte, error)
	// SetEX stores value under key, replacing any previous value, expiring after ttl.
	SetEX(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Exists reports whether key is present and not expired.
	Exists(ctx context.Context, key string) (bool, error)
	// Ping checks the backing store is reachable.
	Ping(ctx context.Context) error
}
