package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/user/boxrec-service/internal/repository"
)

const cacheKeyPrefix = "cache:"

// CacheRepoImpl provides a concrete implementation for the CacheRepository interface using Redis.
type CacheRepoImpl struct {
	client *redis.Client
}

var _ repository.CacheRepository = (*CacheRepoImpl)(nil)

// NewCacheRepo creates a new instance of CacheRepoImpl.
func NewCacheRepo(client *redis.Client) *CacheRepoImpl {
	return &CacheRepoImpl{client: client}
}

func (r *CacheRepoImpl) generateKey(key string) string {
	return cacheKeyPrefix + key
}

// Get returns the payload stored under key, or repository.ErrCacheMiss.
func (r *CacheRepoImpl) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, r.generateKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, repository.ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}
	return val, nil
}

// SetEX stores value with an expiry. SETEX is atomic and overwrites any previous value.
func (r *CacheRepoImpl) SetEX(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return r.client.SetEx(ctx, r.generateKey(key), value, ttl).Err()
}

// Delete removes key.
func (r *CacheRepoImpl) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.generateKey(key)).Err()
}

// Exists checks for the key. EXISTS returns 1 if the key exists, 0 otherwise.
func (r *CacheRepoImpl) Exists(ctx context.Context, key string) (bool, error) {
	val, err := r.client.Exists(ctx, r.generateKey(key)).Result()
	if err != nil {
		return false, err
	}
	return val == 1, nil
}

func (r *CacheRepoImpl) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
