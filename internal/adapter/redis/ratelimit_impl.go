package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/user/boxrec-service/internal/repository"
)

const rateLimitKeyPrefix = "rate_limit:"

// RateLimitRepoImpl counts requests per key in Redis.
type RateLimitRepoImpl struct {
	client *redis.Client
}

var _ repository.RateLimitRepository = (*RateLimitRepoImpl)(nil)

// NewRateLimitRepo creates a new instance of RateLimitRepoImpl.
func NewRateLimitRepo(client *redis.Client) *RateLimitRepoImpl {
	return &RateLimitRepoImpl{client: client}
}

// Hit increments the counter for key. The expiry is set only when the
// counter is created, so the window is fixed from the first request.
func (r *RateLimitRepoImpl) Hit(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	k := rateLimitKeyPrefix + key

	count, err := r.client.Incr(ctx, k).Result()
	if err != nil {
		return 0, 0, err
	}
	if count == 1 {
		return count, window, r.client.Expire(ctx, k, window).Err()
	}

	ttl, err := r.client.TTL(ctx, k).Result()
	if err != nil {
		return count, window, err
	}
	if ttl < 0 {
		// The counter lost its expiry; start a new window rather than block forever.
		ttl = window
		if err := r.client.Expire(ctx, k, window).Err(); err != nil {
			return count, ttl, err
		}
	}
	return count, ttl, nil
}
