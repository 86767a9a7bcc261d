package repository

import (
	"context"
	"time"
)

// RateLimitRepository defines a fixed-window request counter.
type RateLimitRepository interface {
	// Hit counts one request against key. The window starts at the first hit
	// and lasts for window; it returns the count so far and the time left.
	Hit(ctx context.Context, key string, window time.Duration) (count int64, resetIn time.Duration, err error)
}
