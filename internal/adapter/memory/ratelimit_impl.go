package memory

import (
	"context"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/user/boxrec-service/internal/repository"
)

type window struct {
	count   int64
	resetAt time.Time
}

// RateLimitRepoImpl keeps fixed-window counters for the most recent clients.
type RateLimitRepoImpl struct {
	mu      sync.Mutex
	windows *lru.Cache[string, window]
	now     func() time.Time
}

var _ repository.RateLimitRepository = (*RateLimitRepoImpl)(nil)

func NewRateLimitRepo(size int) (*RateLimitRepoImpl, error) {
	windows, err := lru.New[string, window](size)
	if err != nil {
		return nil, err
	}
	return &RateLimitRepoImpl{windows: windows, now: time.Now}, nil
}

func (r *RateLimitRepoImpl) Hit(_ context.Context, key string, length time.Duration) (int64, time.Duration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	w, ok := r.windows.Get(key)
	if !ok || !now.Before(w.resetAt) {
		w = window{resetAt: now.Add(length)}
	}
	w.count++
	r.windows.Add(key, w)
	return w.count, w.resetAt.Sub(now), nil
}
