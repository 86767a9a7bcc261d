// Package memory holds in-process implementations of the storage
// contracts, used when no Redis address is configured.
package memory

import (
	"context"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/user/boxrec-service/internal/repository"
)

type cacheEntry struct {
	value     []byte
	expiresAt time.Time
}

// CacheRepoImpl is a size-bounded LRU whose entries each carry their own expiry.
type CacheRepoImpl struct {
	// mu makes the expiry check and removal in lookup atomic with writes.
	mu      sync.Mutex
	entries *lru.Cache[string, cacheEntry]
	now     func() time.Time
}

var _ repository.CacheRepository = (*CacheRepoImpl)(nil)

// NewCacheRepo creates an in-process cache holding at most size entries.
func NewCacheRepo(size int) (*CacheRepoImpl, error) {
	entries, err := lru.New[string, cacheEntry](size)
	if err != nil {
		return nil, err
	}
	return &CacheRepoImpl{entries: entries, now: time.Now}, nil
}

func (r *CacheRepoImpl) Get(_ context.Context, key string) ([]byte, error) {
	e, ok := r.lookup(key)
	if !ok {
		return nil, repository.ErrCacheMiss
	}
	out := make([]byte, len(e.value))
	copy(out, e.value)
	return out, nil
}

func (r *CacheRepoImpl) SetEX(_ context.Context, key string, value []byte, ttl time.Duration) error {
	stored := make([]byte, len(value))
	copy(stored, value)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries.Add(key, cacheEntry{value: stored, expiresAt: r.now().Add(ttl)})
	return nil
}

func (r *CacheRepoImpl) Delete(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries.Remove(key)
	return nil
}

func (r *CacheRepoImpl) Exists(_ context.Context, key string) (bool, error) {
	_, ok := r.lookup(key)
	return ok, nil
}

func (r *CacheRepoImpl) Ping(context.Context) error {
	return nil
}

// lookup drops the entry when it has expired.
func (r *CacheRepoImpl) lookup(key string) (cacheEntry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries.Get(key)
	if !ok {
		return cacheEntry{}, false
	}
	if !r.now().Before(e.expiresAt) {
		r.entries.Remove(key)
		return cacheEntry{}, false
	}
	return e, true
}
