package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/user/boxrec-service/internal/repository"
	"github.com/user/boxrec-service/pkg/metrics"
	"go.uber.org/zap"
)

// Cache stores serialized entities under namespaced keys. Store failures
// are logged and absorbed: a broken store only ever costs a cache miss.
type Cache struct {
	store   repository.CacheRepository
	metrics *metrics.Metrics
	logger  *zap.Logger
}

func NewCache(store repository.CacheRepository, m *metrics.Metrics, logger *zap.Logger) *Cache {
	return &Cache{store: store, metrics: m, logger: logger}
}

func BoxerKey(id string) string { return "boxer:" + id }

// SearchKey lower-cases the query so differently capitalised searches share an entry.
func SearchKey(query string) string { return "search:" + strings.ToLower(query) }

func RatingsKey(division string) string { return "ratings:" + division }

// Get decodes the entry for key into dest and reports whether it was found.
func (c *Cache) Get(ctx context.Context, key string, dest any) bool {
	kind := keyKind(key)
	raw, err := c.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, repository.ErrCacheMiss) {
			c.metrics.ObserveCacheLookup(kind, "miss")
			return false
		}
		c.metrics.ObserveCacheLookup(kind, "error")
		c.logger.Warn("cache get failed", zap.String("key", key), zap.Error(err))
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		c.metrics.ObserveCacheLookup(kind, "error")
		c.logger.Warn("cache entry undecodable", zap.String("key", key), zap.Error(err))
		return false
	}
	c.metrics.ObserveCacheLookup(kind, "hit")
	return true
}

// Set overwrites key with value for ttl.
func (c *Cache) Set(ctx context.Context, key string, value any, ttl time.Duration) {
	raw, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("cache value not serializable", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.store.SetEX(ctx, key, raw, ttl); err != nil {
		c.logger.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
}

func (c *Cache) Delete(ctx context.Context, key string) {
	if err := c.store.Delete(ctx, key); err != nil {
		c.logger.Warn("cache delete failed", zap.String("key", key), zap.Error(err))
	}
}

func (c *Cache) Exists(ctx context.Context, key string) bool {
	ok, err := c.store.Exists(ctx, key)
	if err != nil {
		c.logger.Warn("cache exists failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return ok
}

func (c *Cache) Ping(ctx context.Context) error {
	return c.store.Ping(ctx)
}

func keyKind(key string) string {
	kind, _, ok := strings.Cut(key, ":")
	if !ok {
		return "unknown"
	}
	return kind
}
