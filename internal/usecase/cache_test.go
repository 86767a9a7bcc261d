package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/boxrec-service/internal/entity"
	"go.uber.org/zap"
)

func TestCacheKeys(t *testing.T) {
	assert.Equal(t, "boxer:628407", BoxerKey("628407"))
	assert.Equal(t, "search:saul alvarez", SearchKey("Saul ALVAREZ"))
	assert.Equal(t, "ratings:heavyweight", RatingsKey("heavyweight"))
	assert.NotEqual(t, BoxerKey("4"), RatingsKey("4"))
}

func TestCacheRoundTrip(t *testing.T) {
	c := newMemoryCache()
	ctx := context.Background()

	in := &entity.BoxerProfile{
		ID:           "348759",
		Name:         "Tyson Fury",
		Record:       entity.Record{Wins: 34, Losses: 1, Draws: 1},
		PersonalInfo: map[string]string{"stance": "orthodox"},
		Bouts:        []entity.Bout{{Date: "2024-05-18", Opponent: "Oleksandr Usyk", OpponentID: "659772", Result: "L"}},
	}
	c.Set(ctx, BoxerKey(in.ID), in, time.Hour)
	assert.True(t, c.Exists(ctx, BoxerKey(in.ID)))

	var out entity.BoxerProfile
	require.True(t, c.Get(ctx, BoxerKey(in.ID), &out))
	assert.Equal(t, *in, out)

	c.Delete(ctx, BoxerKey(in.ID))
	assert.False(t, c.Get(ctx, BoxerKey(in.ID), &out))
	assert.False(t, c.Exists(ctx, BoxerKey(in.ID)))
}

func TestCacheAbsorbsStoreFailures(t *testing.T) {
	m := newTestMetrics()
	c := NewCache(brokenStore{}, m, zap.NewNop())
	ctx := context.Background()

	var out entity.RatingsResponse
	assert.NotPanics(t, func() {
		c.Set(ctx, "ratings:heavyweight", &entity.RatingsResponse{Division: "heavyweight"}, time.Hour)
		c.Delete(ctx, "ratings:heavyweight")
	})
	assert.False(t, c.Get(ctx, "ratings:heavyweight", &out))
	assert.False(t, c.Exists(ctx, "ratings:heavyweight"))
	assert.Error(t, c.Ping(ctx))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheLookups.WithLabelValues("ratings", "error")))
}

func TestCacheTreatsUndecodableEntryAsMiss(t *testing.T) {
	c := newMemoryCache()
	ctx := context.Background()
	require.NoError(t, c.store.SetEX(ctx, "boxer:1", []byte("{not json"), time.Hour))

	var out entity.BoxerProfile
	assert.False(t, c.Get(ctx, "boxer:1", &out))
}

func TestCacheLookupMetrics(t *testing.T) {
	c := newMemoryCache()
	ctx := context.Background()
	var out []entity.SearchResult

	assert.False(t, c.Get(ctx, SearchKey("canelo"), &out))
	c.Set(ctx, SearchKey("canelo"), []entity.SearchResult{{ID: "1"}}, time.Minute)
	assert.True(t, c.Get(ctx, SearchKey("canelo"), &out))

	assert.Equal(t, 1.0, testutil.ToFloat64(c.metrics.CacheLookups.WithLabelValues("search", "miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.metrics.CacheLookups.WithLabelValues("search", "hit")))
}
