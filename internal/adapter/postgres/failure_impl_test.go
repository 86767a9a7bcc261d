package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/boxrec-service/internal/entity"
)

// Runs against a real database only when TEST_POSTGRES_URL is set.
func newTestRepo(t *testing.T) *FailureRepoImpl {
	t.Helper()
	dsn := os.Getenv("TEST_POSTGRES_URL")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_URL not set")
	}
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	repo := NewFailureRepo(pool)
	require.NoError(t, repo.EnsureSchema(ctx))
	_, err = pool.Exec(ctx, `TRUNCATE upstream_failures`)
	require.NoError(t, err)
	return repo
}

func TestFailureRepoUpsertAndFindRecent(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	first := &entity.UpstreamFailure{
		Kind: "boxer", Identifier: "628407", Path: "/en/proboxer/628407",
		ErrorType: "malformed", Reason: "no profile regions", LastSeenAt: base,
	}
	require.NoError(t, repo.SaveOrUpdate(ctx, first))

	other := &entity.UpstreamFailure{
		Kind: "ratings", Identifier: "heavyweight", Path: "/en/ratings?r=1",
		ErrorType: "rejected", StatusCode: 503, Reason: "status 503", LastSeenAt: base.Add(time.Minute),
	}
	require.NoError(t, repo.SaveOrUpdate(ctx, other))

	first.LastSeenAt = base.Add(2 * time.Minute)
	first.Reason = "still malformed"
	require.NoError(t, repo.SaveOrUpdate(ctx, first))

	got, err := repo.FindRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "628407", got[0].Identifier)
	assert.Equal(t, 2, got[0].Occurrences)
	assert.Equal(t, "still malformed", got[0].Reason)
	assert.Equal(t, "heavyweight", got[1].Identifier)
	assert.Equal(t, 503, got[1].StatusCode)

	limited, err := repo.FindRecent(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
	assert.NoError(t, repo.Ping(ctx))
}
