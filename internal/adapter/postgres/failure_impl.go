package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/user/boxrec-service/internal/entity"
	"github.com/user/boxrec-service/internal/repository"
)

const schema = `
	CREATE TABLE IF NOT EXISTS upstream_failures (
		id            BIGSERIAL PRIMARY KEY,
		kind          TEXT NOT NULL,
		identifier    TEXT NOT NULL,
		path          TEXT NOT NULL,
		error_type    TEXT NOT NULL,
		status_code   INTEGER NOT NULL DEFAULT 0,
		reason        TEXT NOT NULL,
		occurrences   INTEGER NOT NULL DEFAULT 1,
		first_seen_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		last_seen_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (kind, identifier)
	);
	CREATE INDEX IF NOT EXISTS upstream_failures_last_seen_idx ON upstream_failures (last_seen_at DESC);
`

// FailureRepoImpl provides a concrete implementation for the FailureRepository interface using PostgreSQL.
type FailureRepoImpl struct {
	db *pgxpool.Pool
}

var _ repository.FailureRepository = (*FailureRepoImpl)(nil)

// NewFailureRepo creates a new instance of FailureRepoImpl.
func NewFailureRepo(db *pgxpool.Pool) *FailureRepoImpl {
	return &FailureRepoImpl{db: db}
}

// EnsureSchema creates the upstream_failures table when it does not exist yet.
func (r *FailureRepoImpl) EnsureSchema(ctx context.Context) error {
	_, err := r.db.Exec(ctx, schema)
	return err
}

// SaveOrUpdate records a failure, incrementing occurrences when the same
// kind and identifier failed before.
func (r *FailureRepoImpl) SaveOrUpdate(ctx context.Context, f *entity.UpstreamFailure) error {
	query := `
		INSERT INTO upstream_failures (kind, identifier, path, error_type, status_code, reason, occurrences, first_seen_at, last_seen_at)
		VALUES ($1, $2, $3, $4, $5, $6, 1, $7, $7)
		ON CONFLICT (kind, identifier) DO UPDATE SET
			path = EXCLUDED.path,
			error_type = EXCLUDED.error_type,
			status_code = EXCLUDED.status_code,
			reason = EXCLUDED.reason,
			occurrences = upstream_failures.occurrences + 1,
			last_seen_at = EXCLUDED.last_seen_at;
	`
	_, err := r.db.Exec(ctx, query,
		f.Kind,
		f.Identifier,
		f.Path,
		f.ErrorType,
		f.StatusCode,
		f.Reason,
		f.LastSeenAt,
	)
	return err
}

// FindRecent retrieves the most recently seen failures.
func (r *FailureRepoImpl) FindRecent(ctx context.Context, limit int) ([]*entity.UpstreamFailure, error) {
	query := `
		SELECT id, kind, identifier, path, error_type, status_code, reason, occurrences, first_seen_at, last_seen_at
		FROM upstream_failures
		ORDER BY last_seen_at DESC
		LIMIT $1;
	`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	failures := make([]*entity.UpstreamFailure, 0, limit)
	for rows.Next() {
		var f entity.UpstreamFailure
		if err := rows.Scan(
			&f.ID,
			&f.Kind,
			&f.Identifier,
			&f.Path,
			&f.ErrorType,
			&f.StatusCode,
			&f.Reason,
			&f.Occurrences,
			&f.FirstSeenAt,
			&f.LastSeenAt,
		); err != nil {
			return nil, err
		}
		failures = append(failures, &f)
	}

	return failures, rows.Err()
}

func (r *FailureRepoImpl) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}
