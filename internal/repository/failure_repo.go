package repository

import (
	"context"

	"github.com/user/boxrec-service/internal/entity"
)

// FailureRepository defines the interface for archiving upstream failures.
type FailureRepository interface {
	// SaveOrUpdate creates or updates the record for failure.Kind + failure.Identifier.
	SaveOrUpdate(ctx context.Context, failure *entity.UpstreamFailure) error
	// FindRecent returns up to limit records, most recently seen first.
	FindRecent(ctx context.Context, limit int) ([]*entity.UpstreamFailure, error)
	// Ping checks the database is reachable.
	Ping(ctx context.Context) error
}
