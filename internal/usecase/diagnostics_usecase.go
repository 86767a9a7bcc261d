package usecase

import (
	"context"

	"github.com/user/boxrec-service/internal/entity"
	"github.com/user/boxrec-service/internal/repository"
)

const (
	DefaultFailureLimit = 50
	MaxFailureLimit     = 500
)

// Diagnostics exposes the upstream failure archive and dependency health.
type Diagnostics interface {
	RecentFailures(ctx context.Context, limit int) ([]*entity.UpstreamFailure, error)
	Health(ctx context.Context) (map[string]bool, bool)
}

type diagnosticsUseCase struct {
	cache    *Cache
	failures repository.FailureRepository
}

// NewDiagnosticsUseCase builds the diagnostics use case. failures may be nil
// when no archive is configured.
func NewDiagnosticsUseCase(cache *Cache, failures repository.FailureRepository) Diagnostics {
	return &diagnosticsUseCase{cache: cache, failures: failures}
}

// RecentFailures returns the most recently seen failures. limit falls back
// to DefaultFailureLimit when not positive and is capped at MaxFailureLimit.
func (uc *diagnosticsUseCase) RecentFailures(ctx context.Context, limit int) ([]*entity.UpstreamFailure, error) {
	if uc.failures == nil {
		return []*entity.UpstreamFailure{}, nil
	}
	if limit <= 0 {
		limit = DefaultFailureLimit
	}
	if limit > MaxFailureLimit {
		limit = MaxFailureLimit
	}
	return uc.failures.FindRecent(ctx, limit)
}

// Health pings every configured dependency.
func (uc *diagnosticsUseCase) Health(ctx context.Context) (map[string]bool, bool) {
	status := map[string]bool{"cache": uc.cache.Ping(ctx) == nil}
	if uc.failures != nil {
		status["postgres"] = uc.failures.Ping(ctx) == nil
	}
	healthy := true
	for _, ok := range status {
		healthy = healthy && ok
	}
	return status, healthy
}
