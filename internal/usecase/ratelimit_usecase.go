package usecase

import (
	"context"
	"time"

	"github.com/user/boxrec-service/internal/repository"
	"github.com/user/boxrec-service/pkg/metrics"
	"go.uber.org/zap"
)

// RateLimiter decides whether a client may make another request.
type RateLimiter interface {
	Allow(ctx context.Context, clientID string) Decision
}

type Decision struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

type rateLimitUseCase struct {
	counter repository.RateLimitRepository
	limit   int
	window  time.Duration
	now     func() time.Time
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewRateLimitUseCase allows limit requests per client per window.
func NewRateLimitUseCase(counter repository.RateLimitRepository, limit int, window time.Duration, m *metrics.Metrics, logger *zap.Logger) RateLimiter {
	return &rateLimitUseCase{
		counter: counter,
		limit:   limit,
		window:  window,
		now:     time.Now,
		metrics: m,
		logger:  logger,
	}
}

// Allow counts one request for clientID. A failing counter store lets the
// request through.
func (uc *rateLimitUseCase) Allow(ctx context.Context, clientID string) Decision {
	now := uc.now()
	count, resetIn, err := uc.counter.Hit(ctx, clientID, uc.window)
	if err != nil {
		uc.logger.Warn("rate limit store unavailable, allowing request", zap.String("client", clientID), zap.Error(err))
		return Decision{Allowed: true, Limit: uc.limit, Remaining: uc.limit, ResetAt: now.Add(uc.window)}
	}

	remaining := uc.limit - int(count)
	if remaining < 0 {
		remaining = 0
	}
	d := Decision{
		Allowed:   count <= int64(uc.limit),
		Limit:     uc.limit,
		Remaining: remaining,
		ResetAt:   now.Add(resetIn),
	}
	if !d.Allowed {
		uc.metrics.RateLimited.Inc()
	}
	return d
}
