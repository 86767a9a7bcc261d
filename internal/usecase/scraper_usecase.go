package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/user/boxrec-service/internal/adapter/boxrec"
	"github.com/user/boxrec-service/internal/entity"
	"github.com/user/boxrec-service/internal/extractor"
	"github.com/user/boxrec-service/internal/repository"
	"github.com/user/boxrec-service/internal/session"
	"github.com/user/boxrec-service/pkg/metrics"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	kindBoxer   = "boxer"
	kindSearch  = "search"
	kindRatings = "ratings"

	failureRecordTimeout = 5 * time.Second
)

// Scraper serves the three upstream resource kinds through the cache.
type Scraper interface {
	GetBoxer(ctx context.Context, boxerID string, token session.Token) (*entity.BoxerProfile, error)
	SearchBoxers(ctx context.Context, query string, token session.Token) ([]entity.SearchResult, error)
	GetRatings(ctx context.Context, division string, token session.Token) (*entity.RatingsResponse, error)
}

// TTLs holds the cache lifetime per resource kind.
type TTLs struct {
	Boxer   time.Duration
	Search  time.Duration
	Ratings time.Duration
}

type scraperUseCase struct {
	cache    *Cache
	fetcher  repository.UpstreamFetcher
	failures repository.FailureRepository // nil when the archive is disabled
	ttls     TTLs
	metrics  *metrics.Metrics
	logger   *zap.Logger
	flights  singleflight.Group
}

// NewScraperUseCase creates a new instance of the scraper use case.
// failures may be nil.
func NewScraperUseCase(
	cache *Cache,
	fetcher repository.UpstreamFetcher,
	failures repository.FailureRepository,
	ttls TTLs,
	m *metrics.Metrics,
	logger *zap.Logger,
) Scraper {
	return &scraperUseCase{
		cache:    cache,
		fetcher:  fetcher,
		failures: failures,
		ttls:     ttls,
		metrics:  m,
		logger:   logger,
	}
}

// resource describes one cacheable upstream document.
type resource struct {
	kind       string
	identifier string
	key        string
	path       string
	ttl        time.Duration
}

func (uc *scraperUseCase) GetBoxer(ctx context.Context, boxerID string, token session.Token) (*entity.BoxerProfile, error) {
	boxerID = strings.TrimSpace(boxerID)
	if boxerID == "" {
		return nil, fmt.Errorf("%w: boxer id is required", entity.ErrInvalidRequest)
	}
	res := resource{
		kind:       kindBoxer,
		identifier: boxerID,
		key:        BoxerKey(boxerID),
		path:       boxrec.ProfilePath(boxerID),
		ttl:        uc.ttls.Boxer,
	}
	return load(ctx, uc, res, token, func(markup string) (*entity.BoxerProfile, error) {
		return extractor.ExtractProfile(markup, boxerID)
	})
}

func (uc *scraperUseCase) SearchBoxers(ctx context.Context, query string, token session.Token) ([]entity.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: search query is required", entity.ErrInvalidRequest)
	}
	res := resource{
		kind:       kindSearch,
		identifier: query,
		key:        SearchKey(query),
		path:       boxrec.SearchPath(query),
		ttl:        uc.ttls.Search,
	}
	return load(ctx, uc, res, token, extractor.ExtractSearchResults)
}

func (uc *scraperUseCase) GetRatings(ctx context.Context, division string, token session.Token) (*entity.RatingsResponse, error) {
	division = strings.TrimSpace(division)
	if division == "" {
		return nil, fmt.Errorf("%w: weight division is required", entity.ErrInvalidRequest)
	}
	res := resource{
		kind:       kindRatings,
		identifier: division,
		key:        RatingsKey(division),
		path:       boxrec.RatingsPath(boxrec.DivisionCode(division)),
		ttl:        uc.ttls.Ratings,
	}
	return load(ctx, uc, res, token, func(markup string) (*entity.RatingsResponse, error) {
		return extractor.ExtractRatings(markup, division)
	})
}

// load serves res from the cache, or fetches and extracts it. Concurrent
// misses for the same key share one upstream fetch; the fetch runs detached
// from any single caller's cancellation so the other waiters still get it.
func load[T any](ctx context.Context, uc *scraperUseCase, res resource, token session.Token, extract func(string) (T, error)) (T, error) {
	var cached T
	if uc.cache.Get(ctx, res.key, &cached) {
		return cached, nil
	}

	var zero T
	if token.Empty() {
		return zero, fmt.Errorf("%w: no upstream session for %s %q", entity.ErrUnauthenticated, res.kind, res.identifier)
	}

	ch := uc.flights.DoChan(res.key, func() (any, error) {
		return uc.refresh(context.WithoutCancel(ctx), res, token, func(markup string) (any, error) {
			return extract(markup)
		})
	})

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return zero, r.Err
		}
		return r.Val.(T), nil
	}
}

func (uc *scraperUseCase) refresh(ctx context.Context, res resource, token session.Token, extract func(string) (any, error)) (any, error) {
	start := time.Now()
	markup, err := uc.fetcher.Fetch(ctx, res.path, token.String())
	elapsed := time.Since(start)
	uc.metrics.ObserveUpstream(res.kind, elapsed.Seconds())
	if err != nil {
		uc.metrics.IncUpstreamErrors(res.kind, entity.ErrorType(err))
		uc.logger.Warn("upstream fetch failed",
			zap.String("kind", res.kind),
			zap.String("identifier", res.identifier),
			zap.String("path", res.path),
			zap.Duration("duration", elapsed),
			zap.Error(err),
		)
		uc.recordFailure(ctx, res, err)
		return nil, err
	}
	uc.logger.Info("upstream fetch completed",
		zap.String("kind", res.kind),
		zap.String("path", res.path),
		zap.Duration("duration", elapsed),
	)

	value, err := extract(markup)
	if err != nil {
		uc.metrics.IncExtractions(res.kind, "failure")
		uc.metrics.IncUpstreamErrors(res.kind, entity.ErrorType(err))
		uc.logger.Error("document not recognised, upstream layout may have changed",
			zap.String("kind", res.kind),
			zap.String("identifier", res.identifier),
			zap.String("path", res.path),
			zap.Int("bytes", len(markup)),
			zap.Error(err),
		)
		uc.recordFailure(ctx, res, err)
		return nil, err
	}
	uc.metrics.IncExtractions(res.kind, "success")

	uc.cache.Set(ctx, res.key, value, res.ttl)
	return value, nil
}

// recordFailure archives upstream-side failures other than expired
// sessions. It never fails the request.
func (uc *scraperUseCase) recordFailure(ctx context.Context, res resource, cause error) {
	if uc.failures == nil || errors.Is(cause, entity.ErrUnauthenticated) {
		return
	}
	if !errors.Is(cause, entity.ErrUpstreamUnavailable) &&
		!errors.Is(cause, entity.ErrUpstreamRejected) &&
		!errors.Is(cause, entity.ErrMalformedDocument) {
		return
	}

	f := &entity.UpstreamFailure{
		Kind:       res.kind,
		Identifier: res.identifier,
		Path:       res.path,
		ErrorType:  entity.ErrorType(cause),
		Reason:     cause.Error(),
		LastSeenAt: time.Now().UTC(),
	}
	var rejected *entity.UpstreamRejectedError
	if errors.As(cause, &rejected) {
		f.StatusCode = rejected.StatusCode
	}

	ctx, cancel := context.WithTimeout(ctx, failureRecordTimeout)
	defer cancel()
	if err := uc.failures.SaveOrUpdate(ctx, f); err != nil {
		uc.logger.Warn("failed to archive upstream failure",
			zap.String("kind", res.kind),
			zap.String("identifier", res.identifier),
			zap.Error(err),
		)
	}
}
