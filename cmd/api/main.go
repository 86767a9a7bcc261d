package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/user/boxrec-service/internal/adapter/boxrec"
	"github.com/user/boxrec-service/internal/adapter/memory"
	"github.com/user/boxrec-service/internal/adapter/postgres"
	redis_adapter "github.com/user/boxrec-service/internal/adapter/redis"
	"github.com/user/boxrec-service/internal/delivery/http/handler"
	"github.com/user/boxrec-service/internal/delivery/http/router"
	"github.com/user/boxrec-service/internal/repository"
	"github.com/user/boxrec-service/internal/usecase"
	"github.com/user/boxrec-service/pkg/config"
	"github.com/user/boxrec-service/pkg/logger"
	"github.com/user/boxrec-service/pkg/metrics"
	"go.uber.org/zap"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load(".env")
	if err != nil {
		// The logger depends on the config, so this one goes to a bootstrap logger.
		boot, _ := zap.NewProduction()
		boot.Fatal("could not load config", zap.Error(err))
	}

	// --- Logger ---
	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		boot, _ := zap.NewProduction()
		boot.Fatal("could not build logger", zap.Error(err))
	}
	defer func() { _ = log.Sync() }()

	// --- Metrics ---
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	ctx := context.Background()

	// --- Cache and rate limit stores ---
	var (
		cacheStore repository.CacheRepository
		counter    repository.RateLimitRepository
	)
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			// Both stores degrade on their own, so an unreachable Redis is not fatal.
			log.Warn("redis not reachable at startup", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		} else {
			log.Info("redis connection established", zap.String("addr", cfg.RedisAddr))
		}
		cacheStore = redis_adapter.NewCacheRepo(rdb)
		counter = redis_adapter.NewRateLimitRepo(rdb)
	} else {
		memCache, err := memory.NewCacheRepo(cfg.MemoryCacheSize)
		if err != nil {
			log.Fatal("could not create in-process cache", zap.Error(err))
		}
		memCounter, err := memory.NewRateLimitRepo(cfg.MemoryCacheSize)
		if err != nil {
			log.Fatal("could not create in-process rate limiter", zap.Error(err))
		}
		cacheStore, counter = memCache, memCounter
		log.Info("using in-process cache", zap.Int("size", cfg.MemoryCacheSize))
	}

	// --- Failure archive ---
	var failures repository.FailureRepository
	if cfg.PostgresURL != "" {
		dbpool, err := pgxpool.New(ctx, cfg.PostgresURL)
		if err != nil {
			log.Fatal("unable to create postgres pool", zap.Error(err))
		}
		defer dbpool.Close()
		repo := postgres.NewFailureRepo(dbpool)
		if err := repo.EnsureSchema(ctx); err != nil {
			log.Fatal("unable to prepare upstream_failures table", zap.Error(err))
		}
		failures = repo
		log.Info("upstream failure archive enabled")
	}

	// --- Upstream ---
	fetcher, err := boxrec.NewFetcher(cfg.UpstreamBaseURL, cfg.UpstreamUserAgent, cfg.UpstreamTimeout(), log)
	if err != nil {
		log.Fatal("invalid upstream configuration", zap.Error(err))
	}
	sessions, err := boxrec.NewSessionRepo(cfg.UpstreamBaseURL, cfg.UpstreamUserAgent, cfg.UpstreamTimeout(), log)
	if err != nil {
		log.Fatal("invalid upstream configuration", zap.Error(err))
	}

	// --- Use Cases ---
	cache := usecase.NewCache(cacheStore, m, log)
	scraper := usecase.NewScraperUseCase(cache, fetcher, failures, usecase.TTLs{
		Boxer:   cfg.BoxerCacheTTL(),
		Search:  cfg.SearchCacheTTL(),
		Ratings: cfg.RatingsCacheTTL(),
	}, m, log)
	auth := usecase.NewAuthUseCase(sessions, log)
	diagnostics := usecase.NewDiagnosticsUseCase(cache, failures)
	limiter := usecase.NewRateLimitUseCase(counter, cfg.RateLimitRequests, cfg.RateLimitWindow(), m, log)

	// --- HTTP Server ---
	apiHandler := handler.NewHandler(scraper, auth, diagnostics, handler.CookieOptions{
		Secure: cfg.IsProduction(),
		MaxAge: cfg.SessionCookieMaxAge(),
	}, log)

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router.New(apiHandler, limiter, m, reg, log),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: cfg.UpstreamTimeout() + 35*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Graceful Shutdown
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("could not start server", zap.Error(err))
		}
	}()
	log.Info("server started", zap.String("port", cfg.ServerPort), zap.String("upstream", cfg.UpstreamBaseURL))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}

	log.Info("server exiting")
}
