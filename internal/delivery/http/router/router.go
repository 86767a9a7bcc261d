package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/user/boxrec-service/internal/delivery/http/handler"
	"github.com/user/boxrec-service/internal/delivery/http/middleware"
	"github.com/user/boxrec-service/internal/usecase"
	"github.com/user/boxrec-service/pkg/metrics"
	"go.uber.org/zap"
)

const requestTimeout = 60 * time.Second

func New(
	h *handler.Handler,
	limiter usecase.RateLimiter,
	m *metrics.Metrics,
	gatherer prometheus.Gatherer,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logging(logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(requestTimeout))
	r.Use(middleware.Metrics(m))

	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.HandleHealthCheck)
		r.Get("/docs", h.HandleDocsUI)
		r.Get("/docs/swagger.json", h.HandleSwaggerJSON)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(limiter, logger))

			r.Post("/auth", h.HandleAuth)
			r.Get("/boxer/{id}", h.HandleGetBoxer)
			r.Get("/search", h.HandleSearch)
			r.Get("/ratings/{division}", h.HandleGetRatings)
			r.Get("/diagnostics/failures", h.HandleListFailures)
		})
	})

	return r
}
