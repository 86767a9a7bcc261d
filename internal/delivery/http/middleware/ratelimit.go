package middleware

import (
	"net/http"
	"strconv"

	"github.com/user/boxrec-service/internal/delivery/http/handler"
	"github.com/user/boxrec-service/internal/delivery/http/response"
	"github.com/user/boxrec-service/internal/usecase"
	"go.uber.org/zap"
)

// RateLimit rejects clients over their window with 429. The client is
// identified by RemoteAddr, which chi's RealIP has already resolved.
func RateLimit(limiter usecase.RateLimiter, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			client := clientIP(r)
			d := limiter.Allow(r.Context(), client)

			h := w.Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(d.Limit))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
			h.Set("X-RateLimit-Reset", strconv.FormatInt(d.ResetAt.Unix(), 10))

			if !d.Allowed {
				logger.Warn("rate limit exceeded", zap.String("ip", client), zap.String("path", r.URL.Path))
				handler.WriteJSON(w, http.StatusTooManyRequests, response.ErrorResponse{Error: "Rate limit exceeded. Please try again later."}, logger)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
