package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/user/boxrec-service/internal/delivery/http/response"
	"github.com/user/boxrec-service/internal/entity"
	"github.com/user/boxrec-service/internal/session"
	"github.com/user/boxrec-service/internal/usecase"
	"go.uber.org/zap"
)

const msgNotAuthenticated = "Not authenticated. Please login first."

// CookieOptions controls the session cookies set after a login.
type CookieOptions struct {
	Secure bool
	MaxAge time.Duration
}

type Handler struct {
	scraper     usecase.Scraper
	auth        usecase.Authenticator
	diagnostics usecase.Diagnostics
	cookies     CookieOptions
	logger      *zap.Logger
}

func NewHandler(
	scraper usecase.Scraper,
	auth usecase.Authenticator,
	diagnostics usecase.Diagnostics,
	cookies CookieOptions,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		scraper:     scraper,
		auth:        auth,
		diagnostics: diagnostics,
		cookies:     cookies,
		logger:      logger,
	}
}

// messages are the user-facing texts of one endpoint.
type messages struct {
	invalid string
	failed  string
}

var (
	boxerMessages   = messages{invalid: "Boxer ID is required", failed: "Failed to fetch boxer data"}
	searchMessages  = messages{invalid: "Search query is required", failed: "Failed to search boxers"}
	ratingsMessages = messages{invalid: "Weight division is required", failed: "Failed to fetch ratings"}
	authMessages    = messages{invalid: "Username and password are required", failed: "Authentication failed due to an internal error"}
)

func (h *Handler) HandleGetBoxer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	profile, err := h.scraper.GetBoxer(r.Context(), id, session.FromRequest(r))
	if err != nil {
		h.writeError(w, r, err, boxerMessages)
		return
	}
	h.writeJSON(w, http.StatusOK, profile)
}

func (h *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	results, err := h.scraper.SearchBoxers(r.Context(), query, session.FromRequest(r))
	if err != nil {
		h.writeError(w, r, err, searchMessages)
		return
	}
	h.writeJSON(w, http.StatusOK, results)
}

func (h *Handler) HandleGetRatings(w http.ResponseWriter, r *http.Request) {
	division := chi.URLParam(r, "division")
	ratings, err := h.scraper.GetRatings(r.Context(), division, session.FromRequest(r))
	if err != nil {
		h.writeError(w, r, err, ratingsMessages)
		return
	}
	h.writeJSON(w, http.StatusOK, ratings)
}

func (h *Handler) HandleHealthCheck(w http.ResponseWriter, r *http.Request) {
	deps, ok := h.diagnostics.Health(r.Context())
	resp := response.HealthResponse{Status: "ok", Dependencies: deps}
	status := http.StatusOK
	if !ok {
		resp.Status = "degraded"
		status = http.StatusServiceUnavailable
	}
	h.writeJSON(w, status, resp)
}

func (h *Handler) HandleListFailures(w http.ResponseWriter, r *http.Request) {
	if session.FromRequest(r).Empty() {
		h.writeJSONError(w, msgNotAuthenticated, http.StatusUnauthorized)
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			h.writeJSONError(w, "limit must be an integer", http.StatusBadRequest)
			return
		}
		limit = n
	}

	failures, err := h.diagnostics.RecentFailures(r.Context(), limit)
	if err != nil {
		h.logger.Error("failed to list upstream failures", zap.Error(err))
		h.writeJSONError(w, "Failed to list upstream failures", http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, http.StatusOK, response.FailuresResponse{Failures: failures, Count: len(failures)})
}

// StatusFor maps an error to its response status.
func StatusFor(err error) int {
	var rejected *entity.UpstreamRejectedError
	switch {
	case errors.Is(err, entity.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, entity.ErrUnauthenticated), errors.Is(err, entity.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.As(err, &rejected) && rejected.StatusCode == http.StatusNotFound:
		return http.StatusNotFound
	case errors.Is(err, entity.ErrRateLimited):
		return http.StatusTooManyRequests
	}
	return http.StatusInternalServerError
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error, msgs messages) {
	status := StatusFor(err)
	msg := msgs.failed
	switch {
	case status == http.StatusBadRequest:
		msg = msgs.invalid
	case errors.Is(err, entity.ErrInvalidCredentials):
		msg = "Authentication failed. Check your credentials."
	case status == http.StatusUnauthorized:
		msg = msgNotAuthenticated
	case status == http.StatusNotFound:
		msg = "Resource not found"
	case status == http.StatusTooManyRequests:
		msg = "Rate limit exceeded. Please try again later."
	}

	fields := []zap.Field{
		zap.String("path", r.URL.Path),
		zap.Int("status", status),
		zap.String("request_id", middleware.GetReqID(r.Context())),
		zap.Error(err),
	}
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", fields...)
	} else {
		h.logger.Info("request rejected", fields...)
	}
	h.writeJSONError(w, msg, status)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	WriteJSON(w, status, data, h.logger)
}

func (h *Handler) writeJSONError(w http.ResponseWriter, message string, status int) {
	h.writeJSON(w, status, response.ErrorResponse{Error: message})
}

// WriteJSON encodes data as the response body.
func WriteJSON(w http.ResponseWriter, status int, data any, logger *zap.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to write JSON response", zap.Error(err))
	}
}
