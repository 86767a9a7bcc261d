package response

import "github.com/user/boxrec-service/internal/entity"

type ErrorResponse struct {
	Error string `json:"error"`
}

type AuthResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status       string          `json:"status"` // "ok" or "degraded"
	Dependencies map[string]bool `json:"dependencies"`
}

type FailuresResponse struct {
	Failures []*entity.UpstreamFailure `json:"failures"`
	Count    int                       `json:"count"`
}
