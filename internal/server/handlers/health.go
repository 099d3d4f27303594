package handlers

import (
	"log/slog"
	"net/http"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	logger *slog.Logger
}

// NewHealthHandler creates a new handler for health checks
func NewHealthHandler(logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		logger: logger,
	}
}

// HealthResponse is the health check body
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

// Health handles GET /api/v1/health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:  "ok",
		Version: "dev",
	}

	sendJSON(h.logger, w, resp, http.StatusOK)
}
