package handlers

import (
	"net/http"
	"time"

	"github.com/gardenxas/llm-relay/utils"
	"go.uber.org/zap"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string   `json:"status"`
	Timestamp string   `json:"timestamp"`
	Providers []string `json:"providers,omitempty"`
}

// HealthHandler handles health-related HTTP requests
type HealthHandler struct {
	providers []string
	logger    *zap.Logger
}

// NewHealthHandler creates a new HealthHandler. providers lists the
// registered provider names reported in the response.
func NewHealthHandler(providers []string, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		providers: providers,
		logger:    logger,
	}
}

// HandleHealth handles GET /healthz
// The relay holds no stateful dependencies, so a running process is a
// healthy process.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Providers: h.providers,
	}

	if err := utils.WriteJSON(w, http.StatusOK, response); err != nil {
		h.logger.Error("failed to write health response", zap.Error(err))
	}
}
