package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/gardenxas/llm-relay/utils"
	"go.uber.org/zap"
)

// RelayService defines the dispatch operation the handler depends on
type RelayService interface {
	// Dispatch forwards one relay request and returns the body to write back
	Dispatch(ctx context.Context, body []byte, callerKey string) (json.RawMessage, error)
}

// RelayHandler handles the single relay endpoint
type RelayHandler struct {
	service RelayService
	logger  *zap.Logger
}

// NewRelayHandler creates a new RelayHandler
func NewRelayHandler(service RelayService, logger *zap.Logger) *RelayHandler {
	return &RelayHandler{
		service: service,
		logger:  logger,
	}
}

// HandleRelay handles POST /api/proxy
// Thin handler: read the body, strip the bearer credential, dispatch, and map
// any failure to the wire error shape.
func (h *RelayHandler) HandleRelay(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.logger.Warn("failed to read request body", zap.Error(err))
		_ = utils.WriteBadRequest(w, "Invalid request body")
		return
	}

	callerKey := bearerKey(r.Header.Get("Authorization"))

	resp, err := h.service.Dispatch(r.Context(), body, callerKey)
	if err != nil {
		HandleRelayError(w, err, h.logger)
		return
	}

	if err := utils.WriteRawJSON(w, http.StatusOK, resp); err != nil {
		h.logger.Error("failed to write response", zap.Error(err))
	}
}

// bearerKey extracts the credential from a bearer-style authorization header.
// An empty result means the caller supplied no credential.
func bearerKey(header string) string {
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}
