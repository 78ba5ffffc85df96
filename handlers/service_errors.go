package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gardenxas/llm-relay/services/providers"
	"github.com/gardenxas/llm-relay/utils"
	"go.uber.org/zap"
)

// HandleRelayError maps relay errors to HTTP responses. This is the single
// conversion point: no error kind propagates past the handler, none crashes
// the process.
//
// Upstream errors are special-cased to pass through the provider's own status
// code and, when the upstream body is valid JSON, the body verbatim, so the
// caller keeps the provider-specific error detail.
func HandleRelayError(w http.ResponseWriter, err error, logger *zap.Logger) {
	if err == nil {
		return
	}

	relayErr, ok := providers.AsRelayError(err)
	if !ok {
		logger.Error("unhandled error type", zap.Error(err))
		_ = utils.WriteInternalServerError(w, "Relay internal error")
		return
	}

	switch relayErr.Type {
	case providers.ErrorTypeUpstream:
		status := relayErr.Status
		if status == 0 {
			status = http.StatusBadGateway
		}
		if len(relayErr.Body) > 0 && json.Valid(relayErr.Body) {
			if err := utils.WriteRawJSON(w, status, relayErr.Body); err != nil {
				logger.Error("failed to write upstream error response", zap.Error(err))
			}
			return
		}
		if err := utils.WriteErrorMessage(w, status, string(relayErr.Body)); err != nil {
			logger.Error("failed to write upstream error response", zap.Error(err))
		}

	case providers.ErrorTypeValidation:
		if err := utils.WriteBadRequest(w, relayErr.Message); err != nil {
			logger.Error("failed to write validation error response", zap.Error(err))
		}

	case providers.ErrorTypeConfig:
		if err := utils.WriteInternalServerError(w, relayErr.Message); err != nil {
			logger.Error("failed to write config error response", zap.Error(err))
		}

	case providers.ErrorTypeTransport:
		if err := utils.WriteBadGateway(w, relayErr.Message); err != nil {
			logger.Error("failed to write transport error response", zap.Error(err))
		}

	default:
		logger.Error("unknown relay error type",
			zap.String("error_type", string(relayErr.Type)),
			zap.Error(err))
		if err := utils.WriteInternalServerError(w, "Relay internal error"); err != nil {
			logger.Error("failed to write internal error response", zap.Error(err))
		}
	}
}
