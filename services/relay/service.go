package relay

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gardenxas/llm-relay/services/providers"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultProvider is selected when the inbound request carries no provider
// field.
const DefaultProvider = "gemini"

// Service dispatches inbound relay requests to the selected provider. The
// whole dispatch-to-respond path runs under one process-wide lock, so at most
// one outbound provider call is in flight at any instant. Concurrent callers
// queue on the mutex and each waits for the full round-trip ahead of it.
type Service struct {
	mu       sync.Mutex
	registry *providers.Registry
	logger   *zap.Logger
}

// NewService creates a new relay Service
func NewService(registry *providers.Registry, logger *zap.Logger) *Service {
	return &Service{
		registry: registry,
		logger:   logger,
	}
}

// Dispatch parses the inbound body, selects the provider and forwards the
// request. callerKey is the bearer credential from the inbound request, empty
// when none was supplied. The returned body is written to the caller as-is;
// every failure comes back as a RelayError for the handler boundary to map.
func (s *Service) Dispatch(ctx context.Context, body []byte, callerKey string) (json.RawMessage, error) {
	requestID := uuid.New().String()

	req, providerName, err := parseRequest(body)
	if err != nil {
		return nil, err
	}

	s.logger.Info("received relay request",
		zap.String("request_id", requestID),
		zap.String("provider", providerName))

	s.mu.Lock()
	defer s.mu.Unlock()

	provider, err := s.registry.Get(providerName)
	if err != nil {
		return nil, providers.NewValidationError(fmt.Sprintf("Unsupported provider: %s", providerName))
	}

	start := time.Now()
	resp, err := provider.Send(ctx, req, callerKey)
	if err != nil {
		s.logger.Warn("relay request failed",
			zap.String("request_id", requestID),
			zap.String("provider", providerName),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("relay request completed",
		zap.String("request_id", requestID),
		zap.String("provider", providerName),
		zap.Duration("duration", time.Since(start)))

	return resp, nil
}

// parseRequest decodes the body, pops the provider selector and builds the
// canonical request. Missing optional fields are tolerated; only an absent or
// unparseable body is rejected.
func parseRequest(body []byte) (*providers.Request, string, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil || fields == nil {
		return nil, "", providers.NewValidationError("Invalid JSON body")
	}

	providerName := DefaultProvider
	if raw, ok := fields["provider"]; ok {
		var name string
		if err := json.Unmarshal(raw, &name); err == nil && name != "" {
			providerName = name
		}
		delete(fields, "provider")
	}
	providerName = strings.ToLower(providerName)

	var req providers.Request
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, "", providers.NewValidationError("Invalid JSON body")
	}
	req.Fields = fields

	return &req, providerName, nil
}
