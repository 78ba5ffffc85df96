package openaicompat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gardenxas/llm-relay/services/providers"
	"go.uber.org/zap"
)

const (
	defaultTimeout = 60 * time.Second

	defaultModel       = "default-model"
	defaultTemperature = 0.7
	defaultMaxTokens   = 4096

	// authHeader replaces the standard Authorization header because the
	// hosting environment strips it from forwarded requests. Do not switch
	// this back to the standard header name.
	authHeader = "HTTP-Authorization"
)

// Adapter implements the Provider interface for chat-completion-style APIs
// (OpenRouter, LLMost). One instance covers any provider speaking this
// format; only the base URL, credential and extra headers differ.
type Adapter struct {
	config     providers.Config
	httpClient *http.Client
	logger     *zap.Logger
}

// chatCompletionRequest is the outbound request envelope. Temperature and
// max_tokens are always present, defaulted when the caller omits them.
type chatCompletionRequest struct {
	Model       string                  `json:"model"`
	Messages    []providers.ChatMessage `json:"messages"`
	Temperature float64                 `json:"temperature"`
	MaxTokens   int                     `json:"max_tokens"`
}

// NewAdapter creates an adapter for one chat-completion provider
func NewAdapter(config providers.Config, logger *zap.Logger) *Adapter {
	if config.Timeout == 0 {
		config.Timeout = defaultTimeout
	}

	return &Adapter{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		logger: logger,
	}
}

// Name returns the provider name
func (a *Adapter) Name() string {
	return a.config.Name
}

// Send translates the canonical request to the chat-completion format,
// forwards it upstream and translates the response back to the canonical
// candidate shape.
func (a *Adapter) Send(ctx context.Context, req *providers.Request, callerKey string) (json.RawMessage, error) {
	apiKey := callerKey
	if apiKey == "" {
		apiKey = a.config.APIKey
	}
	if apiKey == "" {
		return nil, providers.NewConfigError(fmt.Sprintf(
			"%s API key is missing: not found in client request or on server (env var: %s)",
			a.config.Name, a.config.EnvKey))
	}

	payload := a.buildRequest(req)

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, providers.NewTransportError("failed to marshal request", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.config.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, providers.NewTransportError("failed to create request", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set(authHeader, "Bearer "+apiKey)
	for k, v := range a.config.ExtraHeaders {
		httpReq.Header.Set(k, v)
	}

	a.logger.Info("forwarding to chat-completion provider",
		zap.String("provider", a.config.Name),
		zap.String("model", payload.Model))

	httpResp, err := a.httpClient.Do(httpReq)
	if err != nil {
		return nil, providers.NewTransportError(
			fmt.Sprintf("%s request failed", a.config.Name), err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, providers.NewTransportError("failed to read response", err)
	}

	if httpResp.StatusCode < http.StatusOK || httpResp.StatusCode >= http.StatusMultipleChoices {
		return nil, providers.NewUpstreamError(a.config.Name, httpResp.StatusCode, respBody)
	}

	completion := providers.FromChatResponse(respBody)

	canonical, err := json.Marshal(completion.CandidateResponse())
	if err != nil {
		return nil, providers.NewTransportError("failed to marshal response", err)
	}

	return canonical, nil
}

// buildRequest constructs the outbound envelope, substituting defaults for
// any missing generation settings.
func (a *Adapter) buildRequest(req *providers.Request) chatCompletionRequest {
	payload := chatCompletionRequest{
		Model:       req.ModelName,
		Messages:    providers.ToChatMessages(req.Contents),
		Temperature: defaultTemperature,
		MaxTokens:   defaultMaxTokens,
	}

	if payload.Model == "" {
		payload.Model = defaultModel
	}

	if cfg := req.GenerationConfig; cfg != nil {
		if cfg.Temperature != nil {
			payload.Temperature = *cfg.Temperature
		}
		if cfg.MaxOutputTokens != nil {
			payload.MaxTokens = *cfg.MaxOutputTokens
		}
	}

	return payload
}
