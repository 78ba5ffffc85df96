package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/gardenxas/llm-relay/services/providers"
	"github.com/gardenxas/llm-relay/services/ratelimit"
	"go.uber.org/zap"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultTimeout = 45 * time.Second
	defaultModel   = "gemini-1.5-flash-latest"
)

// Adapter implements the Provider interface for the native-protocol
// provider. The inbound body is already in this provider's wire format, so
// it is forwarded without translation and the upstream response is returned
// unchanged. Every call is spaced by the rate limiter because the upstream
// enforces a hard per-minute quota.
type Adapter struct {
	config     providers.Config
	limiter    *ratelimit.Limiter
	httpClient *http.Client
	logger     *zap.Logger
}

// NewAdapter creates the native-protocol adapter
func NewAdapter(config providers.Config, limiter *ratelimit.Limiter, logger *zap.Logger) *Adapter {
	if config.BaseURL == "" {
		config.BaseURL = defaultBaseURL
	}
	if config.Timeout == 0 {
		config.Timeout = defaultTimeout
	}

	return &Adapter{
		config:  config,
		limiter: limiter,
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

// Send forwards the provider-stripped body verbatim to the generateContent
// endpoint. The credential travels as a URL query parameter, not a header.
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

	model := req.ModelName
	if model == "" {
		model = defaultModel
	}

	body, err := json.Marshal(forwardBody(req.Fields))
	if err != nil {
		return nil, providers.NewTransportError("failed to marshal request", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		a.config.BaseURL, url.PathEscape(model), url.QueryEscape(apiKey))

	a.limiter.Wait()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, providers.NewTransportError("failed to create request", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	a.logger.Info("forwarding to native provider",
		zap.String("provider", a.config.Name),
		zap.String("model", model))

	httpResp, err := a.httpClient.Do(httpReq)
	if err != nil {
		return nil, providers.NewTransportError(
			fmt.Sprintf("%s request failed", a.config.Name), err)
	}
	defer httpResp.Body.Close()

	// The call reached the provider, so it counts against the quota whatever
	// the status turns out to be.
	a.limiter.Record()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, providers.NewTransportError("failed to read response", err)
	}

	if httpResp.StatusCode < http.StatusOK || httpResp.StatusCode >= http.StatusMultipleChoices {
		return nil, providers.NewUpstreamError(a.config.Name, httpResp.StatusCode, respBody)
	}

	return respBody, nil
}

// forwardBody strips the routing fields the upstream must not see. The model
// name moves into the URL path; everything else passes through untouched.
func forwardBody(fields map[string]json.RawMessage) map[string]json.RawMessage {
	body := make(map[string]json.RawMessage, len(fields))
	for k, v := range fields {
		if k == "modelName" {
			continue
		}
		body[k] = v
	}
	return body
}
