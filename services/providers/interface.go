package providers

import (
	"context"
	"encoding/json"
	"time"
)

// Provider represents one upstream LLM endpoint the relay can forward to.
// Send returns the JSON body to hand back to the caller: native-protocol
// providers return the upstream response unchanged, translated providers
// return the canonical candidate shape.
type Provider interface {
	// Name returns the provider name (e.g., "gemini", "openrouter")
	Name() string

	// Send forwards the request to the upstream provider. callerKey is the
	// credential supplied with the inbound request, already stripped of its
	// bearer prefix; when empty, the provider falls back to its configured
	// environment credential.
	Send(ctx context.Context, req *Request, callerKey string) (json.RawMessage, error)
}

// Request is the canonical relay request: the native wire format with the
// provider selector already stripped.
type Request struct {
	Contents         []Turn            `json:"contents"`
	ModelName        string            `json:"modelName,omitempty"`
	GenerationConfig *GenerationConfig `json:"generationConfig,omitempty"`

	// Fields holds the provider-stripped body exactly as the caller sent it.
	// Native-protocol providers forward it unmodified.
	Fields map[string]json.RawMessage `json:"-"`
}

// Turn is a single conversational turn in the canonical format.
type Turn struct {
	Role  string `json:"role"`
	Parts []Part `json:"parts"`
}

// Part is one text fragment of a turn.
type Part struct {
	Text string `json:"text"`
}

// GenerationConfig carries optional sampling parameters. Missing fields fall
// back to provider defaults rather than being rejected.
type GenerationConfig struct {
	Temperature     *float64 `json:"temperature,omitempty"`
	MaxOutputTokens *int     `json:"maxOutputTokens,omitempty"`
}

// Config holds the static settings for one upstream provider. Entries are
// built once at startup and read-only afterwards.
type Config struct {
	// Name identifies the provider in logs and error messages
	Name string

	// BaseURL is the upstream API root, without a trailing slash
	BaseURL string

	// APIKey is the server-side credential, loaded from EnvKey at startup
	APIKey string

	// EnvKey is the environment variable the credential comes from,
	// referenced in error messages when no key is available
	EnvKey string

	// Timeout bounds each outbound call
	Timeout time.Duration

	// ExtraHeaders are provider-specific headers sent with every request
	ExtraHeaders map[string]string
}
