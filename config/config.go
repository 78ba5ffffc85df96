package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gardenxas/llm-relay/utils"
	"github.com/joho/godotenv"
)

// defaultAllowedOrigins is the CORS allow-list used when ALLOWED_ORIGINS is
// not set.
var defaultAllowedOrigins = []string{
	"https://gardenxas.itch.io",
	"https://html-classic.itch.zone",
	"http://127.0.0.1:8080",
	"http://localhost:8080",
}

// Config represents the complete application configuration
type Config struct {
	Server        ServerConfig
	Providers     ProvidersConfig
	CORS          CORSConfig
	Observability ObservabilityConfig
	Environment   string
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int `validate:"gt=0"`
	ReadTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// ProvidersConfig holds the per-provider settings. Entries are immutable
// after process start.
type ProvidersConfig struct {
	Gemini     ProviderConfig
	OpenRouter ProviderConfig
	LLMost     ProviderConfig
}

// ProviderConfig holds the static settings for one upstream provider
type ProviderConfig struct {
	Name    string `validate:"required"`
	BaseURL string `validate:"required,url"`
	// APIKey is the server-side credential; empty is allowed (callers may
	// supply their own) and only triggers a startup warning
	APIKey       string
	EnvKey       string `validate:"required"`
	Timeout      time.Duration
	ExtraHeaders map[string]string
	// MinInterval spaces outbound calls; zero disables the rate limiter
	MinInterval time.Duration `validate:"gte=0"`
}

// CORSConfig holds the CORS allow-list
type CORSConfig struct {
	AllowedOrigins []string `validate:"required,min=1"`
}

// ObservabilityConfig holds logging configuration
type ObservabilityConfig struct {
	LogLevel  string `validate:"required"`
	LogFormat string // json or text
}

// New creates a new Config instance by loading environment variables
func New() (*Config, error) {
	// Load .env if present; missing files are fine.
	_ = godotenv.Load(".env")

	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getEnvAsInt("PORT", 3000),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 30*time.Second),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Providers: ProvidersConfig{
			Gemini: ProviderConfig{
				Name:        "gemini",
				BaseURL:     getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),
				APIKey:      getEnv("GEMINI_API_KEY", ""),
				EnvKey:      "GEMINI_API_KEY",
				Timeout:     getEnvAsDuration("GEMINI_TIMEOUT", 45*time.Second),
				MinInterval: getEnvAsDuration("GEMINI_REQUEST_DELAY", 11*time.Second),
			},
			OpenRouter: ProviderConfig{
				Name:    "openrouter",
				BaseURL: getEnv("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"),
				APIKey:  getEnv("OPENROUTER_API_KEY", ""),
				EnvKey:  "OPENROUTER_API_KEY",
				Timeout: getEnvAsDuration("OPENROUTER_TIMEOUT", 60*time.Second),
				ExtraHeaders: map[string]string{
					"HTTP-Referer": getEnv("OPENROUTER_REFERER", "https://github.com/MrKins/Chronicles-of-Meterea"),
					"X-Title":      getEnv("OPENROUTER_TITLE", "Chronicles of Meterea"),
				},
			},
			LLMost: ProviderConfig{
				Name:    "llmost",
				BaseURL: getEnv("LLMOST_BASE_URL", "https://llmost.ru/api/v1"),
				APIKey:  getEnv("LLMOST_API_KEY", ""),
				EnvKey:  "LLMOST_API_KEY",
				Timeout: getEnvAsDuration("LLMOST_TIMEOUT", 60*time.Second),
			},
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsSlice("ALLOWED_ORIGINS", defaultAllowedOrigins),
		},
		Observability: ObservabilityConfig{
			LogLevel:  getEnv("LOG_LEVEL", "info"),
			LogFormat: getEnv("LOG_FORMAT", "json"),
		},
	}

	if err := utils.ValidateStruct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// MissingKeys returns the env var names of providers that have no server-side
// credential configured. Absent keys are logged as warnings at startup, never
// fatal: callers may supply their own key per request.
func (c *Config) MissingKeys() []string {
	var missing []string
	for _, provider := range []ProviderConfig{c.Providers.Gemini, c.Providers.OpenRouter, c.Providers.LLMost} {
		if provider.APIKey == "" {
			missing = append(missing, provider.EnvKey)
		}
	}
	return missing
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.Environment == "production" || c.Environment == "prod"
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development" || c.Environment == "dev"
}

// Address returns the HTTP server address
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	var values []string
	for _, v := range strings.Split(valueStr, ",") {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	if len(values) == 0 {
		return defaultValue
	}
	return values
}
