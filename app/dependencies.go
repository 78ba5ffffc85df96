package app

import (
	"fmt"

	"github.com/gardenxas/llm-relay/config"
	"github.com/gardenxas/llm-relay/handlers"
	"github.com/gardenxas/llm-relay/services/providers"
	"github.com/gardenxas/llm-relay/services/providers/gemini"
	"github.com/gardenxas/llm-relay/services/providers/openaicompat"
	"github.com/gardenxas/llm-relay/services/ratelimit"
	"github.com/gardenxas/llm-relay/services/relay"
	"go.uber.org/zap"
)

// Dependencies holds all application dependencies. This is the central
// wiring point for dependency injection.
type Dependencies struct {
	Config   *config.Config
	Logger   *zap.Logger
	Registry *providers.Registry
	Relay    *relay.Service

	RelayHandler  *handlers.RelayHandler
	HealthHandler *handlers.HealthHandler
}

// NewDependencies creates and wires up all application dependencies
func NewDependencies(cfg *config.Config, logger *zap.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	if err := deps.initProviders(cfg); err != nil {
		return nil, fmt.Errorf("failed to initialize providers: %w", err)
	}

	deps.Relay = relay.NewService(deps.Registry, logger)
	deps.RelayHandler = handlers.NewRelayHandler(deps.Relay, logger)
	deps.HealthHandler = handlers.NewHealthHandler(deps.Registry.Names(), logger)

	for _, envKey := range cfg.MissingKeys() {
		logger.Warn("provider API key not configured, callers must supply their own",
			zap.String("env_var", envKey))
	}

	logger.Info("all dependencies initialized",
		zap.Strings("providers", deps.Registry.Names()))
	return deps, nil
}

// initProviders builds the provider registry from the static configuration
func (d *Dependencies) initProviders(cfg *config.Config) error {
	registry := providers.NewRegistry()

	limiter := ratelimit.New(cfg.Providers.Gemini.MinInterval, d.Logger)
	native := gemini.NewAdapter(providerConfig(cfg.Providers.Gemini), limiter, d.Logger)
	if err := registry.Register(native); err != nil {
		return err
	}

	for _, pc := range []config.ProviderConfig{cfg.Providers.OpenRouter, cfg.Providers.LLMost} {
		if err := registry.Register(openaicompat.NewAdapter(providerConfig(pc), d.Logger)); err != nil {
			return err
		}
	}

	d.Registry = registry
	return nil
}

// providerConfig maps the env-derived settings onto the provider package's
// static config type
func providerConfig(pc config.ProviderConfig) providers.Config {
	return providers.Config{
		Name:         pc.Name,
		BaseURL:      pc.BaseURL,
		APIKey:       pc.APIKey,
		EnvKey:       pc.EnvKey,
		Timeout:      pc.Timeout,
		ExtraHeaders: pc.ExtraHeaders,
	}
}
