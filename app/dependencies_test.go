package app

import (
	"os"
	"testing"

	"github.com/gardenxas/llm-relay/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewDependencies(t *testing.T) {
	os.Clearenv()
	cfg, err := config.New()
	require.NoError(t, err)

	deps, err := NewDependencies(cfg, zap.NewNop())
	require.NoError(t, err)

	assert.NotNil(t, deps.Relay)
	assert.NotNil(t, deps.RelayHandler)
	assert.NotNil(t, deps.HealthHandler)
	assert.ElementsMatch(t, []string{"gemini", "openrouter", "llmost"}, deps.Registry.Names())
}

func TestNewDependencies_RegistryLookups(t *testing.T) {
	os.Clearenv()
	cfg, err := config.New()
	require.NoError(t, err)

	deps, err := NewDependencies(cfg, zap.NewNop())
	require.NoError(t, err)

	for _, name := range []string{"gemini", "openrouter", "llmost"} {
		provider, err := deps.Registry.Get(name)
		require.NoError(t, err)
		assert.Equal(t, name, provider.Name())
	}

	_, err = deps.Registry.Get("unknown-llm")
	assert.Error(t, err)
}
