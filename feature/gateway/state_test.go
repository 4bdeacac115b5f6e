package gateway_test

import (
	"context"
	"errors"
	"testing"

	"manatan-gateway/core/backend"
	"manatan-gateway/core/config"
	"manatan-gateway/core/server"
	"manatan-gateway/feature/gateway"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func unmanagedConfig() *config.Config {
	return &config.Config{
		Server:  server.Config{Host: "127.0.0.1", Port: 4568},
		Backend: backend.Config{Managed: false},
	}
}

func TestBuildState_BackendPortDefaultsToPortPlusOne(t *testing.T) {
	state, err := gateway.BuildState(context.Background(), unmanagedConfig(), zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:4569", state.BackendURL)
	assert.Equal(t, 4569, state.Config.Backend.Port)
	assert.NotNil(t, state.Metrics)
}

func TestBuildState_EnvOverridesBackendAddr(t *testing.T) {
	t.Setenv("MANATAN_BACKEND_HOST", "10.9.8.7")
	t.Setenv("MANATAN_BACKEND_PORT", "7100")

	state, err := gateway.BuildState(context.Background(), unmanagedConfig(), zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, "http://10.9.8.7:7100", state.BackendURL)
}

func TestBuildState_ExplicitConfigBeatsEnv(t *testing.T) {
	t.Setenv("MANATAN_BACKEND_HOST", "10.9.8.7")
	t.Setenv("MANATAN_BACKEND_PORT", "7100")

	cfg := unmanagedConfig()
	cfg.Backend.Host = "127.0.0.1"
	cfg.Backend.Port = 6000

	state, err := gateway.BuildState(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:6000", state.BackendURL)
}

func TestBuildState_MissingArtifact(t *testing.T) {
	cfg := unmanagedConfig()
	cfg.Backend.Managed = true
	cfg.Backend.LibDir = t.TempDir()

	_, err := gateway.BuildState(context.Background(), cfg, zap.NewNop())
	require.Error(t, err)

	var missing *backend.MissingArtifactError
	assert.True(t, errors.As(err, &missing))
}

func TestState_CloseWithoutManagedBackend(t *testing.T) {
	state, err := gateway.BuildState(context.Background(), unmanagedConfig(), zap.NewNop())
	require.NoError(t, err)
	assert.NoError(t, state.Close(context.Background()))
}
