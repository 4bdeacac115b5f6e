package gateway

import (
	"context"
	"os"
	"strconv"

	"manatan-gateway/core/backend"
	"manatan-gateway/core/config"
	"manatan-gateway/core/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Environment overrides for the backend address, honored even when the
// Config was constructed directly rather than through config.LoadConfig.
const (
	envBackendHost = "MANATAN_BACKEND_HOST"
	envBackendPort = "MANATAN_BACKEND_PORT"
)

// State is the shared application state behind the public router. It owns
// the embedded backend handle; Close releases it.
type State struct {
	Config     *config.Config
	BackendURL string
	Logger     *zap.Logger
	Metrics    *metrics.Metrics

	registry *prometheus.Registry
	server   *backend.Server
}

// BuildState resolves the backend address, launches the embedded backend
// when managed, and returns the state the routers are built from.
func BuildState(ctx context.Context, cfg *config.Config, logg *zap.Logger) (*State, error) {
	resolveBackendAddr(cfg)

	registry := prometheus.NewRegistry()
	state := &State{
		Config:     cfg,
		BackendURL: cfg.Backend.URL(),
		Logger:     logg,
		Metrics:    metrics.New(registry),
		registry:   registry,
	}

	if cfg.Backend.Managed {
		server, err := backend.Start(ctx, cfg.BackendOptions(), logg)
		if err != nil {
			return nil, err
		}
		state.server = server
	}

	return state, nil
}

// Close stops the embedded backend, if one was launched.
func (s *State) Close(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Stop(ctx)
}

// resolveBackendAddr fills in the backend host and port from environment
// variables or defaults. The port falls back to the public port + 1.
func resolveBackendAddr(cfg *config.Config) {
	if cfg.Backend.Host == "" {
		cfg.Backend.Host = os.Getenv(envBackendHost)
	}
	if cfg.Backend.Host == "" {
		cfg.Backend.Host = "127.0.0.1"
	}

	if cfg.Backend.Port == 0 {
		if port, err := strconv.Atoi(os.Getenv(envBackendPort)); err == nil && port > 0 {
			cfg.Backend.Port = port
		} else {
			cfg.Backend.Port = cfg.Server.Port + 1
		}
	}
}
