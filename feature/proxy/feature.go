package proxy

import (
	"manatan-gateway/core/metrics"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature wires the proxy into the feature loader.
type Feature struct {
	handler *Handler
}

// NewFeature creates the proxy feature targeting backendURL.
func NewFeature(backendURL string, logg *zap.Logger, m *metrics.Metrics) *Feature {
	service := NewService(backendURL, logg, m)
	return &Feature{handler: NewHandler(service)}
}

// Name returns the feature name.
func (f *Feature) Name() string {
	return "proxy"
}

// IsEnabled reports whether the feature is enabled. The proxy is the whole
// point of the gateway, so it always is.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the proxy routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
