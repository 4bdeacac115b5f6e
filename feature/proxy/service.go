package proxy

import (
	"manatan-gateway/core/logger"
	"manatan-gateway/core/metrics"

	"github.com/gofiber/fiber/v2"
	fiberproxy "github.com/gofiber/fiber/v2/middleware/proxy"
	"go.uber.org/zap"
)

// Service forwards requests to the loopback backend.
type Service struct {
	backendURL string
	logger     *zap.Logger
	metrics    *metrics.Metrics
}

// NewService creates a new proxy service targeting backendURL.
func NewService(backendURL string, logg *zap.Logger, m *metrics.Metrics) *Service {
	return &Service{
		backendURL: backendURL,
		logger:     logg,
		metrics:    m,
	}
}

// BackendURL returns the backend base URL requests are forwarded to.
func (s *Service) BackendURL() string {
	return s.backendURL
}

// Forward proxies the request to the backend at the same path and query.
// The backend owns the response entirely; the gateway only maps transport
// failures to 502.
func (s *Service) Forward(c *fiber.Ctx) error {
	target := s.backendURL + c.OriginalURL()
	s.metrics.RequestsTotal.Inc()

	if err := fiberproxy.Do(c, target); err != nil {
		s.metrics.RequestErrors.Inc()
		logger.WithRayID(s.logger, c).Error("Backend unreachable",
			zap.String("target", target),
			zap.Error(err),
		)
		return c.SendStatus(fiber.StatusBadGateway)
	}

	// The backend identifies itself; don't let fasthttp override it.
	c.Response().Header.Del(fiber.HeaderServer)
	return nil
}
