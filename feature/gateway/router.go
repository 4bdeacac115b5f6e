package gateway

import (
	"manatan-gateway/core/loader"
	"manatan-gateway/core/logger"
	"manatan-gateway/core/middleware/auth"
	"manatan-gateway/core/middleware/rayid"
	"manatan-gateway/feature/proxy"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// BuildRouter builds the public router with a permissive CORS layer
// (any origin, method and header).
func BuildRouter(state *State) *fiber.App {
	return buildRouter(state, true)
}

// BuildRouterWithoutCORS builds the public router without the CORS layer,
// for embedders that supply their own.
func BuildRouterWithoutCORS(state *State) *fiber.App {
	return buildRouter(state, false)
}

func buildRouter(state *State, withCORS bool) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true, // We log our own startup message
	})

	if withCORS {
		app.Use(cors.New(cors.Config{
			AllowOrigins: "*",
			AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH,OPTIONS",
			AllowHeaders: "*",
		}))
	}

	// RayID first so everything downstream is traceable
	app.Use(rayid.New())
	app.Use(requestLogger(state.Logger))
	app.Use(auth.New(auth.Config{
		ApiKey: state.Config.Server.ApiKey,
		Exempt: []string{"/health", "/metrics"},
	}))

	if state.Config.Server.MetricsEnabled {
		app.Get("/metrics", adaptor.HTTPHandler(
			promhttp.HandlerFor(state.registry, promhttp.HandlerOpts{}),
		))
	}

	mgr := loader.NewManager()
	mgr.Register(proxy.NewFeature(state.BackendURL, state.Logger, state.Metrics))
	if err := mgr.LoadAll(app); err != nil {
		state.Logger.Error("Failed to load features", zap.Error(err))
	}

	return app
}

// requestLogger logs every request with its RayID.
func requestLogger(logg *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		l := logger.WithRayID(logg, c)
		l.Info("Request started",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("ip", c.IP()),
		)
		err := c.Next()
		if err != nil {
			l.Error("Request error", zap.Error(err))
		}
		return err
	}
}
