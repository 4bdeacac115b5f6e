package proxy

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

// routes is the public surface forwarded to the backend. Everything else
// 404s at the gateway.
var routes = []string{
	"/health",
	"/extension/icon/:apk_name",
	"/api/v1",
	"/api/v1/*",
	"/docs",
	"/docs/*",
	"/openapi.json",
}

// Handler handles HTTP requests for the proxy feature.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the forwarded routes, any method.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	for _, route := range routes {
		app.All(route, h.HandleForward)
	}
}

// HandleForward proxies the request to the backend, bridging instead of
// forwarding when the client asks for a websocket upgrade.
func (h *Handler) HandleForward(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		protocols := offeredProtocols(c)
		c.Locals(localsTarget, backendWSURL(h.service.BackendURL())+c.OriginalURL())
		c.Locals(localsHeader, handshakeHeaders(c))
		c.Locals(localsProtocols, protocols)
		// The upgrade echoes whatever the client offered, the same list
		// the backend dial carries.
		return websocket.New(h.service.Bridge, websocket.Config{
			Subprotocols: protocols,
		})(c)
	}
	return h.service.Forward(c)
}
