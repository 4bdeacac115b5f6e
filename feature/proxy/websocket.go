package proxy

import (
	"errors"
	"net/http"
	"strings"
	"time"

	fastws "github.com/fasthttp/websocket"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	gorillaws "github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Locals keys carrying the bridge parameters from the upgrade check into
// the websocket handler.
const (
	localsTarget    = "ws_target"
	localsHeader    = "ws_header"
	localsProtocols = "ws_protocols"
)

// forwardedHeaders are the request headers carried over to the backend
// websocket handshake.
var forwardedHeaders = []string{
	fiber.HeaderCookie,
	fiber.HeaderAuthorization,
	fiber.HeaderUserAgent,
	fiber.HeaderOrigin,
}

const (
	handshakeTimeout    = 10 * time.Second
	controlWriteTimeout = 5 * time.Second
)

// backendWSURL rewrites the backend base URL scheme for websocket dialing.
func backendWSURL(base string) string {
	switch {
	case strings.HasPrefix(base, "https://"):
		return "wss://" + strings.TrimPrefix(base, "https://")
	case strings.HasPrefix(base, "http://"):
		return "ws://" + strings.TrimPrefix(base, "http://")
	default:
		return "ws://" + base
	}
}

// handshakeHeaders selects the client headers forwarded on the backend dial.
func handshakeHeaders(c *fiber.Ctx) http.Header {
	h := http.Header{}
	for _, name := range forwardedHeaders {
		if value := c.Get(name); value != "" {
			h.Set(name, value)
		}
	}
	return h
}

// offeredProtocols parses the subprotocols offered by the client.
func offeredProtocols(c *fiber.Ctx) []string {
	raw := c.Get(fiber.HeaderSecWebSocketProtocol)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	protocols := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			protocols = append(protocols, p)
		}
	}
	return protocols
}

// Bridge connects an upgraded client socket to the backend at the same
// path and pumps frames in both directions until either side closes.
// Close frames and ping/pong travel end to end, so the client sees the
// backend's close code rather than an abnormal teardown.
func (s *Service) Bridge(client *websocket.Conn) {
	target, _ := client.Locals(localsTarget).(string)
	header, _ := client.Locals(localsHeader).(http.Header)
	protocols, _ := client.Locals(localsProtocols).([]string)

	dialer := gorillaws.Dialer{
		Subprotocols:     protocols,
		HandshakeTimeout: handshakeTimeout,
	}
	backendConn, _, err := dialer.Dial(target, header)
	if err != nil {
		s.logger.Error("Backend websocket connect failed",
			zap.String("target", target),
			zap.Error(err),
		)
		return
	}

	s.metrics.WebsocketSessions.Inc()
	defer s.metrics.WebsocketSessions.Dec()

	// Forward ping/pong across the bridge instead of auto-answering per hop.
	client.SetPingHandler(func(data string) error {
		return backendConn.WriteControl(gorillaws.PingMessage, []byte(data), controlDeadline())
	})
	client.SetPongHandler(func(data string) error {
		return backendConn.WriteControl(gorillaws.PongMessage, []byte(data), controlDeadline())
	})
	backendConn.SetPingHandler(func(data string) error {
		return client.WriteControl(fastws.PingMessage, []byte(data), controlDeadline())
	})
	backendConn.SetPongHandler(func(data string) error {
		return client.WriteControl(fastws.PongMessage, []byte(data), controlDeadline())
	})

	done := make(chan struct{}, 2)

	// client -> backend
	go func() {
		defer func() { done <- struct{}{} }()
		for {
			mt, msg, err := client.ReadMessage()
			if err != nil {
				_ = backendConn.WriteControl(gorillaws.CloseMessage, closePayload(err), controlDeadline())
				return
			}
			if err := backendConn.WriteMessage(mt, msg); err != nil {
				return
			}
		}
	}()

	// backend -> client
	go func() {
		defer func() { done <- struct{}{} }()
		for {
			mt, msg, err := backendConn.ReadMessage()
			if err != nil {
				_ = client.WriteControl(fastws.CloseMessage, closePayload(err), controlDeadline())
				return
			}
			if err := client.WriteMessage(mt, msg); err != nil {
				return
			}
		}
	}()

	// Either pump exiting ends the session: tear down the backend side
	// first, then the client, and wait for the other pump to unwind.
	<-done
	backendConn.Close()
	client.Close()
	<-done
}

func controlDeadline() time.Time {
	return time.Now().Add(controlWriteTimeout)
}

// closePayload converts a pump read error into the close frame forwarded
// to the peer, preserving code and reason when the source sent a close.
func closePayload(err error) []byte {
	var clientClose *fastws.CloseError
	if errors.As(err, &clientClose) {
		return gorillaws.FormatCloseMessage(clientClose.Code, clientClose.Text)
	}
	var backendClose *gorillaws.CloseError
	if errors.As(err, &backendClose) {
		return gorillaws.FormatCloseMessage(backendClose.Code, backendClose.Text)
	}
	return gorillaws.FormatCloseMessage(gorillaws.CloseAbnormalClosure, "")
}
