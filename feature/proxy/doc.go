// Package proxy forwards public traffic to the embedded backend.
//
// The gateway exposes a fixed route set and relays every matching request
// to the loopback backend address, path and query untouched. The backend
// owns the API: routing beyond the listed prefixes, response bodies, and
// the documentation under /docs and /openapi.json all come from it.
//
// # Forwarded Routes
//
//   - /health
//   - /extension/icon/:apk_name
//   - /api/v1 and /api/v1/*
//   - /docs, /docs/* and /openapi.json
//
// Any HTTP method is accepted. A request the backend cannot be reached for
// answers 502 Bad Gateway with an empty body.
//
// # Websocket Bridging
//
// Requests carrying a websocket upgrade are bridged rather than proxied:
// the gateway upgrades the client side, dials the backend at the same path
// with the ws/wss scheme, forwards the Cookie, Authorization, User-Agent
// and Origin headers plus the offered subprotocols, then pumps frames in
// both directions until either side closes.
package proxy
