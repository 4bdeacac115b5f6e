// Package metrics defines the Prometheus instrumentation for the gateway.
//
// The gateway itself holds no state, so the metrics are purely about the
// forwarding layer: how many requests were proxied, how many failed to
// reach the backend, and how many websocket sessions are being bridged.
// The collectors are registered on an explicit registerer so tests can use
// a private registry.
package metrics
