// Package gateway assembles the public surface of the Manatan gateway.
//
// The visible part of this project is deliberately thin: the actual server
// lives in a closed-source backend artifact. This package builds the state
// that owns the running backend and the router in front of it.
//
// # Public Surface
//
//   - BuildState: resolves the backend address (MANATAN_BACKEND_HOST,
//     MANATAN_BACKEND_PORT, default public port + 1 on loopback), launches
//     the embedded backend and returns the shared State.
//   - BuildRouter / BuildRouterWithoutCORS: build the forwarding router,
//     with or without a permissive CORS layer.
//   - config.Config: the configuration value consumed by BuildState.
//
// # Assembly
//
// The router stacks RayID tracing, request logging, optional API key auth
// and the Prometheus endpoint before loading the proxy feature through the
// feature loader. State.Close stops the embedded backend.
package gateway
