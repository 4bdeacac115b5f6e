// Package middleware contains HTTP middleware for the Fiber application.
//
// It provides cross-cutting concerns that sit between the request and the
// proxy handlers.
//
// # Components
//
//   - Auth: Implements optional API key validation to protect the proxied
//     routes. Disabled when no key is configured; health and metrics stay
//     public so probes keep working.
//   - RayID: Generates a unique Request ID (RayID) for every incoming
//     request, injecting it into the context and response headers for
//     tracing a request through the gateway and into the backend.
//
// These middleware components are registered globally when the public
// router is built.
package middleware
