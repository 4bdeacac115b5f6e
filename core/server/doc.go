// Package server holds the public HTTP server configuration.
//
// While the main application entry point handles the server startup, this
// package defines the configuration structure for the listening address,
// the optional API key and the metrics endpoint toggle.
//
// # Usage
//
// This package is primarily used by the core/config package to embed server
// settings and by the gateway feature when building the public router.
package server
