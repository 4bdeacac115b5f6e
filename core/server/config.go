package server

import "fmt"

// Config holds configuration for the public HTTP server.
type Config struct {
	// Host is the address where the public router will listen.
	Host string `mapstructure:"host" default:"127.0.0.1"`
	// Port is the port where the public router will listen.
	Port int `mapstructure:"port" default:"4568"`
	// ApiKey is an optional secret required to access the API routes.
	// When empty, authentication is disabled.
	ApiKey string `mapstructure:"api_key" default:""`
	// MetricsEnabled exposes Prometheus metrics on /metrics.
	MetricsEnabled bool `mapstructure:"metrics_enabled" default:"true"`
}

// Addr returns the host:port pair the public router listens on.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
