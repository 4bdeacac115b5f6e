package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the gateway.
type Metrics struct {
	RequestsTotal     prometheus.Counter
	RequestErrors     prometheus.Counter
	WebsocketSessions prometheus.Gauge
}

// New creates and registers all metrics on the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RequestsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "manatan_gateway_requests_total",
			Help: "Total number of requests forwarded to the backend",
		}),
		RequestErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "manatan_gateway_request_errors_total",
			Help: "Total number of requests that failed to reach the backend",
		}),
		WebsocketSessions: factory.NewGauge(prometheus.GaugeOpts{
			Name: "manatan_gateway_websocket_sessions",
			Help: "Number of websocket sessions currently bridged",
		}),
	}
}
