// Package metric provides Prometheus metrics for KeyMesh.
//
// It exposes metrics in Prometheus format for monitoring connection
// counts, command rates, latencies, and keyspace size.
package metric

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds all application metrics.
type Registry struct {
	reg *prometheus.Registry

	// Connection metrics.
	ConnectionsActive prometheus.Gauge
	ConnectionsTotal  prometheus.Counter
	RateLimited       prometheus.Counter

	// Command metrics.
	CommandsTotal   *prometheus.CounterVec
	CommandDuration *prometheus.HistogramVec
	AsksTimedOut    prometheus.Counter

	// Keyspace metrics.
	NodesLive prometheus.GaugeFunc
}

// NewRegistry creates the metrics registry. nodeCount supplies the
// current number of live key nodes for the keymesh_nodes_live gauge;
// nil disables that gauge.
func NewRegistry(nodeCount func() int) *Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	factory := promauto.With(reg)

	r := &Registry{
		reg: reg,
		ConnectionsActive: factory.NewGauge(prometheus.GaugeOpts{
			Name: "keymesh_connections_active",
			Help: "Number of currently open client connections.",
		}),
		ConnectionsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "keymesh_connections_total",
			Help: "Total number of accepted client connections.",
		}),
		RateLimited: factory.NewCounter(prometheus.CounterOpts{
			Name: "keymesh_rate_limited_total",
			Help: "Total number of commands rejected by the rate limiter.",
		}),
		CommandsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "keymesh_commands_total",
			Help: "Total number of commands executed, by command name.",
		}, []string{"command"}),
		CommandDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "keymesh_command_duration_seconds",
			Help:    "Command execution latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"command"}),
		AsksTimedOut: factory.NewCounter(prometheus.CounterOpts{
			Name: "keymesh_asks_timed_out_total",
			Help: "Total number of session asks that exhausted the ask budget.",
		}),
	}

	if nodeCount != nil {
		r.NodesLive = factory.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "keymesh_nodes_live",
			Help: "Number of live key nodes, the directory included.",
		}, func() float64 {
			return float64(nodeCount())
		})
	}

	return r
}

// Handler returns the HTTP handler for the /metrics endpoint.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}
