// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "biblioteca"

// Rejection kinds recorded by the mutation coordinator.
const (
	RejectDenied    = "denied"
	RejectInvalid   = "invalid"
	RejectDuplicate = "duplicate"
	RejectNotFound  = "not_found"
)

// Metrics groups the collectors of one server instance. Each instance owns
// its registry so tests can build as many as they like.
type Metrics struct {
	registry *prometheus.Registry

	RPCRequests *prometheus.CounterVec
	RPCDuration *prometheus.HistogramVec
	Mutations   *prometheus.CounterVec
	Rejections  *prometheus.CounterVec
}

// New creates and registers the collectors, including the Go runtime and
// process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		RPCRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rpc_requests_total",
			Help:      "RPC calls handled, by procedure and result code.",
		}, []string{"procedure", "code"}),
		RPCDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_duration_seconds",
			Help:      "RPC latency by procedure.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure"}),
		Mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mutations_total",
			Help:      "Committed writes by entity and action.",
		}, []string{"entity", "action"}),
		Rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rejections_total",
			Help:      "Mutations refused before commit, by entity and kind.",
		}, []string{"entity", "kind"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.RPCRequests,
		m.RPCDuration,
		m.Mutations,
		m.Rejections,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Committed counts a successful write.
func (m *Metrics) Committed(entity, action string) {
	if m == nil {
		return
	}
	m.Mutations.WithLabelValues(entity, action).Inc()
}

// Rejected counts a mutation refused before commit.
func (m *Metrics) Rejected(entity, kind string) {
	if m == nil {
		return
	}
	m.Rejections.WithLabelValues(entity, kind).Inc()
}

// ObserveRPC records one finished RPC. Safe on a nil receiver.
func (m *Metrics) ObserveRPC(procedure, code string, d time.Duration) {
	if m == nil {
		return
	}
	m.RPCRequests.WithLabelValues(procedure, code).Inc()
	m.RPCDuration.WithLabelValues(procedure).Observe(d.Seconds())
}
