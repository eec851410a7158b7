package httpapi

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the server's Prometheus collectors on a private registry so
// multiple servers (or tests) never collide on registration.
type Metrics struct {
	registry *prometheus.Registry

	loadsTotal    *prometheus.CounterVec
	resolvesTotal *prometheus.CounterVec
}

// NewMetrics creates the collector set.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		loadsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "arbor",
			Name:      "tree_loads_total",
			Help:      "Tree load attempts by outcome.",
		}, []string{"outcome"}),
		resolvesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "arbor",
			Name:      "resolves_total",
			Help:      "Next-node resolutions by node type and outcome.",
		}, []string{"node_type", "outcome"}),
	}
}

func (m *Metrics) observeLoad(err error) {
	outcome := "ok"
	if err != nil {
		outcome = "rejected"
	}
	m.loadsTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) observeResolve(nodeType, outcome string) {
	m.resolvesTotal.WithLabelValues(nodeType, outcome).Inc()
}
