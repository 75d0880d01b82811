package lookup

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts lookup activity.
type Metrics struct {
	queries *prometheus.CounterVec
	cache   *prometheus.CounterVec
}

// NewMetrics creates the lookup counters on reg. A nil registerer leaves
// them unregistered, which is what tests want.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		queries: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "broad_babel",
			Subsystem: "lookup",
			Name:      "queries_total",
			Help:      "Lookup calls by result.",
		}, []string{"result"}),
		cache: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "broad_babel",
			Subsystem: "lookup",
			Name:      "cache_total",
			Help:      "Lookup cache hits and misses.",
		}, []string{"outcome"}),
	}
}

func (m *Metrics) observe(hit bool, err error) {
	if m == nil {
		return
	}
	switch {
	case err != nil:
		m.queries.WithLabelValues("error").Inc()
		return
	case hit:
		m.cache.WithLabelValues("hit").Inc()
	default:
		m.cache.WithLabelValues("miss").Inc()
	}
	m.queries.WithLabelValues("ok").Inc()
}
