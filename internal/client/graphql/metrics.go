package graphql

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const outcomeSuccess = "success"

// Metrics counts gateway calls by operation and outcome and records their
// latency. A nil *Metrics records nothing.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them on reg when reg is
// not nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cinema_client",
			Subsystem: "graphql",
			Name:      "requests_total",
			Help:      "GraphQL operations sent to the gateway, by outcome.",
		}, []string{"operation", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "cinema_client",
			Subsystem: "graphql",
			Name:      "request_duration_seconds",
			Help:      "Round-trip time of GraphQL operations.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
	}
	if reg != nil {
		reg.MustRegister(m.requests, m.duration)
	}
	return m
}

func (m *Metrics) observe(operation string, kind Kind, elapsed time.Duration) {
	if m == nil {
		return
	}
	outcome := outcomeSuccess
	if kind != "" {
		outcome = string(kind)
	}
	m.requests.WithLabelValues(operation, outcome).Inc()
	m.duration.WithLabelValues(operation).Observe(elapsed.Seconds())
}
