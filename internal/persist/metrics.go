package persist

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts failed loads and saves. A nil *Metrics records nothing.
type Metrics struct {
	failures *prometheus.CounterVec
}

// NewMetrics creates the persistence metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "peoplehub",
			Name:      "persist_failures_total",
			Help:      "Number of failed state loads and saves.",
		}, []string{"op"}),
	}
	reg.MustRegister(m.failures)
	return m
}

func (m *Metrics) countFailure(op string) {
	if m == nil {
		return
	}
	m.failures.WithLabelValues(op).Inc()
}
