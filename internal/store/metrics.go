package store

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts dispatched actions and tracks the size of the people list. A nil *Metrics
// records nothing.
type Metrics struct {
	actions *prometheus.CounterVec
	people  prometheus.Gauge
}

// NewMetrics creates the store metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		actions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "peoplehub",
			Name:      "actions_dispatched_total",
			Help:      "Number of actions applied to the state, by action kind.",
		}, []string{"action"}),
		people: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "peoplehub",
			Name:      "people",
			Help:      "Number of people currently in the list.",
		}),
	}
	reg.MustRegister(m.actions, m.people)
	return m
}

func (m *Metrics) countAction(name string) {
	if m == nil {
		return
	}
	m.actions.WithLabelValues(name).Inc()
}

func (m *Metrics) observePeople(n int) {
	if m == nil {
		return
	}
	m.people.Set(float64(n))
}
