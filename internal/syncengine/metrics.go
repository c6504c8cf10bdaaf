package syncengine

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the engine's prometheus collectors.
type Metrics struct {
	Operations *prometheus.CounterVec
	Writes     *prometheus.CounterVec
	Pushes     *prometheus.CounterVec
	Downgrades prometheus.Counter
	Mode       *prometheus.GaugeVec
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered, which is what tests want.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "seatsync",
			Name:      "operations_total",
			Help:      "Seating operations applied to the in-memory snapshot.",
		}, []string{"operation"}),
		Writes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "seatsync",
			Name:      "writes_total",
			Help:      "Snapshot writes by backend and result.",
		}, []string{"backend", "result"}),
		Pushes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "seatsync",
			Name:      "remote_pushes_total",
			Help:      "Updates received from the remote subscription.",
		}, []string{"exists"}),
		Downgrades: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "seatsync",
			Name:      "downgrades_total",
			Help:      "Times the remote subscription failed and the session fell back to local mode.",
		}),
		Mode: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "seatsync",
			Name:      "sync_mode",
			Help:      "1 for the active sync mode, 0 otherwise.",
		}, []string{"mode"}),
	}
	if reg != nil {
		reg.MustRegister(m.Operations, m.Writes, m.Pushes, m.Downgrades, m.Mode)
	}
	return m
}

func (m *Metrics) setMode(mode Mode) {
	for _, candidate := range []Mode{ModeLocal, ModeRemote} {
		v := 0.0
		if candidate == mode {
			v = 1
		}
		m.Mode.WithLabelValues(candidate.String()).Set(v)
	}
}
