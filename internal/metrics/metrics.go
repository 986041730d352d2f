// Package metrics exposes Prometheus counters for the MIDI message path.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Collector implements contracts.MessageObserver.
type Collector struct {
	messages     *prometheus.CounterVec
	emitFailures prometheus.Counter
	held         prometheus.Gauge
}

// New creates a Collector and registers it with reg.
func New(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		messages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "chordie",
			Name:      "midi_messages_total",
			Help:      "Raw MIDI messages received, by classification.",
		}, []string{"kind"}),
		emitFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chordie",
			Name:      "snapshot_emit_failures_total",
			Help:      "Held-note snapshots the UI emitter failed to deliver.",
		}),
		held: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "chordie",
			Name:      "held_notes",
			Help:      "Number of keys currently held on the active connection.",
		}),
	}
	for _, col := range []prometheus.Collector{c.messages, c.emitFailures, c.held} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// ObserveMessage counts one message of the given kind and records the held count.
func (c *Collector) ObserveMessage(kind string, held int) {
	c.messages.WithLabelValues(kind).Inc()
	c.held.Set(float64(held))
}

// ObserveEmitFailure counts one snapshot that could not be delivered.
func (c *Collector) ObserveEmitFailure() {
	c.emitFailures.Inc()
}
