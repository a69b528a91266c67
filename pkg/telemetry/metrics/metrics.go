// Package metrics exposes Prometheus metrics for turn processing.
//
// All metrics live under the "relay" namespace and are registered on a
// dedicated registry, so tests can create isolated instances.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Namespace is the Prometheus namespace for all relay metrics.
const Namespace = "relay"

// Collector tracks turn-level metrics.
//
// Metrics:
//   - relay_turns_total: turn count by provider and outcome
//   - relay_turn_duration_seconds: provider round-trip histogram
//   - relay_turn_errors_total: failed turns by provider and error kind
//   - relay_sessions_active: live session gauge
//   - relay_reply_chunks_total: outbound message chunks sent
type Collector struct {
	registry *prometheus.Registry

	turnsTotal   *prometheus.CounterVec
	turnDuration *prometheus.HistogramVec
	errorsTotal  *prometheus.CounterVec
	sessions     prometheus.Gauge
	chunksTotal  prometheus.Counter
}

// NewCollector creates and registers the turn metrics. A nil registry
// gets a fresh one.
func NewCollector(registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	c := &Collector{
		registry: registry,

		turnsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "turns_total",
				Help:      "Total number of turns processed",
			},
			[]string{"provider", "outcome"},
		),

		turnDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "turn_duration_seconds",
				Help:      "Provider round-trip duration in seconds",
				Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
			[]string{"provider"},
		),

		errorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "turn_errors_total",
				Help:      "Total number of failed turns by error kind",
			},
			[]string{"provider", "kind"},
		),

		sessions: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: Namespace,
				Name:      "sessions_active",
				Help:      "Number of live sessions",
			},
		),

		chunksTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "reply_chunks_total",
				Help:      "Total number of outbound message chunks sent",
			},
		),
	}

	registry.MustRegister(
		c.turnsTotal,
		c.turnDuration,
		c.errorsTotal,
		c.sessions,
		c.chunksTotal,
	)

	return c
}

// RecordTurn records one completed turn.
func (c *Collector) RecordTurn(provider, outcome string, duration time.Duration) {
	c.turnsTotal.WithLabelValues(provider, outcome).Inc()
	c.turnDuration.WithLabelValues(provider).Observe(duration.Seconds())
}

// RecordError records a failed turn by error kind.
func (c *Collector) RecordError(provider, kind string) {
	c.errorsTotal.WithLabelValues(provider, kind).Inc()
}

// SetActiveSessions updates the live session gauge.
func (c *Collector) SetActiveSessions(n int) {
	c.sessions.Set(float64(n))
}

// AddChunks counts outbound message chunks.
func (c *Collector) AddChunks(n int) {
	c.chunksTotal.Add(float64(n))
}

// Registry returns the underlying Prometheus registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
