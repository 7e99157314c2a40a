// Package metrics exposes Prometheus instruments for exploration sessions.
//
// Metrics:
//   - canyonwalk_steps_total{map,outcome} counter (accepted, rejected)
//   - canyonwalk_world_build_seconds{map} histogram
//   - canyonwalk_world_blocked_tiles{map} gauge
//   - canyonwalk_sessions_active gauge
//   - canyonwalk_runs_completed_total{map} counter
//   - canyonwalk_ssh_connections_total counter
package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "canyonwalk"

// Metrics holds the registered instruments. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	gatherer prometheus.Gatherer

	steps          *prometheus.CounterVec
	worldBuild     *prometheus.HistogramVec
	blockedTiles   *prometheus.GaugeVec
	sessionsActive prometheus.Gauge
	runsCompleted  *prometheus.CounterVec
	sshConnections prometheus.Counter
}

// New creates the instruments and registers them with reg.
func New(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		gatherer: reg,
		steps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "steps_total",
			Help:      "Step attempts by outcome.",
		}, []string{"map", "outcome"}),
		worldBuild: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "world_build_seconds",
			Help:      "Time to rasterize a world's collision mask.",
			Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		}, []string{"map"}),
		blockedTiles: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "world_blocked_tiles",
			Help:      "Blocked tiles in the most recently built mask.",
		}, []string{"map"}),
		sessionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions_active",
			Help:      "Sessions currently running.",
		}),
		runsCompleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_completed_total",
			Help:      "Runs that reached the goal tile.",
		}, []string{"map"}),
		sshConnections: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ssh_connections_total",
			Help:      "Accepted SSH sessions.",
		}),
	}

	reg.MustRegister(m.steps, m.worldBuild, m.blockedTiles, m.sessionsActive, m.runsCompleted, m.sshConnections)
	return m
}

var (
	defaultOnce sync.Once
	defaultM    *Metrics
)

// Default returns the process-wide instruments, created on first use in a
// registry that also carries the Go runtime and process collectors.
func Default() *Metrics {
	defaultOnce.Do(func() {
		reg := prometheus.NewRegistry()
		reg.MustRegister(prometheus.NewGoCollector(), prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))
		defaultM = New(reg)
	})
	return defaultM
}

// Step records one step attempt.
func (m *Metrics) Step(mapID string, accepted bool) {
	if m == nil {
		return
	}
	outcome := "rejected"
	if accepted {
		outcome = "accepted"
	}
	m.steps.WithLabelValues(mapID, outcome).Inc()
}

// WorldBuilt records a mask build.
func (m *Metrics) WorldBuilt(mapID string, d time.Duration, blocked int) {
	if m == nil {
		return
	}
	m.worldBuild.WithLabelValues(mapID).Observe(d.Seconds())
	m.blockedTiles.WithLabelValues(mapID).Set(float64(blocked))
}

// SessionStarted increments the active session gauge.
func (m *Metrics) SessionStarted() {
	if m == nil {
		return
	}
	m.sessionsActive.Inc()
}

// SessionEnded decrements the active session gauge.
func (m *Metrics) SessionEnded() {
	if m == nil {
		return
	}
	m.sessionsActive.Dec()
}

// RunCompleted counts a run that reached its goal.
func (m *Metrics) RunCompleted(mapID string) {
	if m == nil {
		return
	}
	m.runsCompleted.WithLabelValues(mapID).Inc()
}

// SSHConnection counts an accepted SSH session.
func (m *Metrics) SSHConnection() {
	if m == nil {
		return
	}
	m.sshConnections.Inc()
}

// Handler serves the registered metrics in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
