// Package metrics exposes the show engine's counters to Prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var defaultBuckets = []float64{1, 5, 10, 20, 30, 60, 120}

// Manager owns the engine's metrics. A nil *Manager is valid and records nothing.
type Manager struct {
	namespace        string
	histogramBuckets []float64
	registry         *prometheus.Registry

	triggersAccepted prometheus.Counter
	triggersDropped  prometheus.Counter
	showsCompleted   *prometheus.CounterVec
	showsFailed      *prometheus.CounterVec
	showDuration     *prometheus.HistogramVec
	cooldown         prometheus.Gauge
}

// NewManager creates a metrics manager on its own registry unless one is given.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "pifish",
		histogramBuckets: defaultBuckets,
		registry:         prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.triggersAccepted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "triggers_accepted_total",
		Help:      "Triggers that started a show",
	})
	m.triggersDropped = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "triggers_dropped_total",
		Help:      "Triggers dropped because a show or cooldown was in progress",
	})
	m.showsCompleted = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "shows_completed_total",
		Help:      "Shows that played to the end",
	}, []string{"show"})
	m.showsFailed = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "shows_failed_total",
		Help:      "Shows aborted by an error",
	}, []string{"show"})
	m.showDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "show_duration_seconds",
		Help:      "Wall clock time taken to play a show",
		Buckets:   m.histogramBuckets,
	}, []string{"show"})
	m.cooldown = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "cooldown_seconds",
		Help:      "Current cooldown after a show",
	})
}

// TriggerAccepted counts a trigger that started a show.
func (m *Manager) TriggerAccepted() {
	if m == nil {
		return
	}
	m.triggersAccepted.Inc()
}

// TriggerDropped counts a trigger that was ignored.
func (m *Manager) TriggerDropped() {
	if m == nil {
		return
	}
	m.triggersDropped.Inc()
}

// ShowCompleted records a show that played to the end.
func (m *Manager) ShowCompleted(name string, d time.Duration) {
	if m == nil {
		return
	}
	m.showsCompleted.WithLabelValues(name).Inc()
	m.showDuration.WithLabelValues(name).Observe(d.Seconds())
}

// ShowFailed records a show aborted by an error.
func (m *Manager) ShowFailed(name string) {
	if m == nil {
		return
	}
	m.showsFailed.WithLabelValues(name).Inc()
}

// SetCooldown records the current cooldown.
func (m *Manager) SetCooldown(seconds float64) {
	if m == nil {
		return
	}
	m.cooldown.Set(seconds)
}

// Handler serves the manager's registry in the Prometheus exposition format.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
