// Package metrics provides Prometheus metrics for medal pool scoring runs.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Run results recorded by RecordRun.
const (
	RunUpdated   = "updated"
	RunUnchanged = "unchanged"
	RunFailed    = "failed"
)

// Award kinds recorded by RecordPoints.
const (
	AwardExact   = "exact"
	AwardNear    = "near"
	AwardPerfect = "perfect"
)

// Manager owns the scoring metrics and the registry they live on.
type Manager struct {
	namespace    string
	subsystem    string
	pointBuckets []float64
	registry     *prometheus.Registry

	runs            *prometheus.CounterVec
	eventsScored    prometheus.Counter
	eventsSkipped   *prometheus.CounterVec
	pointsAwarded   *prometheus.CounterVec
	eventPoints     prometheus.Histogram
	scoringErrors   prometheus.Counter
	lastRunUnix     prometheus.Gauge
	lastRunDuration prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:    "medalpool",
		subsystem:    "scoring",
		pointBuckets: []float64{0, 2, 4, 6, 8, 10, 12, 16, 20},
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.runs = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "runs_total",
		Help:      "Scoring runs by result (updated, unchanged, failed)",
	}, []string{"result"})

	m.eventsScored = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "events_scored_total",
		Help:      "Events that received a score",
	})

	m.eventsSkipped = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "events_skipped_total",
		Help:      "Events left unscored, by reason",
	}, []string{"reason"})

	m.pointsAwarded = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "points_awarded_total",
		Help:      "Points awarded, by kind of award",
	}, []string{"kind"})

	m.eventPoints = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "event_points",
		Help:      "Distribution of per-event scores",
		Buckets:   m.pointBuckets,
	})

	m.scoringErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "errors_total",
		Help:      "Runs aborted by a scoring or table error",
	})

	m.lastRunUnix = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "last_run_timestamp_seconds",
		Help:      "Unix time the last run finished",
	})

	m.lastRunDuration = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "last_run_duration_seconds",
		Help:      "Wall time of the last run",
	})
}

// RecordRun counts a finished run and stamps its end time and duration.
func (m *Manager) RecordRun(result string, finished time.Time, took time.Duration) {
	m.runs.WithLabelValues(result).Inc()
	m.lastRunUnix.Set(float64(finished.Unix()))
	m.lastRunDuration.Set(took.Seconds())
}

// RecordEventScored counts one scored event and observes its points.
func (m *Manager) RecordEventScored(points int) {
	m.eventsScored.Inc()
	m.eventPoints.Observe(float64(points))
}

// RecordPoints adds points awarded for one kind of award.
func (m *Manager) RecordPoints(kind string, points int) {
	if points > 0 {
		m.pointsAwarded.WithLabelValues(kind).Add(float64(points))
	}
}

// RecordEventSkipped counts an event left unscored.
func (m *Manager) RecordEventSkipped(reason string) {
	m.eventsSkipped.WithLabelValues(reason).Inc()
}

// RecordScoringError counts a run aborted by an error.
func (m *Manager) RecordScoringError() {
	m.scoringErrors.Inc()
}

// Registry returns the registry the manager's metrics are registered on.
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes the current metrics in the text exposition format,
// for collection by node_exporter's textfile collector.
func (m *Manager) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("%w: %w", ErrExportFailed, err)
	}
	return nil
}

// Default returns the global manager, registered on a custom registry that
// carries no Go runtime collectors.
func Default() *Manager { return globalManager }
