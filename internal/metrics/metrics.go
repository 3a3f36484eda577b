// Package metrics exposes Prometheus counters for the annotation engine.
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "markyfy"

// Save failure kinds.
const (
	FailureQuota = "quota"
	FailureOther = "error"
)

// Metrics groups the engine collectors.
type Metrics struct {
	Strokes       prometheus.Counter
	Segments      prometheus.Counter
	TextCommits   *prometheus.CounterVec
	Saves         prometheus.Counter
	SaveFailures  *prometheus.CounterVec
	SnapshotBytes prometheus.Gauge
	Loads         *prometheus.CounterVec
	Clears        prometheus.Counter
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Strokes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "strokes_total",
			Help:      "Completed freehand strokes.",
		}),
		Segments: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "segments_total",
			Help:      "Stroke segments rendered onto the surface.",
		}),
		TextCommits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "text_commits_total",
			Help:      "Closed text fields by outcome.",
		}, []string{"outcome"}),
		Saves: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "saves_total",
			Help:      "Successful snapshot saves.",
		}),
		SaveFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "save_failures_total",
			Help:      "Failed snapshot saves by kind.",
		}, []string{"kind"}),
		SnapshotBytes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "snapshot_bytes",
			Help:      "Encoded size of the last saved snapshot.",
		}),
		Loads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "loads_total",
			Help:      "Snapshot loads by result.",
		}, []string{"result"}),
		Clears: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "clears_total",
			Help:      "Clear-all operations.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.Strokes, m.Segments, m.TextCommits, m.Saves,
			m.SaveFailures, m.SnapshotBytes, m.Loads, m.Clears)
	}
	return m
}

// NewRegistry returns metrics registered on a fresh registry.
func NewRegistry() (*Metrics, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return New(reg), reg
}

func (m *Metrics) StrokeDone() {
	if m != nil {
		m.Strokes.Inc()
	}
}

func (m *Metrics) SegmentDrawn() {
	if m != nil {
		m.Segments.Inc()
	}
}

// TextCommitted counts a closed field. rendered is false for an empty blur.
func (m *Metrics) TextCommitted(rendered bool) {
	if m == nil {
		return
	}
	outcome := "rendered"
	if !rendered {
		outcome = "discarded"
	}
	m.TextCommits.WithLabelValues(outcome).Inc()
}

func (m *Metrics) Saved(n int) {
	if m != nil {
		m.Saves.Inc()
		m.SnapshotBytes.Set(float64(n))
	}
}

func (m *Metrics) SaveFailed(kind string) {
	if m != nil {
		m.SaveFailures.WithLabelValues(kind).Inc()
	}
}

// Loaded counts a finished load; result is "ok", "empty", "invalid" or
// "cancelled".
func (m *Metrics) Loaded(result string) {
	if m != nil {
		m.Loads.WithLabelValues(result).Inc()
	}
}

func (m *Metrics) Cleared() {
	if m != nil {
		m.Clears.Inc()
	}
}
