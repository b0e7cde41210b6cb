// Package metrics exposes prometheus instruments for a Storage.
//
// A nil *Collector is valid and records nothing, so the storage calls it
// unconditionally.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "stylekit"
	subsystem = "storage"
)

// Collector groups the storage instruments.
type Collector struct {
	Lookups     *prometheus.CounterVec
	GCSteps     prometheus.Counter
	GCDeletions *prometheus.CounterVec
	Edits       *prometheus.CounterVec
	Truncated   prometheus.Counter
	Entries     prometheus.Gauge
	SubStyles   prometheus.Gauge
}

// New creates the instruments and registers them on reg. A nil reg creates
// unregistered instruments.
func New(reg prometheus.Registerer) *Collector {
	f := promauto.With(reg)
	return &Collector{
		Lookups: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "lookups_total",
			Help:      "Point style lookups by how they were answered",
		}, []string{"result"}),
		GCSteps: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "gc_steps_total",
			Help:      "Garbage collector candidates processed",
		}),
		GCDeletions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "gc_deletions_total",
			Help:      "Entries deleted by the garbage collector by rule",
		}, []string{"rule"}),
		Edits: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "structural_edits_total",
			Help:      "Structural edits by operation",
		}, []string{"op"}),
		Truncated: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "truncated_pairs_total",
			Help:      "Style pairs discarded by structural edits",
		}),
		Entries: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "entries",
			Help:      "Entries in the range index",
		}),
		SubStyles: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "live_substyles",
			Help:      "Distinct substyle values referenced by the index",
		}),
	}
}

// Lookup records how a point lookup was answered.
func (c *Collector) Lookup(result string) {
	if c == nil {
		return
	}
	c.Lookups.WithLabelValues(result).Inc()
}

// GCStep records one processed candidate.
func (c *Collector) GCStep() {
	if c == nil {
		return
	}
	c.GCSteps.Inc()
}

// GCDeleted records a deletion under rule.
func (c *Collector) GCDeleted(rule string) {
	if c == nil {
		return
	}
	c.GCDeletions.WithLabelValues(rule).Inc()
}

// Edit records a structural edit and the number of pairs it discarded.
func (c *Collector) Edit(op string, truncated int) {
	if c == nil {
		return
	}
	c.Edits.WithLabelValues(op).Inc()
	c.Truncated.Add(float64(truncated))
}

// SetSize publishes the index size.
func (c *Collector) SetSize(entries, substyles int) {
	if c == nil {
		return
	}
	c.Entries.Set(float64(entries))
	c.SubStyles.Set(float64(substyles))
}
