package style

import (
	"github.com/joshuapare/stylekit/internal/logger"
	"github.com/joshuapare/stylekit/pkg/grid"
	"github.com/joshuapare/stylekit/style/compose"
	"github.com/joshuapare/stylekit/style/gc"
	"github.com/joshuapare/stylekit/style/rangeindex"
)

// gcTarget exposes the index to the collector without widening the
// Storage API.
type gcTarget struct{ s *Storage }

func (t gcTarget) Intersecting(r grid.Rect) []rangeindex.Entry { return t.s.index.Intersecting(r) }

func (t gcTarget) Bottom() (rangeindex.Entry, bool) { return t.s.index.Bottom() }

func (t gcTarget) Exists(e rangeindex.Entry) bool { return t.s.index.Exists(e) }

func (t gcTarget) Manager() compose.StyleManager { return t.s.mgr }

func (t gcTarget) Delete(e rangeindex.Entry) bool {
	if !t.s.index.Delete(e) {
		return false
	}
	t.s.cache.Invalidate(e.Rect)
	return true
}

func (s *Storage) collected(rule gc.Rule, e rangeindex.Entry) {
	logger.Debug("gc deleted entry", "rule", rule.String(), "rect", e.Rect.String(), "value", e.Value.String(), "z", e.Z)
	s.metrics.GCDeleted(rule.String())
}

// SetLoading installs the document's "is loading" predicate. Garbage
// collection is suspended while it reports true.
func (s *Storage) SetLoading(fn func() bool) { s.gc.SetLoading(fn) }

// RunGCStep processes one garbage collector candidate, ignoring the
// throttle, and reports whether there was one.
func (s *Storage) RunGCStep() bool {
	if !s.gc.Step() {
		return false
	}
	s.metrics.GCStep()
	s.publishSize()
	return true
}

// Tick is the idle hook: it runs one throttled garbage collector step.
func (s *Storage) Tick() bool {
	if !s.gc.Tick() {
		return false
	}
	s.metrics.GCStep()
	s.publishSize()
	return true
}

// CollectGarbage runs the collector until its queue is empty and returns
// the number of candidates processed.
func (s *Storage) CollectGarbage() int {
	n := 0
	for s.RunGCStep() {
		n++
	}
	return n
}

// GCState returns the collector's scheduling state.
func (s *Storage) GCState() gc.State { return s.gc.State() }
