package usedarea

import (
	"github.com/google/btree"

	"github.com/joshuapare/stylekit/pkg/grid"
)

// IntervalSet is a set of integers stored as disjoint, non-adjacent inclusive
// spans. Overlapping and touching spans are merged on Add.
//
// NOT thread-safe.
type IntervalSet struct {
	tree *btree.BTreeG[grid.Span]
}

func spanLess(a, b grid.Span) bool { return a.Lo < b.Lo }

// NewIntervalSet creates an empty set.
func NewIntervalSet() *IntervalSet {
	return &IntervalSet{tree: btree.NewG(8, spanLess)}
}

// touching returns the stored spans overlapping [lo, hi], widened by slack
// on both sides.
func (s *IntervalSet) touching(lo, hi, slack int) []grid.Span {
	var out []grid.Span
	s.tree.DescendLessOrEqual(grid.Span{Lo: lo}, func(sp grid.Span) bool {
		if sp.Hi >= lo-slack {
			out = append(out, sp)
		}
		return false
	})
	s.tree.AscendRange(grid.Span{Lo: lo + 1}, grid.Span{Lo: hi + 1 + slack}, func(sp grid.Span) bool {
		out = append(out, sp)
		return true
	})
	return out
}

// Add inserts [lo, hi].
func (s *IntervalSet) Add(lo, hi int) {
	if lo > hi {
		return
	}
	for _, sp := range s.touching(lo, hi, 1) {
		s.tree.Delete(sp)
		lo = min(lo, sp.Lo)
		hi = max(hi, sp.Hi)
	}
	s.tree.ReplaceOrInsert(grid.Span{Lo: lo, Hi: hi})
}

// Remove deletes [lo, hi].
func (s *IntervalSet) Remove(lo, hi int) {
	if lo > hi {
		return
	}
	for _, sp := range s.touching(lo, hi, 0) {
		s.tree.Delete(sp)
		if sp.Lo < lo {
			s.tree.ReplaceOrInsert(grid.Span{Lo: sp.Lo, Hi: lo - 1})
		}
		if sp.Hi > hi {
			s.tree.ReplaceOrInsert(grid.Span{Lo: hi + 1, Hi: sp.Hi})
		}
	}
}

// Contains reports whether x is in the set.
func (s *IntervalSet) Contains(x int) bool {
	found := false
	s.tree.DescendLessOrEqual(grid.Span{Lo: x}, func(sp grid.Span) bool {
		found = sp.Hi >= x
		return false
	})
	return found
}

// Next returns the smallest member >= x.
func (s *IntervalSet) Next(x int) (int, bool) {
	if s.Contains(x) {
		return x, true
	}
	next, ok := 0, false
	s.tree.AscendGreaterOrEqual(grid.Span{Lo: x}, func(sp grid.Span) bool {
		next, ok = sp.Lo, true
		return false
	})
	return next, ok
}

// Spans returns the stored spans in ascending order.
func (s *IntervalSet) Spans() []grid.Span {
	out := make([]grid.Span, 0, s.tree.Len())
	s.tree.Ascend(func(sp grid.Span) bool {
		out = append(out, sp)
		return true
	})
	return out
}

// Len returns the number of stored spans.
func (s *IntervalSet) Len() int { return s.tree.Len() }

// Bounds returns the smallest span covering the set.
func (s *IntervalSet) Bounds() (grid.Span, bool) {
	lo, ok := s.tree.Min()
	if !ok {
		return grid.Span{}, false
	}
	hi, _ := s.tree.Max()
	return grid.Span{Lo: lo.Lo, Hi: hi.Hi}, true
}

// Shift maps every span through a structural edit along the set's axis.
func (s *IntervalSet) Shift(sh grid.Shift) {
	old := s.Spans()
	s.tree.Clear(false)
	for _, sp := range old {
		for _, m := range sh.MapSpan(sp.Lo, sp.Hi) {
			s.Add(m.Lo, m.Hi)
		}
	}
}

// Clear empties the set.
func (s *IntervalSet) Clear() { s.tree.Clear(false) }
