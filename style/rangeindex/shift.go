package rangeindex

import (
	"github.com/joshuapare/stylekit/pkg/grid"
)

// Shift rewrites the index for one structural edit and returns the pre-edit
// content the edit discards (the removed cells, or the cells pushed past the
// grid limit by an insertion), clipped to s.Lost() and in ascending z order.
//
// Entries outside s.Affected() are untouched. Every other entry is replaced
// by the pieces s.Apply maps it to; pieces keep the entry's z-index.
func (ix *Index) Shift(s grid.Shift) []Pair {
	affected := s.Affected()
	lost := s.Lost()

	victims := sorted(ix.intersecting(affected))
	if len(victims) == 0 {
		return nil
	}

	var dropped []Pair
	for _, v := range victims {
		if x := v.Rect.Intersect(lost); !x.IsEmpty() {
			dropped = append(dropped, Pair{Rect: x, Value: v.Value, Z: v.Z})
		}
		pieces := s.Apply(v.Rect)
		if len(pieces) == 1 && pieces[0] == v.Rect {
			continue
		}
		p, _ := ix.lookup(v)
		// Pieces are attached before the old entry is detached; the value's
		// refcount stays positive throughout.
		for _, r := range pieces {
			ix.newEntry(r, v.Value, v.Z)
		}
		ix.detach(p)
	}
	return dropped
}
