package grid

import (
	"sort"
	"strings"
)

// Region is a set of pairwise disjoint rects. The zero value is the empty
// region. Methods never mutate the receiver's backing array in place; they
// return the updated region.
type Region []Rect

// NewRegion returns the union of rects as a disjoint region.
func NewRegion(rects ...Rect) Region {
	var g Region
	for _, r := range rects {
		g = g.Add(r)
	}
	return g
}

// IsEmpty reports whether the region covers no cell.
func (g Region) IsEmpty() bool {
	for _, r := range g {
		if !r.IsEmpty() {
			return false
		}
	}
	return true
}

// Add returns g ∪ r.
func (g Region) Add(r Rect) Region {
	if r.IsEmpty() {
		return g
	}
	pieces := []Rect{r}
	for _, e := range g {
		if !e.Intersects(r) {
			continue
		}
		next := pieces[:0:0]
		for _, p := range pieces {
			next = append(next, p.Subtract(e)...)
		}
		pieces = next
		if len(pieces) == 0 {
			return g
		}
	}
	out := make(Region, 0, len(g)+len(pieces))
	out = append(out, g...)
	out = append(out, pieces...)
	return out.coalesce()
}

// Subtract returns g minus r.
func (g Region) Subtract(r Rect) Region {
	if r.IsEmpty() || len(g) == 0 {
		return g
	}
	out := make(Region, 0, len(g))
	changed := false
	for _, e := range g {
		if !e.Intersects(r) {
			out = append(out, e)
			continue
		}
		changed = true
		out = append(out, e.Subtract(r)...)
	}
	if !changed {
		return g
	}
	return out.coalesce()
}

// Intersect returns g ∩ r.
func (g Region) Intersect(r Rect) Region {
	var out Region
	for _, e := range g {
		if x := e.Intersect(r); !x.IsEmpty() {
			out = append(out, x)
		}
	}
	return out
}

// Contains reports whether p lies in the region.
func (g Region) Contains(p Point) bool {
	for _, r := range g {
		if r.Contains(p) {
			return true
		}
	}
	return false
}

// Intersects reports whether the region shares a cell with r.
func (g Region) Intersects(r Rect) bool {
	for _, e := range g {
		if e.Intersects(r) {
			return true
		}
	}
	return false
}

// Bounds returns the bounding rect of the region (empty for an empty region).
func (g Region) Bounds() Rect {
	var b Rect
	for _, r := range g {
		b = b.Union(r)
	}
	return b
}

// Area is the number of cells covered.
func (g Region) Area() int64 {
	var n int64
	for _, r := range g {
		n += r.Area()
	}
	return n
}

// String lists the rects in A1 notation separated by commas.
func (g Region) String() string {
	parts := make([]string, 0, len(g))
	for _, r := range g {
		parts = append(parts, r.String())
	}
	return strings.Join(parts, ",")
}

// coalesce merges rects that share a full edge. It sorts and merges
// vertically stacked rects first, then side-by-side ones, which keeps the
// region small for the common "grow a block row by row" pattern.
func (g Region) coalesce() Region {
	if len(g) < 2 {
		return g
	}

	sort.Slice(g, func(i, j int) bool {
		a, b := g[i], g[j]
		if a.Left != b.Left {
			return a.Left < b.Left
		}
		if a.Right != b.Right {
			return a.Right < b.Right
		}
		return a.Top < b.Top
	})
	merged := g[:1]
	for _, next := range g[1:] {
		cur := &merged[len(merged)-1]
		if next.Left == cur.Left && next.Right == cur.Right && next.Top == cur.Bottom+1 {
			cur.Bottom = next.Bottom
			continue
		}
		merged = append(merged, next)
	}

	sort.Slice(merged, func(i, j int) bool {
		a, b := merged[i], merged[j]
		if a.Top != b.Top {
			return a.Top < b.Top
		}
		if a.Bottom != b.Bottom {
			return a.Bottom < b.Bottom
		}
		return a.Left < b.Left
	})
	out := merged[:1]
	for _, next := range merged[1:] {
		cur := &out[len(out)-1]
		if next.Top == cur.Top && next.Bottom == cur.Bottom && next.Left == cur.Right+1 {
			cur.Right = next.Right
			continue
		}
		out = append(out, next)
	}
	return out
}
