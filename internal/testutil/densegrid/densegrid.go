// Package densegrid is a brute-force reference model of a style storage for
// tests: every cell of a small grid holds its own substyle stack.
package densegrid

import (
	"slices"

	"github.com/joshuapare/stylekit/pkg/grid"
	"github.com/joshuapare/stylekit/pkg/types"
	"github.com/joshuapare/stylekit/style/compose"
	"github.com/joshuapare/stylekit/style/substyle"
)

// Grid stores one substyle stack per cell, oldest first.
type Grid struct {
	lim   types.Limits
	cells [][]substyle.SubStyle
}

// New creates an empty model. Keep the limits small: memory is
// MaxColumn*MaxRow stacks.
func New(lim types.Limits) *Grid {
	return &Grid{lim: lim, cells: make([][]substyle.SubStyle, lim.MaxColumn*lim.MaxRow)}
}

func (g *Grid) at(p grid.Point) int { return (p.Row-1)*g.lim.MaxColumn + (p.Column - 1) }

// Points calls fn for every cell in row-major order.
func (g *Grid) Points(fn func(p grid.Point)) {
	for row := 1; row <= g.lim.MaxRow; row++ {
		for col := 1; col <= g.lim.MaxColumn; col++ {
			fn(grid.Pt(col, row))
		}
	}
}

// Insert pushes sub onto every cell of r inside the grid.
func (g *Grid) Insert(r grid.Rect, sub substyle.SubStyle) {
	r = r.Intersect(grid.Whole(g.lim))
	for row := r.Top; row <= r.Bottom && !r.IsEmpty(); row++ {
		for col := r.Left; col <= r.Right; col++ {
			i := g.at(grid.Pt(col, row))
			g.cells[i] = append(g.cells[i], sub)
		}
	}
}

// Stack returns a copy of the substyles covering p, oldest first.
func (g *Grid) Stack(p grid.Point) []substyle.SubStyle {
	return slices.Clone(g.cells[g.at(p)])
}

// StyleAt composes the stack at p.
func (g *Grid) StyleAt(c *compose.Composer, p grid.Point) compose.Style {
	return c.Compose(g.cells[g.at(p)])
}

// Shift applies a structural edit cell by cell. Each post-edit cell pulls
// its stack from the pre-edit cell it came from.
func (g *Grid) Shift(sh grid.Shift) {
	next := make([][]substyle.SubStyle, len(g.cells))
	g.Points(func(p grid.Point) {
		if src, ok := source(sh, p); ok {
			next[g.at(p)] = slices.Clone(g.cells[g.at(src)])
		}
	})
	g.cells = next
}

// source returns the pre-edit cell whose content lands on p, or false when p
// is left empty by the edit.
func source(sh grid.Shift, p grid.Point) (grid.Point, bool) {
	a, c, limit := p.Row, p.Column, sh.Limits.MaxRow
	if sh.Axis == grid.AlongColumns {
		a, c, limit = p.Column, p.Row, sh.Limits.MaxColumn
	}
	if c < sh.BandStart || c > sh.BandEnd || a < sh.Position {
		return p, true
	}

	from := 0
	switch {
	case sh.Op == grid.Remove:
		from = a + min(sh.Position+sh.Count-1, limit) - sh.Position + 1
	case a >= sh.Position+sh.Count:
		from = a - sh.Count
	case sh.Mode == grid.CopyPrevious && sh.Position > 1:
		from = sh.Position - 1
	}
	if from < 1 || from > limit {
		return p, false
	}
	if sh.Axis == grid.AlongColumns {
		return grid.Pt(from, c), true
	}
	return grid.Pt(c, from), true
}

// Reset empties every cell.
func (g *Grid) Reset() { clear(g.cells) }

// Styled returns the cells whose composed style differs from the default.
func (g *Grid) Styled(c *compose.Composer) []grid.Point {
	def := c.Default()
	var out []grid.Point
	g.Points(func(p grid.Point) {
		if g.StyleAt(c, p) != def {
			out = append(out, p)
		}
	})
	return out
}
