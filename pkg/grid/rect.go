package grid

import (
	"fmt"

	"github.com/joshuapare/stylekit/pkg/types"
)

// Point addresses one cell.
type Point struct {
	Column int
	Row    int
}

// Pt is shorthand for Point{Column: col, Row: row}.
func Pt(col, row int) Point { return Point{Column: col, Row: row} }

// String formats the point in A1 notation.
func (p Point) String() string {
	if p.Column < 1 || p.Row < 1 {
		return fmt.Sprintf("(%d,%d)", p.Column, p.Row)
	}
	return ColumnName(p.Column) + fmt.Sprint(p.Row)
}

// Rect is an inclusive axis-aligned rectangle.
type Rect struct {
	Left   int
	Top    int
	Right  int
	Bottom int
}

// R builds a Rect from its four inclusive edges.
func R(left, top, right, bottom int) Rect {
	return Rect{Left: left, Top: top, Right: right, Bottom: bottom}
}

// Cell returns the 1x1 rect at p.
func Cell(p Point) Rect { return Rect{Left: p.Column, Top: p.Row, Right: p.Column, Bottom: p.Row} }

// Columns returns the rect covering columns [first, last] over every row.
func Columns(first, last int, lim types.Limits) Rect {
	return Rect{Left: first, Top: 1, Right: last, Bottom: lim.MaxRow}
}

// Rows returns the rect covering rows [first, last] over every column.
func Rows(first, last int, lim types.Limits) Rect {
	return Rect{Left: 1, Top: first, Right: lim.MaxColumn, Bottom: last}
}

// Whole returns the rect covering the entire grid.
func Whole(lim types.Limits) Rect {
	return Rect{Left: 1, Top: 1, Right: lim.MaxColumn, Bottom: lim.MaxRow}
}

// IsEmpty reports whether the rect covers no addressable cell.
func (r Rect) IsEmpty() bool {
	return r.Left < 1 || r.Top < 1 || r.Left > r.Right || r.Top > r.Bottom
}

// Width is the number of columns covered.
func (r Rect) Width() int {
	if r.IsEmpty() {
		return 0
	}
	return r.Right - r.Left + 1
}

// Height is the number of rows covered.
func (r Rect) Height() int {
	if r.IsEmpty() {
		return 0
	}
	return r.Bottom - r.Top + 1
}

// Area is the number of cells covered.
func (r Rect) Area() int64 {
	return int64(r.Width()) * int64(r.Height())
}

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	return !r.IsEmpty() &&
		p.Column >= r.Left && p.Column <= r.Right &&
		p.Row >= r.Top && p.Row <= r.Bottom
}

// ContainsRect reports whether o lies entirely inside r.
func (r Rect) ContainsRect(o Rect) bool {
	if r.IsEmpty() || o.IsEmpty() {
		return false
	}
	return o.Left >= r.Left && o.Right <= r.Right && o.Top >= r.Top && o.Bottom <= r.Bottom
}

// Intersects reports whether r and o share at least one cell.
func (r Rect) Intersects(o Rect) bool {
	return !r.Intersect(o).IsEmpty()
}

// Intersect returns the overlap of r and o, or an empty rect.
func (r Rect) Intersect(o Rect) Rect {
	if r.IsEmpty() || o.IsEmpty() {
		return Rect{}
	}
	out := Rect{
		Left:   max(r.Left, o.Left),
		Top:    max(r.Top, o.Top),
		Right:  min(r.Right, o.Right),
		Bottom: min(r.Bottom, o.Bottom),
	}
	if out.IsEmpty() {
		return Rect{}
	}
	return out
}

// Union returns the bounding rect of r and o. Empty operands are ignored.
func (r Rect) Union(o Rect) Rect {
	switch {
	case r.IsEmpty():
		return o
	case o.IsEmpty():
		return r
	}
	return Rect{
		Left:   min(r.Left, o.Left),
		Top:    min(r.Top, o.Top),
		Right:  max(r.Right, o.Right),
		Bottom: max(r.Bottom, o.Bottom),
	}
}

// Translate moves the rect by (dc, dr).
func (r Rect) Translate(dc, dr int) Rect {
	return Rect{Left: r.Left + dc, Top: r.Top + dr, Right: r.Right + dc, Bottom: r.Bottom + dr}
}

// Subtract returns up to four disjoint rects covering r minus o.
func (r Rect) Subtract(o Rect) []Rect {
	if r.IsEmpty() {
		return nil
	}
	x := r.Intersect(o)
	if x.IsEmpty() {
		return []Rect{r}
	}
	out := make([]Rect, 0, 4)
	if r.Top < x.Top {
		out = append(out, Rect{Left: r.Left, Top: r.Top, Right: r.Right, Bottom: x.Top - 1})
	}
	if x.Bottom < r.Bottom {
		out = append(out, Rect{Left: r.Left, Top: x.Bottom + 1, Right: r.Right, Bottom: r.Bottom})
	}
	if r.Left < x.Left {
		out = append(out, Rect{Left: r.Left, Top: x.Top, Right: x.Left - 1, Bottom: x.Bottom})
	}
	if x.Right < r.Right {
		out = append(out, Rect{Left: x.Right + 1, Top: x.Top, Right: r.Right, Bottom: x.Bottom})
	}
	return out
}

// SpansRows reports whether r covers every row of the grid.
func (r Rect) SpansRows(lim types.Limits) bool {
	return !r.IsEmpty() && r.Top == 1 && r.Bottom >= lim.MaxRow
}

// SpansColumns reports whether r covers every column of the grid.
func (r Rect) SpansColumns(lim types.Limits) bool {
	return !r.IsEmpty() && r.Left == 1 && r.Right >= lim.MaxColumn
}

// Validate rejects empty rects and rects that leave the grid.
func (r Rect) Validate(lim types.Limits) error {
	if r.IsEmpty() {
		return types.RangeError(types.ErrInvalidRect, "rect %d,%d:%d,%d", r.Left, r.Top, r.Right, r.Bottom)
	}
	if r.Right > lim.MaxColumn || r.Bottom > lim.MaxRow {
		return types.RangeError(types.ErrOutOfBounds, "rect %s exceeds %dx%d", r, lim.MaxColumn, lim.MaxRow)
	}
	return nil
}

// String formats the rect in A1:B2 notation.
func (r Rect) String() string {
	if r.IsEmpty() {
		return "<empty>"
	}
	return Pt(r.Left, r.Top).String() + ":" + Pt(r.Right, r.Bottom).String()
}
