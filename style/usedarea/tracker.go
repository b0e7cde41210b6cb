// Package usedarea keeps a cheap, conservative summary of which cells of a
// sheet may carry a non-default style.
//
// The summary has three parts: a set of whole columns, a set of whole rows
// and a region of disjoint rects for everything else. A cell outside all
// three is guaranteed to compose to the document default, which lets point
// queries skip the range index entirely. The converse does not hold: a cell
// inside the summary may still be default.
package usedarea

import (
	"github.com/joshuapare/stylekit/pkg/grid"
	"github.com/joshuapare/stylekit/pkg/types"
)

// Tracker is the used-area summary of one sheet.
//
// NOT thread-safe. Only one goroutine should use it at a time.
type Tracker struct {
	lim          types.Limits
	usedArea     grid.Region
	wholeColumns *IntervalSet
	wholeRows    *IntervalSet
}

// New creates an empty tracker for a grid of the given limits.
func New(lim types.Limits) *Tracker {
	return &Tracker{
		lim:          lim,
		wholeColumns: NewIntervalSet(),
		wholeRows:    NewIntervalSet(),
	}
}

// Insert records an assignment over rect. isDefault marks a Default marker,
// which resets rect instead of styling it.
//
// A rect covering every row is a whole-column assignment and only touches
// the column set; likewise a rect covering every column only touches the
// row set. A rect covering the whole grid counts as both.
func (t *Tracker) Insert(rect grid.Rect, isDefault bool) {
	if rect.IsEmpty() {
		return
	}
	spansRows := rect.SpansRows(t.lim)
	spansColumns := rect.SpansColumns(t.lim)

	if spansRows {
		if isDefault {
			t.wholeColumns.Remove(rect.Left, rect.Right)
		} else {
			t.wholeColumns.Add(rect.Left, rect.Right)
		}
	}
	if spansColumns && (isDefault || !spansRows) {
		if isDefault {
			t.wholeRows.Remove(rect.Top, rect.Bottom)
		} else {
			t.wholeRows.Add(rect.Top, rect.Bottom)
		}
	}

	switch {
	case isDefault:
		t.usedArea = t.usedArea.Subtract(rect)
	case !spansRows && !spansColumns:
		t.usedArea = t.usedArea.Add(rect)
	}
}

// FastRejectsAsDefault reports whether p is certainly unstyled.
func (t *Tracker) FastRejectsAsDefault(p grid.Point) bool {
	return !t.wholeColumns.Contains(p.Column) &&
		!t.wholeRows.Contains(p.Row) &&
		!t.usedArea.Contains(p)
}

// MayIntersect reports whether any cell of r may be styled.
func (t *Tracker) MayIntersect(r grid.Rect) bool {
	if r.IsEmpty() {
		return false
	}
	if c, ok := t.wholeColumns.Next(r.Left); ok && c <= r.Right {
		return true
	}
	if row, ok := t.wholeRows.Next(r.Top); ok && row <= r.Bottom {
		return true
	}
	return t.usedArea.Intersects(r)
}

// UsedArea returns the bounding rect of everything that may be styled,
// including whole columns and whole rows. An unstyled sheet yields the
// empty rect.
func (t *Tracker) UsedArea() grid.Rect {
	out := t.usedArea.Bounds()
	if sp, ok := t.wholeColumns.Bounds(); ok {
		out = out.Union(grid.Columns(sp.Lo, sp.Hi, t.lim))
	}
	if sp, ok := t.wholeRows.Bounds(); ok {
		out = out.Union(grid.Rows(sp.Lo, sp.Hi, t.lim))
	}
	return out
}

// Region returns a copy of the partial-area region.
func (t *Tracker) Region() grid.Region {
	return append(grid.Region(nil), t.usedArea...)
}

// WholeColumns returns the whole-column spans in ascending order.
func (t *Tracker) WholeColumns() []grid.Span { return t.wholeColumns.Spans() }

// WholeRows returns the whole-row spans in ascending order.
func (t *Tracker) WholeRows() []grid.Span { return t.wholeRows.Spans() }

// IsWholeColumn reports whether col carries a whole-column assignment.
func (t *Tracker) IsWholeColumn(col int) bool { return t.wholeColumns.Contains(col) }

// IsWholeRow reports whether row carries a whole-row assignment.
func (t *Tracker) IsWholeRow(row int) bool { return t.wholeRows.Contains(row) }

// NextColumnStyleIndex returns the first whole-styled column after col, or 0.
func (t *Tracker) NextColumnStyleIndex(col int) int {
	next, _ := t.wholeColumns.Next(col + 1)
	return next
}

// NextRowStyleIndex returns the first whole-styled row after row, or 0.
func (t *Tracker) NextRowStyleIndex(row int) int {
	next, _ := t.wholeRows.Next(row + 1)
	return next
}

// FirstColumnIndexInRow returns the leftmost column of row covered by the
// partial-area region, or 0. Whole columns and whole rows are reported by
// NextColumnStyleIndex and NextRowStyleIndex instead.
func (t *Tracker) FirstColumnIndexInRow(row int) int {
	return t.NextColumnIndexInRow(0, row)
}

// NextColumnIndexInRow returns the leftmost column after col in row covered
// by the partial-area region, or 0.
func (t *Tracker) NextColumnIndexInRow(col, row int) int {
	next := 0
	for _, r := range t.usedArea {
		if row < r.Top || row > r.Bottom || r.Right <= col {
			continue
		}
		c := max(r.Left, col+1)
		if next == 0 || c < next {
			next = c
		}
	}
	return next
}

// Shift updates the summary for a structural edit.
//
// Region rects follow the edit exactly. For a whole-row or whole-column edit
// the whole set along the moving axis is shifted too; the other set is left
// as is, since its members keep covering the same columns or rows. For a
// localized edit the whole sets stay in place and the band parts of the
// moving-axis set are mapped through the edit into the region, so cells
// moved out of a whole row or column stay covered.
func (t *Tracker) Shift(s grid.Shift) {
	var next grid.Region
	for _, r := range t.usedArea {
		for _, m := range s.Apply(r) {
			next = next.Add(m)
		}
	}

	moving := t.wholeRows
	if s.Axis == grid.AlongColumns {
		moving = t.wholeColumns
	}
	if s.FullBand() {
		moving.Shift(s)
	} else {
		band := s.Band()
		for _, sp := range moving.Spans() {
			for _, m := range s.Apply(s.Rect(sp, band)) {
				next = next.Add(m)
			}
		}
	}
	t.usedArea = next
}

// Reset forgets everything.
func (t *Tracker) Reset() {
	t.usedArea = nil
	t.wholeColumns.Clear()
	t.wholeRows.Clear()
}
