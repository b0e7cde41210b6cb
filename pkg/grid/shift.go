package grid

import (
	"fmt"

	"github.com/joshuapare/stylekit/pkg/types"
)

// Axis is the direction cells move in during a structural edit.
type Axis int

const (
	// AlongRows moves cells vertically (row insertion/removal, shift down/up).
	AlongRows Axis = iota
	// AlongColumns moves cells horizontally (column insertion/removal, shift right/left).
	AlongColumns
)

// Op is the kind of structural edit.
type Op int

const (
	Insert Op = iota
	Remove
)

// InsertMode decides what the freshly inserted rows/columns contain.
type InsertMode int

const (
	// CopyNone leaves inserted cells unstyled. Rects straddling the insertion
	// point are split around the gap.
	CopyNone InsertMode = iota
	// CopyPrevious gives inserted cells the content of the row/column just
	// before the insertion point. Rects covering that row/column grow.
	CopyPrevious
)

// String returns the config spelling of the mode.
func (m InsertMode) String() string {
	switch m {
	case CopyNone:
		return "copy-none"
	case CopyPrevious:
		return "copy-previous"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseInsertMode is the inverse of InsertMode.String. The empty string maps
// to CopyNone.
func ParseInsertMode(s string) (InsertMode, error) {
	switch s {
	case "", "copy-none":
		return CopyNone, nil
	case "copy-previous":
		return CopyPrevious, nil
	}
	return CopyNone, fmt.Errorf("unknown insert mode %q", s)
}

// Span is an inclusive [Lo, Hi] range on one axis.
type Span struct {
	Lo int
	Hi int
}

// Shift describes one structural edit: Count rows (or columns) are inserted
// before, or removed starting at, Position. Only cells whose cross-axis
// coordinate lies in [BandStart, BandEnd] move; a band covering the whole
// cross axis is a full row/column edit, a narrower band is a localized
// insert/delete-cells edit.
type Shift struct {
	Axis      Axis
	Op        Op
	Position  int
	Count     int
	BandStart int
	BandEnd   int
	Mode      InsertMode
	Limits    types.Limits
}

// InsertRows inserts count rows before position across the whole grid.
func InsertRows(position, count int, lim types.Limits, mode InsertMode) Shift {
	return Shift{Axis: AlongRows, Op: Insert, Position: position, Count: count,
		BandStart: 1, BandEnd: lim.MaxColumn, Mode: mode, Limits: lim}
}

// RemoveRows removes count rows starting at position across the whole grid.
func RemoveRows(position, count int, lim types.Limits) Shift {
	return Shift{Axis: AlongRows, Op: Remove, Position: position, Count: count,
		BandStart: 1, BandEnd: lim.MaxColumn, Limits: lim}
}

// InsertColumns inserts count columns before position across the whole grid.
func InsertColumns(position, count int, lim types.Limits, mode InsertMode) Shift {
	return Shift{Axis: AlongColumns, Op: Insert, Position: position, Count: count,
		BandStart: 1, BandEnd: lim.MaxRow, Mode: mode, Limits: lim}
}

// RemoveColumns removes count columns starting at position across the whole grid.
func RemoveColumns(position, count int, lim types.Limits) Shift {
	return Shift{Axis: AlongColumns, Op: Remove, Position: position, Count: count,
		BandStart: 1, BandEnd: lim.MaxRow, Limits: lim}
}

// InsertShiftRight inserts the cells of r, moving the cells at and right of
// r.Left in rows r.Top..r.Bottom to the right by r.Width().
func InsertShiftRight(r Rect, lim types.Limits, mode InsertMode) Shift {
	return Shift{Axis: AlongColumns, Op: Insert, Position: r.Left, Count: r.Width(),
		BandStart: r.Top, BandEnd: r.Bottom, Mode: mode, Limits: lim}
}

// InsertShiftDown inserts the cells of r, moving the cells at and below r.Top
// in columns r.Left..r.Right down by r.Height().
func InsertShiftDown(r Rect, lim types.Limits, mode InsertMode) Shift {
	return Shift{Axis: AlongRows, Op: Insert, Position: r.Top, Count: r.Height(),
		BandStart: r.Left, BandEnd: r.Right, Mode: mode, Limits: lim}
}

// RemoveShiftLeft deletes the cells of r, moving the cells right of r in rows
// r.Top..r.Bottom to the left by r.Width().
func RemoveShiftLeft(r Rect, lim types.Limits) Shift {
	return Shift{Axis: AlongColumns, Op: Remove, Position: r.Left, Count: r.Width(),
		BandStart: r.Top, BandEnd: r.Bottom, Limits: lim}
}

// RemoveShiftUp deletes the cells of r, moving the cells below r in columns
// r.Left..r.Right up by r.Height().
func RemoveShiftUp(r Rect, lim types.Limits) Shift {
	return Shift{Axis: AlongRows, Op: Remove, Position: r.Top, Count: r.Height(),
		BandStart: r.Left, BandEnd: r.Right, Limits: lim}
}

// Validate rejects shifts outside the grid or with a non-positive count.
func (s Shift) Validate() error {
	if s.Count < 1 {
		return types.RangeError(types.ErrInvalidCount, "count %d", s.Count)
	}
	if s.Position < 1 || s.Position > s.axisMax() {
		return types.RangeError(types.ErrOutOfBounds, "position %d outside [1,%d]", s.Position, s.axisMax())
	}
	if s.BandStart < 1 || s.BandStart > s.BandEnd || s.BandEnd > s.crossMax() {
		return types.RangeError(types.ErrOutOfBounds, "band [%d,%d] outside [1,%d]", s.BandStart, s.BandEnd, s.crossMax())
	}
	return nil
}

// FullBand reports whether the edit spans the whole cross axis, i.e. it is a
// whole-row or whole-column insertion/removal.
func (s Shift) FullBand() bool {
	return s.BandStart <= 1 && s.BandEnd >= s.crossMax()
}

// Band returns the cross-axis band as a span.
func (s Shift) Band() Span { return Span{Lo: s.BandStart, Hi: s.BandEnd} }

// Affected is the rect whose content may change: the band from the first
// moved (or copied-from) row/column to the end of the axis.
func (s Shift) Affected() Rect {
	start := s.Position
	if s.Op == Insert && s.Mode == CopyPrevious && start > 1 {
		start--
	}
	return s.rect(start, s.axisMax(), s.BandStart, s.BandEnd)
}

// Lost is the pre-edit rect whose content the edit discards: the tail of the
// band pushed past the limit by an insertion, or the removed cells.
func (s Shift) Lost() Rect {
	limit := s.axisMax()
	if s.Op == Insert {
		return s.rect(max(s.Position, limit-s.Count+1), limit, s.BandStart, s.BandEnd)
	}
	return s.rect(s.Position, min(s.Position+s.Count-1, limit), s.BandStart, s.BandEnd)
}

// Vacated is the post-edit rect that no pre-edit cell maps to: the gap
// opened by an insertion, or the tail of the band emptied by a removal.
func (s Shift) Vacated() Rect {
	limit := s.axisMax()
	if s.Op == Insert {
		return s.rect(s.Position, min(s.Position+s.Count-1, limit), s.BandStart, s.BandEnd)
	}
	n := min(s.Position+s.Count-1, limit) - s.Position + 1
	return s.rect(limit-n+1, limit, s.BandStart, s.BandEnd)
}

// Apply maps a pre-edit rect to the post-edit rects covering the same
// content. Parts outside the band are returned unchanged; the part inside is
// moved, grown, split, clipped at the limit or dropped.
func (s Shift) Apply(r Rect) []Rect {
	if r.IsEmpty() {
		return nil
	}
	a0, a1, c0, c1 := s.split(r)
	out := make([]Rect, 0, 3)
	if c0 < s.BandStart {
		out = append(out, s.rect(a0, a1, c0, min(c1, s.BandStart-1)))
	}
	if c1 > s.BandEnd {
		out = append(out, s.rect(a0, a1, max(c0, s.BandEnd+1), c1))
	}
	if lo, hi := max(c0, s.BandStart), min(c1, s.BandEnd); lo <= hi {
		for _, sp := range s.MapSpan(a0, a1) {
			out = append(out, s.rect(sp.Lo, sp.Hi, lo, hi))
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// MapSpan maps an inclusive range on the moving axis through the edit.
func (s Shift) MapSpan(lo, hi int) []Span {
	p, n, limit := s.Position, s.Count, s.axisMax()
	clip := func(out []Span, lo, hi int) []Span {
		if lo > limit || lo > hi {
			return out
		}
		return append(out, Span{Lo: lo, Hi: min(hi, limit)})
	}

	if s.Op == Insert {
		switch {
		case hi < p:
			if s.Mode == CopyPrevious && hi == p-1 {
				return clip(nil, lo, hi+n)
			}
			return []Span{{Lo: lo, Hi: hi}}
		case lo >= p:
			return clip(nil, lo+n, hi+n)
		case s.Mode == CopyPrevious:
			return clip(nil, lo, hi+n)
		default:
			return clip(clip(nil, lo, p-1), p+n, hi+n)
		}
	}

	q := min(p+n-1, limit)
	removed := q - p + 1
	lowHi := min(hi, p-1)
	highLo := max(lo, q+1)
	hasLow, hasHigh := lo <= lowHi, highLo <= hi
	switch {
	case hasLow && hasHigh:
		return []Span{{Lo: lo, Hi: hi - removed}}
	case hasLow:
		return []Span{{Lo: lo, Hi: lowHi}}
	case hasHigh:
		return []Span{{Lo: highLo - removed, Hi: hi - removed}}
	}
	return nil
}

// AxisLimit returns the maximum coordinate on the moving axis.
func (s Shift) AxisLimit() int { return s.axisMax() }

// CrossLimit returns the maximum coordinate on the cross axis.
func (s Shift) CrossLimit() int { return s.crossMax() }

// Rect builds a rect from a moving-axis span and a cross-axis span.
func (s Shift) Rect(axis, cross Span) Rect { return s.rect(axis.Lo, axis.Hi, cross.Lo, cross.Hi) }

// Split returns r's moving-axis and cross-axis spans.
func (s Shift) Split(r Rect) (axis, cross Span) {
	a0, a1, c0, c1 := s.split(r)
	return Span{Lo: a0, Hi: a1}, Span{Lo: c0, Hi: c1}
}

func (s Shift) String() string {
	op := "insert"
	if s.Op == Remove {
		op = "remove"
	}
	axis := "rows"
	if s.Axis == AlongColumns {
		axis = "columns"
	}
	return fmt.Sprintf("%s %d %s at %d band [%d,%d]", op, s.Count, axis, s.Position, s.BandStart, s.BandEnd)
}

func (s Shift) axisMax() int {
	if s.Axis == AlongRows {
		return s.Limits.MaxRow
	}
	return s.Limits.MaxColumn
}

func (s Shift) crossMax() int {
	if s.Axis == AlongRows {
		return s.Limits.MaxColumn
	}
	return s.Limits.MaxRow
}

func (s Shift) rect(a0, a1, c0, c1 int) Rect {
	if s.Axis == AlongRows {
		return Rect{Left: c0, Top: a0, Right: c1, Bottom: a1}
	}
	return Rect{Left: a0, Top: c0, Right: a1, Bottom: c1}
}

func (s Shift) split(r Rect) (a0, a1, c0, c1 int) {
	if s.Axis == AlongRows {
		return r.Top, r.Bottom, r.Left, r.Right
	}
	return r.Left, r.Right, r.Top, r.Bottom
}
