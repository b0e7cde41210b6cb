package grid

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/joshuapare/stylekit/pkg/types"
)

// ColumnName returns the bijective base-26 name of a 1-indexed column
// (1 -> "A", 27 -> "AA", 18278 -> "ZZZ").
func ColumnName(col int) string {
	if col < 1 {
		return ""
	}
	var buf [8]byte
	i := len(buf)
	for col > 0 {
		col--
		i--
		buf[i] = byte('A' + col%26)
		col /= 26
	}
	return string(buf[i:])
}

// ParseColumn is the inverse of ColumnName. Lowercase letters are accepted.
func ParseColumn(name string) (int, error) {
	if name == "" {
		return 0, fmt.Errorf("empty column name")
	}
	col := 0
	for _, c := range strings.ToUpper(name) {
		if c < 'A' || c > 'Z' {
			return 0, fmt.Errorf("invalid column name %q", name)
		}
		col = col*26 + int(c-'A'+1)
		if col > 1<<24 {
			return 0, fmt.Errorf("column name %q too long", name)
		}
	}
	return col, nil
}

// ParsePoint parses A1 notation ("B7").
func ParsePoint(s string) (Point, error) {
	s = strings.TrimSpace(s)
	i := 0
	for i < len(s) && (s[i] >= 'A' && s[i] <= 'Z' || s[i] >= 'a' && s[i] <= 'z') {
		i++
	}
	if i == 0 || i == len(s) {
		return Point{}, fmt.Errorf("invalid cell reference %q", s)
	}
	col, err := ParseColumn(s[:i])
	if err != nil {
		return Point{}, err
	}
	row, err := strconv.Atoi(s[i:])
	if err != nil || row < 1 {
		return Point{}, fmt.Errorf("invalid row in cell reference %q", s)
	}
	return Point{Column: col, Row: row}, nil
}

// ParseRect parses "B2", "B2:D9", whole columns "B:D" and whole rows "3:7".
// Whole-column and whole-row forms are expanded using lim.
func ParseRect(s string, lim types.Limits) (Rect, error) {
	s = strings.TrimSpace(s)
	first, last, ranged := strings.Cut(s, ":")
	if !ranged {
		p, err := ParsePoint(first)
		if err != nil {
			return Rect{}, err
		}
		return Cell(p), nil
	}

	if a, errA := ParseColumn(first); errA == nil {
		if b, errB := ParseColumn(last); errB == nil {
			return normalize(Columns(a, b, lim)), nil
		}
	}
	if a, errA := strconv.Atoi(first); errA == nil {
		if b, errB := strconv.Atoi(last); errB == nil {
			return normalize(Rows(a, b, lim)), nil
		}
	}

	p, err := ParsePoint(first)
	if err != nil {
		return Rect{}, err
	}
	q, err := ParsePoint(last)
	if err != nil {
		return Rect{}, err
	}
	return normalize(R(p.Column, p.Row, q.Column, q.Row)), nil
}

func normalize(r Rect) Rect {
	if r.Left > r.Right {
		r.Left, r.Right = r.Right, r.Left
	}
	if r.Top > r.Bottom {
		r.Top, r.Bottom = r.Bottom, r.Top
	}
	return r
}

// ClampRepeat clamps a "repeated" count read from a foreign file format to the
// space remaining after start, so over-declared repeats are tolerated instead
// of rejected. A count below one is treated as one; a start beyond limit
// yields zero.
func ClampRepeat(start, count, limit int) int {
	if start > limit || start < 1 {
		return 0
	}
	if count < 1 {
		count = 1
	}
	return min(count, limit-start+1)
}

// RectFromRepeat builds the rect anchored at (col,row) spanning the clamped
// column and row repeat counts. An anchor outside the grid yields an empty rect.
func RectFromRepeat(col, row, colRepeat, rowRepeat int, lim types.Limits) Rect {
	w := ClampRepeat(col, colRepeat, lim.MaxColumn)
	h := ClampRepeat(row, rowRepeat, lim.MaxRow)
	if w == 0 || h == 0 {
		return Rect{}
	}
	return R(col, row, col+w-1, row+h-1)
}
