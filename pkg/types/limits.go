package types

// ============================================================================
// Grid Limits
// ============================================================================
// A sheet is a virtually unbounded but capped 2-D grid. The defaults match the
// widest column ("ZZZ" = 18278) and tallest row count used by common
// spreadsheet formats.

const (
	// DefaultMaxColumn is the highest addressable column (column "ZZZ").
	DefaultMaxColumn = 18278

	// DefaultMaxRow is the highest addressable row (2^20).
	DefaultMaxRow = 1 << 20 // 1,048,576 rows
)

// Limits bounds the coordinate space of one sheet. Coordinates are 1-indexed
// and inclusive: valid columns are [1, MaxColumn], valid rows [1, MaxRow].
type Limits struct {
	MaxColumn int
	MaxRow    int
}

// DefaultLimits returns the standard grid bounds.
func DefaultLimits() Limits {
	return Limits{MaxColumn: DefaultMaxColumn, MaxRow: DefaultMaxRow}
}

// Valid reports whether both maxima are positive.
func (l Limits) Valid() bool {
	return l.MaxColumn > 0 && l.MaxRow > 0
}

// ContainsColumn reports whether col is addressable.
func (l Limits) ContainsColumn(col int) bool {
	return col >= 1 && col <= l.MaxColumn
}

// ContainsRow reports whether row is addressable.
func (l Limits) ContainsRow(row int) bool {
	return row >= 1 && row <= l.MaxRow
}
