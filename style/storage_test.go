package style

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/stylekit/pkg/grid"
	"github.com/joshuapare/stylekit/pkg/types"
	"github.com/joshuapare/stylekit/style/compose"
	"github.com/joshuapare/stylekit/style/gc"
	"github.com/joshuapare/stylekit/style/metrics"
	"github.com/joshuapare/stylekit/style/namedstyle"
	"github.com/joshuapare/stylekit/style/substyle"
)

var (
	bold     = substyle.Bool(substyle.Bold, true)
	notBold  = substyle.Bool(substyle.Bold, false)
	italic   = substyle.Bool(substyle.Italic, true)
	smallLim = types.Limits{MaxColumn: 10, MaxRow: 12}
)

func newManager() *namedstyle.Manager {
	m := namedstyle.NewManager(substyle.Int(substyle.FontSize, 10))
	m.Add("Base", "", substyle.Bool(substyle.Italic, true))
	m.Add("Heading", "Base", substyle.Bool(substyle.Bold, true), substyle.Int(substyle.FontSize, 14))
	return m
}

func newSmall(t *testing.T, mode grid.InsertMode) *Storage {
	t.Helper()
	opts := DefaultOptions()
	opts.MaxColumn, opts.MaxRow = smallLim.MaxColumn, smallLim.MaxRow
	opts.InsertMode = mode
	opts.CacheCapacity = 16
	st, err := New(newManager(), opts)
	require.NoError(t, err)
	return st
}

func region(rects ...grid.Rect) grid.Region { return grid.NewRegion(rects...) }

func snapshot(st *Storage) map[grid.Point]compose.Style {
	out := make(map[grid.Point]compose.Style)
	lim := st.Limits()
	for row := 1; row <= lim.MaxRow; row++ {
		for col := 1; col <= lim.MaxColumn; col++ {
			out[grid.Pt(col, row)] = st.StyleAt(col, row)
		}
	}
	return out
}

// summaries records StyleOver in both modes for every rect of the sheet.
func summaries(st *Storage) map[grid.Rect][2]compose.Style {
	lim := st.Limits()
	out := make(map[grid.Rect][2]compose.Style)
	for left := 1; left <= lim.MaxColumn; left++ {
		for top := 1; top <= lim.MaxRow; top++ {
			for right := left; right <= lim.MaxColumn; right++ {
				for bottom := top; bottom <= lim.MaxRow; bottom++ {
					r := grid.R(left, top, right, bottom)
					out[r] = [2]compose.Style{st.StyleOver(r, Contains), st.StyleOver(r, Intersects)}
				}
			}
		}
	}
	return out
}

func TestNew_Errors(t *testing.T) {
	_, err := New(nil, nil)
	require.ErrorIs(t, err, types.ErrNoStyleManager)

	opts := DefaultOptions()
	opts.MaxRow = 0
	_, err = New(newManager(), opts)
	require.ErrorIs(t, err, types.ErrInvalidConfig)
}

func TestStorage_WholeRowExample(t *testing.T) {
	st, err := New(newManager(), nil)
	require.NoError(t, err)
	lim := st.Limits()
	require.Equal(t, 18278, lim.MaxColumn)
	require.Equal(t, 1048576, lim.MaxRow)

	require.NoError(t, st.InsertSubStyle(region(grid.R(1, 1, 18278, 1)), bold))
	require.Equal(t, []grid.Span{{Lo: 1, Hi: 1}}, st.WholeRows())
	require.True(t, st.StyleAt(5000, 1).Bold())
	require.False(t, st.StyleAt(5000, 2).Bold())
}

func TestStorage_UncoveredIsDefault(t *testing.T) {
	st := newSmall(t, grid.CopyNone)
	require.NoError(t, st.InsertSubStyle(region(grid.R(2, 2, 3, 3)), bold))

	def := st.DefaultStyle()
	require.True(t, def.IsDefault())
	require.Equal(t, def, st.StyleAt(1, 1))
	require.Equal(t, def, st.StyleAt(4, 4))
	require.Equal(t, def, st.StyleAt(0, 1), "outside the grid")
	require.Equal(t, def, st.StyleAt(11, 1), "outside the grid")
	require.NotEqual(t, def, st.StyleAt(2, 2))
}

func TestStorage_OverrideAndAccumulate(t *testing.T) {
	st := newSmall(t, grid.CopyNone)
	r := region(grid.R(1, 1, 3, 3))

	require.NoError(t, st.InsertSubStyle(r, bold))
	require.NoError(t, st.InsertSubStyle(r, notBold))
	require.False(t, st.StyleAt(2, 2).Bold())

	require.NoError(t, st.InsertSubStyle(r, substyle.Indent(2)))
	require.NoError(t, st.InsertSubStyle(r, substyle.Indent(3)))
	require.Equal(t, 5, st.StyleAt(2, 2).Indentation())
	require.NoError(t, st.InsertSubStyle(r, substyle.Indent(-5)))
	require.False(t, st.StyleAt(2, 2).Has(substyle.Indentation))

	for range 5 {
		require.NoError(t, st.InsertSubStyle(r, substyle.Precision(4)))
	}
	p, _ := st.StyleAt(1, 1).Precision()
	require.Equal(t, compose.MaxPrecision, p)
	for range 5 {
		require.NoError(t, st.InsertSubStyle(r, substyle.Precision(-4)))
	}
	p, ok := st.StyleAt(1, 1).Precision()
	require.True(t, ok)
	require.Equal(t, 0, p)
}

func TestStorage_InsertStyle(t *testing.T) {
	st := newSmall(t, grid.CopyNone)
	heading := compose.Compose(st.Manager(), []substyle.SubStyle{substyle.Named("Heading")})

	require.NoError(t, st.Insert(region(grid.R(1, 1, 2, 2)), heading))
	got := st.StyleAt(1, 1)
	require.True(t, got.Bold())
	require.True(t, got.Italic())

	require.NoError(t, st.Insert(region(grid.R(1, 1, 1, 1)), st.DefaultStyle()))
	require.Equal(t, st.DefaultStyle(), st.StyleAt(1, 1))
	require.True(t, st.StyleAt(2, 2).Bold())
}

func TestStorage_InsertRejectsOutOfBounds(t *testing.T) {
	st := newSmall(t, grid.CopyNone)
	err := st.InsertSubStyle(region(grid.R(1, 1, 11, 1)), bold)
	require.ErrorIs(t, err, types.ErrOutOfBounds)
	require.Zero(t, st.Stats().Entries)

	err = st.InsertSubStyle(grid.Region{grid.R(3, 3, 2, 2)}, bold)
	require.ErrorIs(t, err, types.ErrInvalidRect)

	_, err = st.InsertRows(0, 1)
	require.ErrorIs(t, err, types.ErrOutOfBounds)
	_, err = st.RemoveColumns(1, 0)
	require.ErrorIs(t, err, types.ErrInvalidCount)
	_, err = st.InsertShiftRight(grid.R(1, 1, 1, 20))
	require.ErrorIs(t, err, types.ErrOutOfBounds)
}

func TestStorage_StyleOver(t *testing.T) {
	st := newSmall(t, grid.CopyNone)
	require.NoError(t, st.InsertSubStyle(region(grid.R(1, 1, 5, 5)), bold))
	require.NoError(t, st.InsertSubStyle(region(grid.R(4, 4, 6, 6)), italic))

	contained := st.StyleOver(grid.R(2, 2, 5, 5), Contains)
	require.True(t, contained.Bold())
	require.False(t, contained.Italic())

	touched := st.StyleOver(grid.R(2, 2, 5, 5), Intersects)
	require.True(t, touched.Bold())
	require.True(t, touched.Italic())

	require.Equal(t, st.DefaultStyle(), st.StyleOver(grid.R(8, 8, 9, 9), Intersects))
	require.Equal(t, st.DefaultStyle(), st.StyleOver(grid.R(20, 20, 30, 30), Contains))
}

func TestStorage_UsedArea(t *testing.T) {
	st := newSmall(t, grid.CopyNone)
	require.True(t, st.UsedArea().IsEmpty())

	require.NoError(t, st.InsertSubStyle(region(grid.R(2, 3, 4, 5)), bold))
	require.NoError(t, st.InsertSubStyle(region(grid.R(7, 7, 7, 7)), italic))
	require.Equal(t, grid.R(2, 3, 7, 7), st.UsedArea())

	require.NoError(t, st.InsertSubStyle(region(grid.R(7, 7, 7, 7)), substyle.Default()))
	require.Equal(t, grid.R(2, 3, 4, 5), st.UsedArea())

	require.Equal(t, 2, st.FirstColumnIndexInRow(4))
	require.Equal(t, 3, st.NextColumnIndexInRow(2, 4))
	require.Equal(t, 0, st.NextColumnIndexInRow(4, 4))

	require.NoError(t, st.InsertSubStyle(region(grid.Columns(9, 9, st.Limits())), italic))
	require.Equal(t, 9, st.NextColumnStyleIndex(1))
	require.Equal(t, []grid.Span{{Lo: 9, Hi: 9}}, st.WholeColumns())
}

func TestStorage_UndoData(t *testing.T) {
	st := newSmall(t, grid.CopyNone)
	require.NoError(t, st.InsertSubStyle(region(grid.R(1, 1, 4, 4)), bold))
	require.NoError(t, st.InsertSubStyle(region(grid.R(6, 1, 6, 1)), notBold))
	require.NoError(t, st.InsertSubStyle(region(grid.R(3, 3, 8, 3)), italic))

	got := st.UndoData(region(grid.R(3, 1, 6, 1), grid.R(3, 3, 3, 3)))
	require.Equal(t, []Pair{
		{Rect: grid.R(3, 1, 4, 1), Value: bold, Z: 1},
		{Rect: grid.R(3, 3, 3, 3), Value: bold, Z: 1},
		{Rect: grid.R(6, 1, 6, 1), Value: notBold, Z: 2},
		{Rect: grid.R(3, 3, 3, 3), Value: italic, Z: 3},
	}, got)
}

func TestStorage_InsertRowsUndoData(t *testing.T) {
	st := newSmall(t, grid.CopyNone)
	require.NoError(t, st.InsertSubStyle(region(grid.R(1, 11, 2, 12)), bold))

	undo, err := st.InsertRows(3, 2)
	require.NoError(t, err)
	require.Equal(t, []Pair{
		{Rect: grid.Rows(11, 12, smallLim)},
		{Rect: grid.R(1, 11, 2, 12), Value: bold, Z: 1},
	}, undo)
	require.Equal(t, st.DefaultStyle(), st.StyleAt(1, 12))
}

func roundTripFixture(t *testing.T, st *Storage) {
	t.Helper()
	lim := st.Limits()
	require.NoError(t, st.InsertSubStyle(region(grid.Rows(4, 4, lim)), bold))
	require.NoError(t, st.InsertSubStyle(region(grid.Rows(6, 6, lim)), substyle.Default()))
	require.NoError(t, st.InsertSubStyle(region(grid.Columns(2, 2, lim)), italic))
	require.NoError(t, st.InsertSubStyle(region(grid.Columns(3, 3, lim)), substyle.Default()))
	require.NoError(t, st.InsertSubStyle(region(grid.R(3, 3, 6, 8)), substyle.Named("Heading")))
	require.NoError(t, st.InsertSubStyle(region(grid.R(5, 10, 9, 12)), substyle.Indent(2)))
}

func TestStorage_RowRoundTrip(t *testing.T) {
	for _, mode := range []grid.InsertMode{grid.CopyNone, grid.CopyPrevious} {
		t.Run(mode.String(), func(t *testing.T) {
			st := newSmall(t, mode)
			roundTripFixture(t, st)
			before := snapshot(st)

			undo, err := st.InsertRows(5, 3)
			require.NoError(t, err)
			_, err = st.RemoveRows(5, 3)
			require.NoError(t, err)
			require.NoError(t, st.ApplyUndo(undo))
			require.Equal(t, before, snapshot(st))

			undo, err = st.RemoveRows(2, 4)
			require.NoError(t, err)
			_, err = st.InsertRows(2, 4)
			require.NoError(t, err)
			require.NoError(t, st.ApplyUndo(undo))
			require.Equal(t, before, snapshot(st))
		})
	}
}

func TestStorage_ColumnAndShiftRoundTrips(t *testing.T) {
	type edit func(st *Storage) ([]Pair, error)
	cells := grid.R(3, 4, 5, 9)
	tests := []struct {
		name    string
		do, inv edit
	}{
		{"columns",
			func(st *Storage) ([]Pair, error) { return st.InsertColumns(3, 2) },
			func(st *Storage) ([]Pair, error) { return st.RemoveColumns(3, 2) }},
		{"remove columns",
			func(st *Storage) ([]Pair, error) { return st.RemoveColumns(2, 3) },
			func(st *Storage) ([]Pair, error) { return st.InsertColumns(2, 3) }},
		{"shift right",
			func(st *Storage) ([]Pair, error) { return st.InsertShiftRight(cells) },
			func(st *Storage) ([]Pair, error) { return st.RemoveShiftLeft(cells) }},
		{"shift down",
			func(st *Storage) ([]Pair, error) { return st.InsertShiftDown(cells) },
			func(st *Storage) ([]Pair, error) { return st.RemoveShiftUp(cells) }},
		{"shift left",
			func(st *Storage) ([]Pair, error) { return st.RemoveShiftLeft(cells) },
			func(st *Storage) ([]Pair, error) { return st.InsertShiftRight(cells) }},
		{"shift up",
			func(st *Storage) ([]Pair, error) { return st.RemoveShiftUp(cells) },
			func(st *Storage) ([]Pair, error) { return st.InsertShiftDown(cells) }},
	}
	for _, mode := range []grid.InsertMode{grid.CopyNone, grid.CopyPrevious} {
		for _, tt := range tests {
			t.Run(mode.String()+"/"+tt.name, func(t *testing.T) {
				st := newSmall(t, mode)
				roundTripFixture(t, st)
				before := snapshot(st)

				undo, err := tt.do(st)
				require.NoError(t, err)
				require.Equal(t, Pair{Rect: undo[0].Rect}, undo[0], "first pair resets the discarded band")
				_, err = tt.inv(st)
				require.NoError(t, err)
				require.NoError(t, st.ApplyUndo(undo))
				require.Equal(t, before, snapshot(st))
			})
		}
	}
}

func TestStorage_CacheTransparency(t *testing.T) {
	st := newSmall(t, grid.CopyNone)
	require.NoError(t, st.InsertSubStyle(region(grid.R(1, 1, 4, 4)), bold))
	require.True(t, st.StyleAt(2, 2).Bold())
	require.True(t, st.StyleAt(2, 2).Bold())
	require.Positive(t, st.Stats().Cache.Hits)

	require.NoError(t, st.InsertSubStyle(region(grid.R(2, 2, 2, 2)), notBold))
	require.False(t, st.StyleAt(2, 2).Bold())

	_, err := st.InsertRows(1, 1)
	require.NoError(t, err)
	require.True(t, st.StyleAt(2, 2).Bold())
	require.False(t, st.StyleAt(2, 3).Bold())

	st.InvalidateCache(grid.R(1, 1, 1, 1))
	st.InvalidateCache()
	require.Zero(t, st.Stats().CachedPoints)
	require.False(t, st.StyleAt(2, 3).Bold())
}

func TestStorage_GarbageCollectionIsInvisible(t *testing.T) {
	st := newSmall(t, grid.CopyNone)
	roundTripFixture(t, st)
	require.NoError(t, st.InsertSubStyle(region(grid.R(3, 3, 4, 4)), notBold))
	require.NoError(t, st.InsertSubStyle(region(grid.R(3, 3, 4, 4)), bold))
	require.NoError(t, st.InsertSubStyle(region(grid.R(1, 1, 1, 1)), substyle.Precision(0)))
	require.NoError(t, st.InsertSubStyle(region(grid.R(8, 1, 8, 2)), substyle.Named("Nope")))
	require.NoError(t, st.InsertSubStyle(region(grid.R(10, 12, 10, 12)), substyle.Default()))
	require.NoError(t, st.InsertSubStyle(region(grid.R(10, 11, 10, 11)), substyle.Indent(0)))
	require.Equal(t, gc.Scheduled, st.GCState())

	before, over := snapshot(st), summaries(st)
	entries := st.Stats().Entries
	require.Positive(t, st.CollectGarbage())
	require.Equal(t, gc.Idle, st.GCState())
	require.Less(t, st.Stats().Entries, entries)
	require.Equal(t, before, snapshot(st))
	require.Equal(t, over, summaries(st))
}

func TestStorage_GarbageCollectionKeepsIntersectingSummaries(t *testing.T) {
	tests := []struct {
		name        string
		below, over substyle.SubStyle
	}{
		{"default beside bold", bold, substyle.Default()},
		{"neutral indent beside indent", substyle.Indent(2), substyle.Indent(0)},
		{"neutral precision beside precision", substyle.Precision(4), substyle.Precision(0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := newSmall(t, grid.CopyNone)
			require.NoError(t, st.InsertSubStyle(region(grid.R(1, 1, 1, 1)), tt.below))
			require.NoError(t, st.InsertSubStyle(region(grid.R(2, 1, 2, 1)), tt.over))

			pair := grid.R(1, 1, 2, 1)
			want := st.StyleOver(pair, Intersects)
			require.Zero(t, want.Indentation())

			st.CollectGarbage()
			require.Equal(t, 2, st.Stats().Entries)
			require.Equal(t, want, st.StyleOver(pair, Intersects))
		})
	}
}

func TestStorage_GarbageCollectionDropsResetsAtSheetBottom(t *testing.T) {
	st := newSmall(t, grid.CopyNone)
	require.NoError(t, st.InsertSubStyle(region(grid.R(1, 1, 1, 1)), substyle.Default()))
	require.NoError(t, st.InsertSubStyle(region(grid.R(2, 1, 2, 1)), substyle.Indent(0)))
	require.NoError(t, st.InsertSubStyle(region(grid.R(3, 3, 3, 3)), bold))
	over := summaries(st)

	st.CollectGarbage()
	require.Equal(t, 1, st.Stats().Entries)
	require.Equal(t, over, summaries(st))
}

func TestStorage_GCSuspendedWhileLoading(t *testing.T) {
	st := newSmall(t, grid.CopyNone)
	loading := true
	st.SetLoading(func() bool { return loading })

	require.NoError(t, st.InsertSubStyle(region(grid.R(1, 1, 1, 1)), substyle.Named("Nope")))
	require.False(t, st.Tick())
	require.False(t, st.RunGCStep())
	require.Zero(t, st.Stats().GCPending)

	loading = false
	require.NoError(t, st.InsertSubStyle(region(grid.R(2, 2, 2, 2)), substyle.Named("Nope")))
	require.Equal(t, 1, st.Stats().GCPending)
	require.True(t, st.RunGCStep())
	require.Equal(t, 1, st.Stats().Entries)
}

func TestStorage_Load(t *testing.T) {
	st := newSmall(t, grid.CopyNone)
	require.NoError(t, st.InsertSubStyle(region(grid.R(9, 9, 9, 9)), italic))

	heading := compose.NewStyle(bold, substyle.Int(substyle.FontSize, 14))
	require.NoError(t, st.Load([]RegionStyle{
		{Region: region(grid.Rows(1, 1, smallLim)), Style: heading},
		{Region: region(grid.R(2, 1, 2, 1)), Style: st.DefaultStyle()},
	}))

	require.Zero(t, st.Stats().GCPending, "load does not feed the collector")
	require.Equal(t, st.DefaultStyle(), st.StyleAt(9, 9))
	require.True(t, st.StyleAt(1, 1).Bold())
	require.Equal(t, st.DefaultStyle(), st.StyleAt(2, 1))
	require.Equal(t, []grid.Span{{Lo: 1, Hi: 1}}, st.WholeRows())

	err := st.LoadSubStyles([]Pair{{Rect: grid.R(1, 1, 99, 1), Value: bold}})
	require.ErrorIs(t, err, types.ErrOutOfBounds)
}

func TestStorage_LoadSubStylesRoundTripsUndoData(t *testing.T) {
	st := newSmall(t, grid.CopyNone)
	roundTripFixture(t, st)
	before := snapshot(st)

	pairs := st.UndoData(region(grid.Whole(st.Limits())))
	other := newSmall(t, grid.CopyNone)
	require.NoError(t, other.LoadSubStyles(pairs))
	require.Equal(t, before, snapshot(other))
}

func TestStorage_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	opts := DefaultOptions()
	opts.MaxColumn, opts.MaxRow = smallLim.MaxColumn, smallLim.MaxRow
	opts.Metrics = metrics.New(reg)
	st, err := New(newManager(), opts)
	require.NoError(t, err)

	require.NoError(t, st.InsertSubStyle(region(grid.R(1, 1, 1, 1)), bold))
	st.StyleAt(1, 1)
	st.StyleAt(1, 1)
	st.StyleAt(5, 5)
	_, err = st.InsertRows(1, 1)
	require.NoError(t, err)
	st.CollectGarbage()

	m := opts.Metrics
	require.Equal(t, 1.0, testutil.ToFloat64(m.Lookups.WithLabelValues("miss")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.Lookups.WithLabelValues("hit")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.Lookups.WithLabelValues("fast_reject")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.Edits.WithLabelValues("insert_rows")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.Entries))
}
