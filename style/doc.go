// Package style is the per-sheet style storage of a spreadsheet.
//
// A Storage keeps sparse, possibly overlapping style assignments over a
// grid of up to MaxColumn x MaxRow cells and answers "which style applies
// here" for single cells and rectangles. It ties together:
//
//   - substyle: interned atomic attribute values
//   - rangeindex: rect -> substyle entries ordered by z-index
//   - compose: the override / accumulate / reset composition rules
//   - usedarea: the "certainly default" fast path
//   - pointcache: memoized per-cell results
//   - gc: deferred removal of redundant entries
//
// # Usage
//
//	mgr := namedstyle.NewManager()
//	st, err := style.New(mgr, nil)
//	if err != nil {
//		return err
//	}
//	bold := compose.NewStyle(substyle.Bool(substyle.Bold, true))
//	if err := st.Insert(grid.NewRegion(grid.Rows(1, 1, st.Limits())), bold); err != nil {
//		return err
//	}
//	st.StyleAt(5000, 1).Bold() // true
//
//	undo, err := st.InsertRows(3, 2)
//
// # Garbage collection
//
// Mutations queue candidates but never collect. The host calls Tick from its
// idle loop (throttled by Options.GCDelay), RunGCStep to force one step, or
// CollectGarbage to run to quiescence. Collection never changes a query
// result.
//
// # Thread Safety
//
// Storage is NOT thread-safe. A sheet and its storage are driven from one
// goroutine.
package style
