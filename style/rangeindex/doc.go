// Package rangeindex maps axis-aligned rectangles to interned substyles,
// ordered by insertion.
//
// Every entry carries a z-index assigned from a counter that only grows, so
// later insertions override earlier ones when the Composer walks a cell's
// stack. Structural edits may split one entry into several disjoint pieces;
// the pieces keep the original z-index.
//
// # Layout
//
// Entries are bucketed by row span in a hierarchy of aligned row blocks.
// Level k groups rows into blocks of 2^k rows, and an entry lives at the
// lowest level where its top and bottom rows fall in the same block:
//
//	level 0: blocks of 1 row      (single-row entries)
//	level 1: blocks of 2 rows
//	...
//	level 20: one block covering rows 1..1048576 (whole-column entries)
//
// Each level is a google/btree of buckets keyed by block number. A point
// query visits one bucket per level; a rectangle query ascends the block
// range of each level. A second btree keeps every entry in (z, id) order for
// enumeration and exact deletes.
//
// # Thread Safety
//
// Index is NOT thread-safe. It is owned by a single Storage and driven from
// one goroutine.
package rangeindex
