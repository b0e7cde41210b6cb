package rangeindex

import (
	"math/bits"
	"slices"

	"github.com/google/btree"

	"github.com/joshuapare/stylekit/pkg/grid"
	"github.com/joshuapare/stylekit/pkg/types"
	"github.com/joshuapare/stylekit/style/substyle"
)

// AnyZ matches every z-index in Remove. Real z-indices start at 1.
const AnyZ uint64 = 0

const btreeDegree = 16

// Entry is one stored (rect, substyle) assignment.
type Entry struct {
	Rect  grid.Rect
	Value substyle.SubStyle
	Z     uint64

	id uint64 // distinguishes pieces split from the same insertion
}

// Pair returns the entry as an undo/data pair.
func (e Entry) Pair() Pair { return Pair{Rect: e.Rect, Value: e.Value, Z: e.Z} }

// IsZero reports whether e is the zero Entry returned for rejected inserts.
func (e Entry) IsZero() bool { return e.id == 0 }

// Pair is a rect/substyle pair as produced by undo extraction and consumed by
// Load. A zero Value marks a band that must be reset.
type Pair struct {
	Rect  grid.Rect
	Value substyle.SubStyle
	Z     uint64
}

type bucket struct {
	block   int
	entries []*Entry
}

func bucketLess(a, b *bucket) bool { return a.block < b.block }

func entryLess(a, b *Entry) bool {
	if a.Z != b.Z {
		return a.Z < b.Z
	}
	return a.id < b.id
}

// Index is the range index for one sheet.
type Index struct {
	lim    types.Limits
	reg    *substyle.Registry
	levels []*btree.BTreeG[*bucket]
	byZ    *btree.BTreeG[*Entry]
	nextZ  uint64
	nextID uint64
}

// New creates an empty index for a grid of the given limits. Stored values
// are retained in reg; a nil reg gets a private registry.
func New(lim types.Limits, reg *substyle.Registry) *Index {
	if reg == nil {
		reg = substyle.NewRegistry()
	}
	return &Index{
		lim:    lim,
		reg:    reg,
		levels: make([]*btree.BTreeG[*bucket], bits.Len(uint(lim.MaxRow))+1),
		byZ:    btree.NewG(btreeDegree, entryLess),
	}
}

// Limits returns the grid bounds the index was created with.
func (ix *Index) Limits() types.Limits { return ix.lim }

// Registry returns the registry holding the stored values.
func (ix *Index) Registry() *substyle.Registry { return ix.reg }

// Len returns the number of stored entries.
func (ix *Index) Len() int { return ix.byZ.Len() }

// Insert stores value over rect with the next z-index. Empty rects and the
// zero substyle are ignored and yield the zero Entry.
func (ix *Index) Insert(rect grid.Rect, value substyle.SubStyle) Entry {
	if rect.IsEmpty() || value.IsZero() {
		return Entry{}
	}
	ix.nextZ++
	e := ix.newEntry(rect, value, ix.nextZ)
	return *e
}

func (ix *Index) newEntry(rect grid.Rect, value substyle.SubStyle, z uint64) *Entry {
	ix.nextID++
	e := &Entry{Rect: rect, Value: value, Z: z, id: ix.nextID}
	ix.attach(e)
	return e
}

func levelOf(r grid.Rect) int {
	return bits.Len(uint(r.Top-1) ^ uint(r.Bottom-1))
}

func (ix *Index) attach(e *Entry) {
	k := levelOf(e.Rect)
	for len(ix.levels) <= k {
		ix.levels = append(ix.levels, nil)
	}
	tree := ix.levels[k]
	if tree == nil {
		tree = btree.NewG(btreeDegree, bucketLess)
		ix.levels[k] = tree
	}
	block := (e.Rect.Top - 1) >> k
	b, ok := tree.Get(&bucket{block: block})
	if !ok {
		b = &bucket{block: block}
		tree.ReplaceOrInsert(b)
	}
	b.entries = append(b.entries, e)
	ix.byZ.ReplaceOrInsert(e)
	ix.reg.Retain(e.Value)
}

func (ix *Index) detach(e *Entry) {
	k := levelOf(e.Rect)
	tree := ix.levels[k]
	key := &bucket{block: (e.Rect.Top - 1) >> k}
	if b, ok := tree.Get(key); ok {
		if i := slices.Index(b.entries, e); i >= 0 {
			last := len(b.entries) - 1
			b.entries[i] = b.entries[last]
			b.entries[last] = nil
			b.entries = b.entries[:last]
		}
		if len(b.entries) == 0 {
			tree.Delete(key)
		}
	}
	ix.byZ.Delete(e)
	ix.reg.Release(e.Value)
}

// PointEntries returns the entries covering p in ascending z order.
func (ix *Index) PointEntries(p grid.Point) []Entry {
	var hits []*Entry
	key := &bucket{}
	for k, tree := range ix.levels {
		if tree == nil || tree.Len() == 0 {
			continue
		}
		key.block = (p.Row - 1) >> k
		b, ok := tree.Get(key)
		if !ok {
			continue
		}
		for _, e := range b.entries {
			if e.Rect.Contains(p) {
				hits = append(hits, e)
			}
		}
	}
	return sorted(hits)
}

// Containing returns the entries whose rect fully contains rect, in
// ascending z order.
func (ix *Index) Containing(rect grid.Rect) []Entry {
	if rect.IsEmpty() {
		return nil
	}
	entries := ix.PointEntries(grid.Pt(rect.Left, rect.Top))
	out := entries[:0]
	for _, e := range entries {
		if e.Rect.ContainsRect(rect) {
			out = append(out, e)
		}
	}
	return out
}

// Intersecting returns the entries overlapping rect in ascending z order.
func (ix *Index) Intersecting(rect grid.Rect) []Entry {
	return sorted(ix.intersecting(rect))
}

func (ix *Index) intersecting(rect grid.Rect) []*Entry {
	if rect.IsEmpty() {
		return nil
	}
	var hits []*Entry
	for k, tree := range ix.levels {
		if tree == nil || tree.Len() == 0 {
			continue
		}
		lo := &bucket{block: (rect.Top - 1) >> k}
		hi := &bucket{block: (rect.Bottom-1)>>k + 1}
		tree.AscendRange(lo, hi, func(b *bucket) bool {
			for _, e := range b.entries {
				if e.Rect.Intersects(rect) {
					hits = append(hits, e)
				}
			}
			return true
		})
	}
	return hits
}

// IntersectingPairs returns the entries overlapping rect clipped to it, in
// ascending z order.
func (ix *Index) IntersectingPairs(rect grid.Rect) []Pair {
	entries := ix.Intersecting(rect)
	if len(entries) == 0 {
		return nil
	}
	pairs := make([]Pair, len(entries))
	for i, e := range entries {
		pairs[i] = Pair{Rect: e.Rect.Intersect(rect), Value: e.Value, Z: e.Z}
	}
	return pairs
}

// Exists reports whether e is still stored unchanged.
func (ix *Index) Exists(e Entry) bool {
	_, ok := ix.lookup(e)
	return ok
}

func (ix *Index) lookup(e Entry) (*Entry, bool) {
	if e.IsZero() {
		return nil, false
	}
	p, ok := ix.byZ.Get(&e)
	if !ok || p.Rect != e.Rect || p.Value != e.Value {
		return nil, false
	}
	return p, true
}

// Delete removes exactly e and reports whether it was present.
func (ix *Index) Delete(e Entry) bool {
	p, ok := ix.lookup(e)
	if !ok {
		return false
	}
	ix.detach(p)
	return true
}

// Remove deletes one entry with exactly rect and value. A z of AnyZ removes
// the lowest-z match; any other z must match exactly.
func (ix *Index) Remove(rect grid.Rect, value substyle.SubStyle, z uint64) bool {
	for _, e := range ix.Containing(rect) {
		if e.Rect == rect && e.Value == value && (z == AnyZ || e.Z == z) {
			return ix.Delete(e)
		}
	}
	return false
}

// Bottom returns the entry with the lowest z-index, or false when the index
// is empty.
func (ix *Index) Bottom() (Entry, bool) {
	e, ok := ix.byZ.Min()
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// Entries returns every entry in ascending z order.
func (ix *Index) Entries() []Entry {
	out := make([]Entry, 0, ix.byZ.Len())
	ix.byZ.Ascend(func(e *Entry) bool {
		out = append(out, *e)
		return true
	})
	return out
}

// Reset drops every entry. The z counter keeps counting so stale entries
// held by callers never match new ones.
func (ix *Index) Reset() {
	ix.byZ.Ascend(func(e *Entry) bool {
		ix.reg.Release(e.Value)
		return true
	})
	ix.byZ.Clear(false)
	for k := range ix.levels {
		ix.levels[k] = nil
	}
}

// Load replaces the whole content with pairs. Pairs are stored in ascending
// Z order (input order among equal Z) under fresh z-indices. Empty rects and
// zero values are skipped.
func (ix *Index) Load(pairs []Pair) {
	ix.Reset()
	ordered := slices.Clone(pairs)
	slices.SortStableFunc(ordered, func(a, b Pair) int {
		switch {
		case a.Z < b.Z:
			return -1
		case a.Z > b.Z:
			return 1
		}
		return 0
	})
	for _, p := range ordered {
		ix.Insert(p.Rect, p.Value)
	}
}

// Stats describes the index layout.
type Stats struct {
	Entries int
	Buckets int
	Levels  int
}

// Stats returns entry and bucket counts.
func (ix *Index) Stats() Stats {
	s := Stats{Entries: ix.byZ.Len()}
	for _, tree := range ix.levels {
		if tree != nil && tree.Len() > 0 {
			s.Levels++
			s.Buckets += tree.Len()
		}
	}
	return s
}

func sorted(hits []*Entry) []Entry {
	if len(hits) == 0 {
		return nil
	}
	slices.SortFunc(hits, func(a, b *Entry) int {
		switch {
		case entryLess(a, b):
			return -1
		case entryLess(b, a):
			return 1
		}
		return 0
	})
	out := make([]Entry, len(hits))
	for i, e := range hits {
		out[i] = *e
	}
	return out
}
