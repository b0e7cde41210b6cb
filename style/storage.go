package style

import (
	"slices"

	"github.com/joshuapare/stylekit/internal/logger"
	"github.com/joshuapare/stylekit/pkg/grid"
	"github.com/joshuapare/stylekit/pkg/types"
	"github.com/joshuapare/stylekit/style/compose"
	"github.com/joshuapare/stylekit/style/gc"
	"github.com/joshuapare/stylekit/style/metrics"
	"github.com/joshuapare/stylekit/style/pointcache"
	"github.com/joshuapare/stylekit/style/rangeindex"
	"github.com/joshuapare/stylekit/style/substyle"
	"github.com/joshuapare/stylekit/style/usedarea"
)

// Pair is a rect/substyle pair as returned by UndoData and structural edits.
// A zero Value marks a band to reset.
type Pair = rangeindex.Pair

// RegionStyle assigns one style to a region, as consumed by Load.
type RegionStyle struct {
	Region grid.Region
	Style  compose.Style
}

// QueryMode selects how StyleOver treats entries that cover only part of
// the rect.
type QueryMode int

const (
	// Contains composes only entries that cover the whole rect, yielding the
	// style shared by every cell.
	Contains QueryMode = iota
	// Intersects composes every entry touching the rect.
	Intersects
)

// Storage is the style storage of one sheet.
type Storage struct {
	opts     Options
	lim      types.Limits
	mgr      compose.StyleManager
	composer *compose.Composer
	index    *rangeindex.Index
	used     *usedarea.Tracker
	cache    *pointcache.Cache
	gc       *gc.Collector
	metrics  *metrics.Collector
}

// New creates an empty storage. A nil opts selects DefaultOptions.
func New(mgr compose.StyleManager, opts *Options) (*Storage, error) {
	if mgr == nil {
		return nil, types.ErrNoStyleManager
	}
	if opts == nil {
		opts = DefaultOptions()
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	lim := opts.Limits()
	s := &Storage{
		opts:     *opts,
		lim:      lim,
		mgr:      mgr,
		composer: compose.New(mgr, opts.MaxParentDepth),
		index:    rangeindex.New(lim, substyle.NewRegistry()),
		used:     usedarea.New(lim),
		cache:    pointcache.New(opts.CacheCapacity),
		metrics:  opts.Metrics,
	}
	s.gc = gc.New(gcTarget{s}, opts.GCDelay)
	s.gc.OnDelete(s.collected)
	return s, nil
}

// Limits returns the sheet bounds.
func (s *Storage) Limits() types.Limits { return s.lim }

// Options returns a copy of the options the storage was created with.
func (s *Storage) Options() Options { return s.opts }

// Manager returns the style manager named styles are resolved with.
func (s *Storage) Manager() compose.StyleManager { return s.mgr }

// DefaultStyle returns the document default style.
func (s *Storage) DefaultStyle() compose.Style { return s.composer.Default() }

// StyleAt returns the composed style of one cell. Cells outside the grid
// have the default style.
func (s *Storage) StyleAt(col, row int) compose.Style {
	p := grid.Pt(col, row)
	if !s.lim.ContainsColumn(col) || !s.lim.ContainsRow(row) || s.used.FastRejectsAsDefault(p) {
		s.metrics.Lookup("fast_reject")
		return s.composer.Default()
	}
	if st, ok := s.cache.Get(p); ok {
		s.metrics.Lookup("hit")
		return st
	}
	s.metrics.Lookup("miss")
	st := s.composer.Compose(values(s.index.PointEntries(p)))
	s.cache.Put(p, st)
	return st
}

// StyleOver returns the composed style over rect. In Contains mode only
// entries covering all of rect take part; in Intersects mode every entry
// touching it does. The rect is clipped to the grid.
func (s *Storage) StyleOver(rect grid.Rect, mode QueryMode) compose.Style {
	rect = rect.Intersect(grid.Whole(s.lim))
	if rect.IsEmpty() || !s.used.MayIntersect(rect) {
		return s.composer.Default()
	}
	var entries []rangeindex.Entry
	if mode == Intersects {
		entries = s.index.Intersecting(rect)
	} else {
		entries = s.index.Containing(rect)
	}
	return s.composer.Compose(values(entries))
}

// UndoData returns the stored pairs intersecting region, clipped to it and
// ordered by z-index.
func (s *Storage) UndoData(region grid.Region) []Pair {
	var out []Pair
	for _, r := range region {
		out = append(out, s.index.IntersectingPairs(r)...)
	}
	slices.SortStableFunc(out, func(a, b Pair) int {
		switch {
		case a.Z < b.Z:
			return -1
		case a.Z > b.Z:
			return 1
		}
		return 0
	})
	return out
}

// UsedArea returns the bounding rect of everything that may be styled.
func (s *Storage) UsedArea() grid.Rect { return s.used.UsedArea() }

// NextColumnStyleIndex returns the first column after col with a
// whole-column style, or 0.
func (s *Storage) NextColumnStyleIndex(col int) int { return s.used.NextColumnStyleIndex(col) }

// NextRowStyleIndex returns the first row after row with a whole-row style,
// or 0.
func (s *Storage) NextRowStyleIndex(row int) int { return s.used.NextRowStyleIndex(row) }

// FirstColumnIndexInRow returns the first column of row with a cell-level
// style, or 0.
func (s *Storage) FirstColumnIndexInRow(row int) int { return s.used.FirstColumnIndexInRow(row) }

// NextColumnIndexInRow returns the first column after col in row with a
// cell-level style, or 0.
func (s *Storage) NextColumnIndexInRow(col, row int) int {
	return s.used.NextColumnIndexInRow(col, row)
}

// WholeColumns returns the spans of columns carrying whole-column styles.
func (s *Storage) WholeColumns() []grid.Span { return s.used.WholeColumns() }

// WholeRows returns the spans of rows carrying whole-row styles.
func (s *Storage) WholeRows() []grid.Span { return s.used.WholeRows() }

// Insert applies style over region. A default style resets the region.
func (s *Storage) Insert(region grid.Region, st compose.Style) error {
	if err := s.validate(region); err != nil {
		return err
	}
	subs := st.SubStyles()
	for _, r := range region {
		for _, sub := range subs {
			s.insert(r, sub)
		}
	}
	s.publishSize()
	return nil
}

// InsertSubStyle applies one substyle over region.
func (s *Storage) InsertSubStyle(region grid.Region, sub substyle.SubStyle) error {
	if sub.IsZero() {
		return nil
	}
	if err := s.validate(region); err != nil {
		return err
	}
	for _, r := range region {
		s.insert(r, sub)
	}
	s.publishSize()
	return nil
}

func (s *Storage) validate(region grid.Region) error {
	for _, r := range region {
		if err := r.Validate(s.lim); err != nil {
			return err
		}
	}
	return nil
}

func (s *Storage) insert(r grid.Rect, sub substyle.SubStyle) {
	prior := s.index.Intersecting(r)
	e := s.index.Insert(r, sub)
	s.used.Insert(r, sub.Kind() == substyle.KindDefault)
	s.cache.Invalidate(r)
	s.gc.Enqueue(prior...)
	s.gc.Enqueue(e)
}

// ApplyUndo replays pairs in order: zero-valued pairs reset their rect with
// a Default marker, the others are inserted again.
func (s *Storage) ApplyUndo(pairs []Pair) error {
	for _, p := range pairs {
		if err := p.Rect.Validate(s.lim); err != nil {
			return err
		}
	}
	for _, p := range pairs {
		sub := p.Value
		if sub.IsZero() {
			sub = substyle.Default()
		}
		s.insert(p.Rect, sub)
	}
	s.publishSize()
	return nil
}

// Load replaces the whole content. Later items override earlier ones. The
// garbage collector queue is discarded and load does not feed it.
func (s *Storage) Load(items []RegionStyle) error {
	var pairs []Pair
	for _, it := range items {
		subs := it.Style.SubStyles()
		for _, r := range it.Region {
			for _, sub := range subs {
				pairs = append(pairs, Pair{Rect: r, Value: sub, Z: uint64(len(pairs) + 1)})
			}
		}
	}
	return s.LoadSubStyles(pairs)
}

// LoadSubStyles replaces the whole content with pairs, ordered by Z.
func (s *Storage) LoadSubStyles(pairs []Pair) error {
	for _, p := range pairs {
		if err := p.Rect.Validate(s.lim); err != nil {
			return err
		}
	}
	s.gc.Clear()
	s.cache.InvalidateAll()
	s.used.Reset()
	s.index.Load(pairs)
	for _, e := range s.index.Entries() {
		s.used.Insert(e.Rect, e.Value.Kind() == substyle.KindDefault)
	}
	s.publishSize()
	logger.Info("style storage loaded", "entries", s.index.Len(), "used_area", s.used.UsedArea().String())
	return nil
}

// InvalidateCache drops cached cell styles inside rects, or all of them
// when no rect is given.
func (s *Storage) InvalidateCache(rects ...grid.Rect) {
	if len(rects) == 0 {
		s.cache.InvalidateAll()
		return
	}
	for _, r := range rects {
		s.cache.Invalidate(r)
	}
}

// Stats is a snapshot of the storage's internal sizes and counters.
type Stats struct {
	Entries       int
	Buckets       int
	LiveSubStyles int
	CachedPoints  int
	Cache         pointcache.Stats
	GCPending     int
	GCState       gc.State
	GC            gc.Stats
}

// Stats returns a snapshot of sizes and counters.
func (s *Storage) Stats() Stats {
	ix := s.index.Stats()
	return Stats{
		Entries:       ix.Entries,
		Buckets:       ix.Buckets,
		LiveSubStyles: s.index.Registry().Live(),
		CachedPoints:  s.cache.Len(),
		Cache:         s.cache.Stats(),
		GCPending:     s.gc.Pending(),
		GCState:       s.gc.State(),
		GC:            s.gc.Stats(),
	}
}

// Entries returns every stored entry in z order.
func (s *Storage) Entries() []rangeindex.Entry { return s.index.Entries() }

func (s *Storage) publishSize() {
	s.metrics.SetSize(s.index.Len(), s.index.Registry().Live())
}

func values(entries []rangeindex.Entry) []substyle.SubStyle {
	if len(entries) == 0 {
		return nil
	}
	out := make([]substyle.SubStyle, len(entries))
	for i, e := range entries {
		out[i] = e.Value
	}
	return out
}
