// Package pointcache memoizes composed styles per cell.
//
// The cache is a fixed-capacity LRU keyed by grid point. Alongside the
// entries it keeps the bounding rect of every cached point, so invalidating
// a rect that misses the bounds costs nothing and invalidating one that
// covers them drops the whole cache in one step.
//
// Concurrency: none. The cache belongs to one Storage and is driven from
// the goroutine that owns it.
package pointcache

import (
	"container/list"

	"github.com/joshuapare/stylekit/pkg/grid"
	"github.com/joshuapare/stylekit/style/compose"
)

// DefaultCapacity is the number of points cached when no capacity is given.
const DefaultCapacity = 10000

type cacheEntry struct {
	point grid.Point
	style compose.Style
}

// Stats counts cache traffic since creation.
type Stats struct {
	Hits        int64
	Misses      int64
	Evictions   int64
	Invalidated int64
}

// Cache is an LRU cache of composed styles.
type Cache struct {
	capacity int
	items    map[grid.Point]*list.Element
	order    *list.List // front = most recently used
	bounds   grid.Rect  // tight after Invalidate; evictions may leave it larger
	stats    Stats
}

// New creates a cache holding at most capacity points. A capacity of 0
// disables caching.
func New(capacity int) *Cache {
	capacity = max(capacity, 0)
	return &Cache{
		capacity: capacity,
		items:    make(map[grid.Point]*list.Element, min(capacity, 1024)),
		order:    list.New(),
	}
}

// Get returns the cached style at p.
func (c *Cache) Get(p grid.Point) (compose.Style, bool) {
	elem, ok := c.items[p]
	if !ok {
		c.stats.Misses++
		return compose.Style{}, false
	}
	c.stats.Hits++
	c.order.MoveToFront(elem)
	return elem.Value.(*cacheEntry).style, true
}

// Put caches style at p, evicting the least-recently-used point when full.
func (c *Cache) Put(p grid.Point, style compose.Style) {
	if c.capacity == 0 {
		return
	}
	if elem, ok := c.items[p]; ok {
		c.order.MoveToFront(elem)
		elem.Value.(*cacheEntry).style = style
		return
	}
	if c.order.Len() >= c.capacity {
		if back := c.order.Back(); back != nil {
			evicted := c.order.Remove(back).(*cacheEntry)
			delete(c.items, evicted.point)
			c.stats.Evictions++
		}
	}
	c.items[p] = c.order.PushFront(&cacheEntry{point: p, style: style})
	c.bounds = c.bounds.Union(grid.Cell(p))
}

// Invalidate drops every cached point inside r.
func (c *Cache) Invalidate(r grid.Rect) {
	x := r.Intersect(c.bounds)
	if x.IsEmpty() {
		return
	}
	if r.ContainsRect(c.bounds) {
		c.InvalidateAll()
		return
	}

	if x.Area() < int64(len(c.items)) {
		edge := false
		for row := x.Top; row <= x.Bottom; row++ {
			for col := x.Left; col <= x.Right; col++ {
				if c.drop(grid.Pt(col, row)) && onEdge(c.bounds, grid.Pt(col, row)) {
					edge = true
				}
			}
		}
		if edge {
			c.shrink()
		}
	} else {
		for p := range c.items {
			if x.Contains(p) {
				c.drop(p)
			}
		}
		c.shrink()
	}
}

// shrink recomputes the bounds from the remaining points.
func (c *Cache) shrink() {
	var bounds grid.Rect
	for p := range c.items {
		bounds = bounds.Union(grid.Cell(p))
	}
	c.bounds = bounds
}

func onEdge(r grid.Rect, p grid.Point) bool {
	return p.Column == r.Left || p.Column == r.Right || p.Row == r.Top || p.Row == r.Bottom
}

func (c *Cache) drop(p grid.Point) bool {
	elem, ok := c.items[p]
	if !ok {
		return false
	}
	c.order.Remove(elem)
	delete(c.items, p)
	c.stats.Invalidated++
	return true
}

// InvalidateAll clears the cache.
func (c *Cache) InvalidateAll() {
	c.stats.Invalidated += int64(len(c.items))
	clear(c.items)
	c.order.Init()
	c.bounds = grid.Rect{}
}

// Len returns the number of cached points.
func (c *Cache) Len() int { return c.order.Len() }

// Capacity returns the maximum number of cached points.
func (c *Cache) Capacity() int { return c.capacity }

// CachedBounds returns a rect covering every cached point. It is empty when
// the cache is.
func (c *Cache) CachedBounds() grid.Rect { return c.bounds }

// Stats returns the traffic counters.
func (c *Cache) Stats() Stats { return c.stats }
