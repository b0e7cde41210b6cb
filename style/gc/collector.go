package gc

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/joshuapare/stylekit/pkg/grid"
	"github.com/joshuapare/stylekit/style/compose"
	"github.com/joshuapare/stylekit/style/rangeindex"
	"github.com/joshuapare/stylekit/style/substyle"
)

// State is the collector's scheduling state.
type State int

const (
	// Idle means the queue is empty.
	Idle State = iota
	// Scheduled means candidates are waiting for the next step.
	Scheduled
	// Running means a step is in progress.
	Running
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Scheduled:
		return "scheduled"
	case Running:
		return "running"
	}
	return "unknown"
}

// Rule identifies why a candidate was deleted.
type Rule int

const (
	// Kept means the candidate survived.
	Kept Rule = iota
	Dangling
	DefaultAtBottom
	NeutralAtBottom
	Shadowed
)

func (r Rule) String() string {
	switch r {
	case Kept:
		return "kept"
	case Dangling:
		return "dangling"
	case DefaultAtBottom:
		return "default-at-bottom"
	case NeutralAtBottom:
		return "neutral-at-bottom"
	case Shadowed:
		return "shadowed"
	}
	return "unknown"
}

// Target is the index the collector works on.
type Target interface {
	// Intersecting returns the entries overlapping r in ascending z order.
	Intersecting(r grid.Rect) []rangeindex.Entry
	// Bottom returns the lowest-z entry of the whole sheet.
	Bottom() (rangeindex.Entry, bool)
	// Exists reports whether e is still stored unchanged.
	Exists(e rangeindex.Entry) bool
	// Delete removes e.
	Delete(e rangeindex.Entry) bool
	// Manager resolves named-style references.
	Manager() compose.StyleManager
}

// Stats counts collector activity since creation.
type Stats struct {
	Enqueued int64
	Steps    int64
	Deleted  int64
}

// Collector is the deferred garbage collector of one Storage.
//
// NOT thread-safe. It is driven by the same goroutine as its Storage.
type Collector struct {
	target   Target
	queue    []rangeindex.Entry
	queued   map[rangeindex.Entry]struct{}
	state    State
	limiter  *rate.Limiter
	loading  func() bool
	onDelete func(Rule, rangeindex.Entry)
	stats    Stats
}

// New creates an idle collector. Tick runs at most one step per delay; a
// delay of zero or less leaves Tick unthrottled.
func New(target Target, delay time.Duration) *Collector {
	limit := rate.Inf
	if delay > 0 {
		limit = rate.Every(delay)
	}
	return &Collector{
		target:  target,
		queued:  make(map[rangeindex.Entry]struct{}),
		limiter: rate.NewLimiter(limit, 1),
		loading: func() bool { return false },
	}
}

// SetLoading installs the document's bulk-load predicate. While it reports
// true the collector neither queues nor processes candidates. nil restores
// the default of never loading.
func (c *Collector) SetLoading(fn func() bool) {
	if fn == nil {
		fn = func() bool { return false }
	}
	c.loading = fn
}

// OnDelete registers a callback invoked after every deletion.
func (c *Collector) OnDelete(fn func(Rule, rangeindex.Entry)) { c.onDelete = fn }

// Enqueue appends candidates, ignoring ones already queued.
func (c *Collector) Enqueue(candidates ...rangeindex.Entry) {
	if c.loading() {
		return
	}
	for _, e := range candidates {
		if e.IsZero() {
			continue
		}
		if _, dup := c.queued[e]; dup {
			continue
		}
		c.queued[e] = struct{}{}
		c.queue = append(c.queue, e)
		c.stats.Enqueued++
	}
	if len(c.queue) > 0 && c.state == Idle {
		c.state = Scheduled
	}
}

// Step processes exactly one candidate and reports whether there was one.
func (c *Collector) Step() bool {
	if len(c.queue) == 0 || c.loading() {
		return false
	}
	e := c.queue[0]
	c.queue[0] = rangeindex.Entry{}
	c.queue = c.queue[1:]
	delete(c.queued, e)

	c.state = Running
	c.stats.Steps++
	if rule := c.classify(e); rule != Kept && c.target.Delete(e) {
		c.stats.Deleted++
		if c.onDelete != nil {
			c.onDelete(rule, e)
		}
	}

	if len(c.queue) == 0 {
		c.queue = nil
		c.state = Idle
	} else {
		c.state = Scheduled
	}
	return true
}

// Tick is the host's idle hook: it runs one step if work is pending and the
// throttle delay has elapsed since the previous tick step.
func (c *Collector) Tick() bool {
	if len(c.queue) == 0 || c.loading() || !c.limiter.Allow() {
		return false
	}
	return c.Step()
}

// Drain steps until the queue is empty and returns the number of steps.
func (c *Collector) Drain() int {
	n := 0
	for c.Step() {
		n++
	}
	return n
}

// Clear discards every pending candidate.
func (c *Collector) Clear() {
	c.queue = nil
	clear(c.queued)
	c.state = Idle
}

// Pending returns the number of queued candidates.
func (c *Collector) Pending() int { return len(c.queue) }

// State returns the scheduling state.
func (c *Collector) State() State { return c.state }

// Stats returns the activity counters.
func (c *Collector) Stats() Stats { return c.stats }

// Classify reports which rule, if any, makes e redundant right now.
func (c *Collector) Classify(e rangeindex.Entry) Rule { return c.classify(e) }

func (c *Collector) classify(e rangeindex.Entry) Rule {
	if !c.target.Exists(e) {
		return Kept
	}
	mgr := c.target.Manager()
	v := e.Value

	if v.Kind() == substyle.NamedStyle {
		if _, ok := mgr.Resolve(v.Text()); !ok {
			return Dangling
		}
	}

	// Intersects queries compose entries from anywhere in their rect, so a
	// reset is inert only below every entry of the sheet.
	bottom, _ := c.target.Bottom()
	atBottom := bottom.Z >= e.Z

	switch {
	case v.Kind() == substyle.KindDefault && atBottom:
		return DefaultAtBottom
	case v.IsNeutralDelta() && atBottom:
		return NeutralAtBottom
	}

	for _, later := range c.target.Intersecting(e.Rect) {
		if later.Z <= e.Z || !later.Rect.ContainsRect(e.Rect) {
			continue
		}
		if shadows(mgr, later.Value, v) {
			return Shadowed
		}
	}
	return Kept
}

// shadows reports whether applying later after cand makes cand irrelevant.
func shadows(mgr compose.StyleManager, later, cand substyle.SubStyle) bool {
	lk, ck := later.Kind(), cand.Kind()
	if lk == substyle.KindDefault {
		return true
	}
	switch ck {
	case substyle.KindDefault, substyle.NamedStyle, substyle.Indentation, substyle.KindPrecision:
		return false
	}
	switch lk {
	case ck:
		return true
	case substyle.NamedStyle:
		ns, ok := mgr.Resolve(later.Text())
		return ok && ns.Style().Has(ck)
	}
	return false
}
