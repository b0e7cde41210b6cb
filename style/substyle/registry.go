package substyle

// Registry counts how many range-index entries reference each SubStyle.
//
// Storage of the values themselves belongs to the unique package: a value
// stays alive while any handle to it is reachable and is reclaimed by the Go
// garbage collector afterwards. The registry's table is the explicit
// reference count the index maintains on insert and remove, which lets the
// storage report how many distinct values are live and lets tests check
// that every entry removal released its value.
//
// NOT thread-safe. Only one goroutine should use it at a time.
type Registry struct {
	refs map[SubStyle]int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{refs: make(map[SubStyle]int)}
}

// Intern returns the shared instance for v and registers no reference.
func (r *Registry) Intern(v Value) SubStyle { return Intern(v) }

// Retain records one more referrer of s. The zero SubStyle is ignored.
func (r *Registry) Retain(s SubStyle) {
	if s.IsZero() {
		return
	}
	r.refs[s]++
}

// Release drops one referrer of s and forgets s when none remain.
func (r *Registry) Release(s SubStyle) {
	n, ok := r.refs[s]
	if !ok {
		return
	}
	if n <= 1 {
		delete(r.refs, s)
		return
	}
	r.refs[s] = n - 1
}

// RefCount returns the number of referrers of s.
func (r *Registry) RefCount(s SubStyle) int { return r.refs[s] }

// Live returns the number of distinct values with at least one referrer.
func (r *Registry) Live() int { return len(r.refs) }

// Reset forgets every reference.
func (r *Registry) Reset() { clear(r.refs) }
