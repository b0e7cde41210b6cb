// Package compose turns the z-ordered substyles covering a cell into the
// effective Style.
//
// Layers are applied in ascending z-index order over an accumulator that
// starts out as the document default style:
//
//   - Default marker: hard reset of the accumulator to the document default.
//   - Named-style reference: the style's ancestors (root first) fill in what
//     the layers below did not set explicitly, then the named style's own
//     attributes are written on top. Unknown names are skipped.
//   - Indentation: signed delta added to the current indentation; a zero
//     delta or a non-positive result clears the attribute.
//   - Precision: signed delta added to the current precision (unset counts
//     as zero) and clamped to [0, 10]; a zero delta clears the attribute.
//   - Anything else: plain overwrite.
//
// "Clearing" an attribute restores the document default's value for it, so a
// cleared attribute reads exactly as if no layer had touched it.
package compose

import (
	"github.com/joshuapare/stylekit/style/substyle"
)

const (
	// DefaultMaxParentDepth bounds named-style parent chains.
	DefaultMaxParentDepth = 64

	// MaxPrecision is the largest number of decimals a precision delta can reach.
	MaxPrecision = 10
)

// NamedStyle is one entry of the document's named-style table.
type NamedStyle interface {
	Name() string
	// ParentName is the name of the style this one inherits from ("" for none).
	ParentName() string
	// Style returns the attributes defined directly on this named style.
	Style() Style
}

// StyleManager resolves named styles and owns the document default style.
type StyleManager interface {
	Resolve(name string) (NamedStyle, bool)
	DefaultStyle() Style
}

// Composer composes substyle stacks against one style manager.
type Composer struct {
	mgr      StyleManager
	maxDepth int
}

// New creates a composer. A maxDepth below one selects DefaultMaxParentDepth.
func New(mgr StyleManager, maxDepth int) *Composer {
	if maxDepth < 1 {
		maxDepth = DefaultMaxParentDepth
	}
	return &Composer{mgr: mgr, maxDepth: maxDepth}
}

// Manager returns the style manager the composer resolves names with.
func (c *Composer) Manager() StyleManager { return c.mgr }

// Default returns the document default style.
func (c *Composer) Default() Style {
	def := c.mgr.DefaultStyle()
	def.explicit = 0
	def.isDefault = true
	return def
}

// Compose applies subs (ascending z-index) and returns the effective style.
// An empty stack yields the document default style itself.
func (c *Composer) Compose(subs []substyle.SubStyle) Style {
	def := c.Default()
	acc := def
	for _, sub := range subs {
		switch k := sub.Kind(); k {
		case substyle.KindDefault:
			acc = def
		case substyle.NamedStyle:
			ns, ok := c.mgr.Resolve(sub.Text())
			if !ok {
				continue
			}
			acc = c.applyNamed(acc, ns)
		case substyle.Indentation:
			acc = applyIndentation(acc, def, sub.Int())
		case substyle.KindPrecision:
			acc = applyPrecision(acc, def, sub.Int())
		case substyle.NumKinds:
			// zero substyle: nothing to apply
		default:
			acc = acc.With(sub)
		}
	}
	return acc
}

// Compose is a convenience wrapper around New(mgr, 0).Compose(subs).
func Compose(mgr StyleManager, subs []substyle.SubStyle) Style {
	return New(mgr, 0).Compose(subs)
}

// Chain returns the ancestors of ns ordered root first, excluding ns itself.
// The walk is iterative and stops at a missing parent, at the depth bound,
// or at the first name already seen, so a cyclic parent table ends the chain
// instead of looping.
func (c *Composer) Chain(ns NamedStyle) []NamedStyle {
	visited := map[string]struct{}{ns.Name(): {}}
	var ancestors []NamedStyle
	for parent := ns.ParentName(); parent != "" && len(ancestors) < c.maxDepth; {
		if _, seen := visited[parent]; seen {
			break
		}
		visited[parent] = struct{}{}
		p, ok := c.mgr.Resolve(parent)
		if !ok {
			break
		}
		ancestors = append(ancestors, p)
		parent = p.ParentName()
	}
	for i, j := 0, len(ancestors)-1; i < j; i, j = i+1, j-1 {
		ancestors[i], ancestors[j] = ancestors[j], ancestors[i]
	}
	return ancestors
}

func (c *Composer) applyNamed(acc Style, ns NamedStyle) Style {
	var inherited Style
	for _, a := range c.Chain(ns) {
		inherited = inherited.Merge(a.Style())
	}
	acc = acc.MergeUnder(inherited).Merge(ns.Style())
	acc.isDefault = false
	return acc
}

func applyIndentation(acc, def Style, delta int64) Style {
	next := int64(acc.Indentation()) + delta
	if delta == 0 || next <= 0 {
		return restore(acc, def, substyle.Indentation)
	}
	return acc.With(substyle.Indent(int(next)))
}

func applyPrecision(acc, def Style, delta int64) Style {
	if delta == 0 {
		return restore(acc, def, substyle.KindPrecision)
	}
	cur, _ := acc.Precision()
	next := min(max(int64(cur)+delta, 0), MaxPrecision)
	return acc.With(substyle.Precision(int(next)))
}

// restore resets k to the document default's value.
func restore(acc, def Style, k substyle.Kind) Style {
	acc.values[k] = def.values[k]
	acc.explicit &^= bit(k)
	return acc
}
