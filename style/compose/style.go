package compose

import (
	"strconv"
	"strings"

	"github.com/joshuapare/stylekit/style/substyle"
)

// Style is the composed set of attributes effective at one cell or over one
// uniform rectangle. It is a small value type: copies are independent and
// two Styles compare equal with == exactly when they would render the same
// and agree on IsDefault.
type Style struct {
	values    [substyle.NumKinds]substyle.SubStyle
	explicit  uint32 // kinds set by a layer rather than inherited from the document default
	isDefault bool
}

func bit(k substyle.Kind) uint32 { return 1 << k }

// attribute reports whether k names a storable attribute. Default and
// NamedStyle are layering instructions and never stored in a Style.
func attribute(k substyle.Kind) bool {
	return k > substyle.NamedStyle && k < substyle.NumKinds
}

// NewStyle builds a non-default style from attribute substyles. Default
// markers and named-style references are ignored.
func NewStyle(subs ...substyle.SubStyle) Style {
	var s Style
	for _, sub := range subs {
		s = s.With(sub)
	}
	return s
}

// NewDefaultStyle builds a document default style. Its attributes are the
// fallback values every composition starts from.
func NewDefaultStyle(subs ...substyle.SubStyle) Style {
	s := NewStyle(subs...)
	s.explicit = 0
	s.isDefault = true
	return s
}

// Get returns the value stored for k.
func (s Style) Get(k substyle.Kind) (substyle.SubStyle, bool) {
	if !attribute(k) || s.values[k].IsZero() {
		return substyle.SubStyle{}, false
	}
	return s.values[k], true
}

// Has reports whether k has a value.
func (s Style) Has(k substyle.Kind) bool {
	_, ok := s.Get(k)
	return ok
}

// IsDefault reports whether the style is the document default, i.e. no
// layer changed it since the last default reset.
func (s Style) IsDefault() bool { return s.isDefault }

// IsEmpty reports whether no attribute has a value.
func (s Style) IsEmpty() bool {
	for k := range s.values {
		if !s.values[k].IsZero() {
			return false
		}
	}
	return true
}

// With returns a copy with sub set. Default markers and named-style
// references are not attributes and are ignored.
func (s Style) With(sub substyle.SubStyle) Style {
	k := sub.Kind()
	if !attribute(k) {
		return s
	}
	s.values[k] = sub
	s.explicit |= bit(k)
	s.isDefault = false
	return s
}

// Without returns a copy with k unset.
func (s Style) Without(k substyle.Kind) Style {
	if !attribute(k) {
		return s
	}
	s.values[k] = substyle.SubStyle{}
	s.explicit &^= bit(k)
	return s
}

// Merge returns s with every attribute of o written on top.
func (s Style) Merge(o Style) Style {
	for k := range o.values {
		if v := o.values[k]; !v.IsZero() {
			s.values[k] = v
			s.explicit |= bit(substyle.Kind(k))
		}
	}
	return s
}

// MergeUnder returns s with o's attributes filled in wherever s has no
// explicitly set value.
func (s Style) MergeUnder(o Style) Style {
	for k := range o.values {
		if v := o.values[k]; !v.IsZero() && s.explicit&bit(substyle.Kind(k)) == 0 {
			s.values[k] = v
			s.explicit |= bit(substyle.Kind(k))
		}
	}
	return s
}

// SubStyles decomposes the style into the substyles that reproduce it when
// inserted on top of other layers: a default style becomes a single Default
// marker, anything else its explicitly set attributes in kind order.
func (s Style) SubStyles() []substyle.SubStyle {
	if s.isDefault {
		return []substyle.SubStyle{substyle.Default()}
	}
	var out []substyle.SubStyle
	for k := range s.values {
		if s.explicit&bit(substyle.Kind(k)) != 0 && !s.values[k].IsZero() {
			out = append(out, s.values[k])
		}
	}
	return out
}

// Equal reports whether two styles are identical.
func (s Style) Equal(o Style) bool { return s == o }

// Bold reports the bold attribute.
func (s Style) Bold() bool { return s.values[substyle.Bold].Bool() }

// Italic reports the italic attribute.
func (s Style) Italic() bool { return s.values[substyle.Italic].Bool() }

// Indentation returns the absolute indentation (0 when unset).
func (s Style) Indentation() int { return int(s.values[substyle.Indentation].Int()) }

// Precision returns the number of decimals and whether one is set at all.
// Unset is distinct from zero decimals.
func (s Style) Precision() (int, bool) {
	v := s.values[substyle.KindPrecision]
	if v.IsZero() {
		return 0, false
	}
	return int(v.Int()), true
}

// String lists the attributes in kind order.
func (s Style) String() string {
	var parts []string
	if s.isDefault {
		parts = append(parts, "(default)")
	}
	for k := range s.values {
		if v := s.values[k]; !v.IsZero() {
			if k == int(substyle.Indentation) || k == int(substyle.KindPrecision) {
				parts = append(parts, substyle.Kind(k).String()+"="+strconv.FormatInt(v.Int(), 10))
				continue
			}
			parts = append(parts, v.String())
		}
	}
	return "{" + strings.Join(parts, " ") + "}"
}
