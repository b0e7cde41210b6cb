// Package namedstyle is an in-memory named-style table implementing
// compose.StyleManager. Documents with their own style manager implement the
// interface directly; this one backs tests, tools and simple embedders.
package namedstyle

import (
	"sort"

	"golang.org/x/text/unicode/norm"

	"github.com/joshuapare/stylekit/style/compose"
	"github.com/joshuapare/stylekit/style/substyle"
)

// Style is one named style definition.
type Style struct {
	name   string
	parent string
	attrs  compose.Style
}

// Name implements compose.NamedStyle.
func (s *Style) Name() string { return s.name }

// ParentName implements compose.NamedStyle.
func (s *Style) ParentName() string { return s.parent }

// Style implements compose.NamedStyle.
func (s *Style) Style() compose.Style { return s.attrs }

// Manager maps names to styles and holds the document default style.
// Names are NFC-normalised on every lookup, matching substyle.Named.
//
// NOT thread-safe. Only one goroutine should use it at a time.
type Manager struct {
	styles map[string]*Style
	def    compose.Style
}

// NewManager creates a manager whose default style carries defaults.
func NewManager(defaults ...substyle.SubStyle) *Manager {
	return &Manager{
		styles: make(map[string]*Style),
		def:    compose.NewDefaultStyle(defaults...),
	}
}

// Add defines (or redefines) name with the given parent and attributes.
func (m *Manager) Add(name, parent string, attrs ...substyle.SubStyle) *Style {
	s := &Style{
		name:   norm.NFC.String(name),
		parent: norm.NFC.String(parent),
		attrs:  compose.NewStyle(attrs...),
	}
	m.styles[s.name] = s
	return s
}

// Remove deletes name and reports whether it existed.
func (m *Manager) Remove(name string) bool {
	key := norm.NFC.String(name)
	_, ok := m.styles[key]
	delete(m.styles, key)
	return ok
}

// Resolve implements compose.StyleManager.
func (m *Manager) Resolve(name string) (compose.NamedStyle, bool) {
	s, ok := m.styles[norm.NFC.String(name)]
	if !ok {
		return nil, false
	}
	return s, true
}

// DefaultStyle implements compose.StyleManager.
func (m *Manager) DefaultStyle() compose.Style { return m.def }

// SetDefault replaces the document default style's attributes.
func (m *Manager) SetDefault(defaults ...substyle.SubStyle) {
	m.def = compose.NewDefaultStyle(defaults...)
}

// Names returns the defined names in sorted order.
func (m *Manager) Names() []string {
	names := make([]string, 0, len(m.styles))
	for name := range m.styles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
