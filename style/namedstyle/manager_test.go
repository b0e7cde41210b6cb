package namedstyle

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/stylekit/style/substyle"
)

func TestManager_AddResolveRemove(t *testing.T) {
	m := NewManager(substyle.Int(substyle.FontSize, 10))
	m.Add("Heading", "Default", substyle.Bool(substyle.Bold, true))

	ns, ok := m.Resolve("Heading")
	require.True(t, ok)
	require.Equal(t, "Heading", ns.Name())
	require.Equal(t, "Default", ns.ParentName())
	require.True(t, ns.Style().Bold())

	_, ok = m.Resolve("Missing")
	require.False(t, ok)

	require.True(t, m.Remove("Heading"))
	require.False(t, m.Remove("Heading"))
	_, ok = m.Resolve("Heading")
	require.False(t, ok)
}

func TestManager_NormalisesNames(t *testing.T) {
	m := NewManager()
	m.Add("Cafe\u0301", "")
	_, ok := m.Resolve("Café")
	require.True(t, ok)
	require.Equal(t, []string{"Café"}, m.Names())
}

func TestManager_Default(t *testing.T) {
	m := NewManager(substyle.Int(substyle.FontSize, 10))
	def := m.DefaultStyle()
	require.True(t, def.IsDefault())
	size, ok := def.Get(substyle.FontSize)
	require.True(t, ok)
	require.Equal(t, int64(10), size.Int())

	m.SetDefault()
	require.True(t, m.DefaultStyle().IsEmpty())
	require.True(t, m.DefaultStyle().IsDefault())
}
