package compose_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/stylekit/style/compose"
	"github.com/joshuapare/stylekit/style/namedstyle"
	"github.com/joshuapare/stylekit/style/substyle"
)

func newManager() *namedstyle.Manager {
	m := namedstyle.NewManager(
		substyle.Text(substyle.FontFamily, "Liberation Sans"),
		substyle.Int(substyle.FontSize, 10),
	)
	m.Add("Default", "", substyle.Int(substyle.TextColor, 0x000000))
	m.Add("Heading", "Default",
		substyle.Bool(substyle.Bold, true),
		substyle.Int(substyle.FontSize, 14),
	)
	m.Add("Heading 1", "Heading", substyle.Int(substyle.FontSize, 18))
	return m
}

func TestCompose_EmptyStackIsDefault(t *testing.T) {
	m := newManager()
	got := compose.Compose(m, nil)
	require.True(t, got.IsDefault())
	require.Equal(t, m.DefaultStyle(), got)
}

func TestCompose_Override(t *testing.T) {
	m := newManager()
	got := compose.Compose(m, []substyle.SubStyle{
		substyle.Bool(substyle.Bold, true),
		substyle.Bool(substyle.Bold, false),
	})
	require.False(t, got.Bold())
	require.True(t, got.Has(substyle.Bold))
	require.False(t, got.IsDefault())

	size, ok := got.Get(substyle.FontSize)
	require.True(t, ok)
	require.Equal(t, int64(10), size.Int(), "untouched attributes come from the default")
}

func TestCompose_IndentationAccumulates(t *testing.T) {
	m := newManager()
	c := compose.New(m, 0)

	got := c.Compose([]substyle.SubStyle{substyle.Indent(2), substyle.Indent(3)})
	require.Equal(t, 5, got.Indentation())

	got = c.Compose([]substyle.SubStyle{substyle.Indent(2), substyle.Indent(3), substyle.Indent(-5)})
	require.False(t, got.Has(substyle.Indentation))

	got = c.Compose([]substyle.SubStyle{substyle.Indent(2), substyle.Indent(-7)})
	require.False(t, got.Has(substyle.Indentation))

	got = c.Compose([]substyle.SubStyle{substyle.Indent(4), substyle.Indent(0)})
	require.False(t, got.Has(substyle.Indentation))
}

func TestCompose_PrecisionClamps(t *testing.T) {
	m := newManager()
	c := compose.New(m, 0)

	got := c.Compose([]substyle.SubStyle{substyle.Precision(2)})
	p, ok := got.Precision()
	require.True(t, ok)
	require.Equal(t, 2, p)

	got = c.Compose([]substyle.SubStyle{substyle.Precision(8), substyle.Precision(8)})
	p, _ = got.Precision()
	require.Equal(t, compose.MaxPrecision, p)

	got = c.Compose([]substyle.SubStyle{substyle.Precision(1), substyle.Precision(-4)})
	p, ok = got.Precision()
	require.True(t, ok, "a negative result clamps to zero decimals")
	require.Equal(t, 0, p)

	got = c.Compose([]substyle.SubStyle{substyle.Precision(3), substyle.Precision(0)})
	_, ok = got.Precision()
	require.False(t, ok)
}

func TestCompose_DefaultResets(t *testing.T) {
	m := newManager()
	got := compose.Compose(m, []substyle.SubStyle{
		substyle.Bool(substyle.Bold, true),
		substyle.Indent(3),
		substyle.Default(),
		substyle.Bool(substyle.Italic, true),
	})
	require.False(t, got.Bold())
	require.Equal(t, 0, got.Indentation())
	require.True(t, got.Italic())

	got = compose.Compose(m, []substyle.SubStyle{substyle.Bool(substyle.Bold, true), substyle.Default()})
	require.True(t, got.IsDefault())
	require.Equal(t, m.DefaultStyle(), got)
}

func TestCompose_NamedStyleChain(t *testing.T) {
	m := newManager()
	got := compose.Compose(m, []substyle.SubStyle{substyle.Named("Heading 1")})
	require.True(t, got.Bold(), "inherited from Heading")

	size, _ := got.Get(substyle.FontSize)
	require.Equal(t, int64(18), size.Int(), "own attribute beats the parent")

	color, ok := got.Get(substyle.TextColor)
	require.True(t, ok, "inherited from the root")
	require.Equal(t, int64(0), color.Int())
	require.False(t, got.IsDefault())
}

func TestCompose_NamedStyleKeepsExplicitLayersBelow(t *testing.T) {
	m := newManager()
	got := compose.Compose(m, []substyle.SubStyle{
		substyle.Bool(substyle.Bold, false),
		substyle.Int(substyle.FontSize, 30),
		substyle.Named("Heading 1"),
	})
	assert.False(t, got.Bold(), "explicit bold below beats the inherited one")

	size, _ := got.Get(substyle.FontSize)
	assert.Equal(t, int64(18), size.Int(), "the named style's own attributes win")
}

func TestCompose_MissingNamedStyleSkipped(t *testing.T) {
	m := newManager()
	got := compose.Compose(m, []substyle.SubStyle{
		substyle.Bool(substyle.Italic, true),
		substyle.Named("Nope"),
	})
	require.True(t, got.Italic())
	require.Equal(t, compose.Compose(m, []substyle.SubStyle{substyle.Bool(substyle.Italic, true)}), got)
}

func TestChain_CycleTerminates(t *testing.T) {
	m := namedstyle.NewManager()
	m.Add("A", "B", substyle.Bool(substyle.Bold, true))
	m.Add("B", "C", substyle.Bool(substyle.Italic, true))
	m.Add("C", "A", substyle.Bool(substyle.Wrap, true))

	c := compose.New(m, 0)
	a, _ := m.Resolve("A")
	chain := c.Chain(a)
	require.Len(t, chain, 2)
	require.Equal(t, "C", chain[0].Name())
	require.Equal(t, "B", chain[1].Name())

	got := c.Compose([]substyle.SubStyle{substyle.Named("A")})
	require.True(t, got.Bold())
	require.True(t, got.Italic())
	require.True(t, got.Has(substyle.Wrap))
}

func TestChain_DepthBound(t *testing.T) {
	m := namedstyle.NewManager()
	m.Add("s0", "")
	for i := 1; i < 10; i++ {
		m.Add("s"+string(rune('0'+i)), "s"+string(rune('0'+i-1)))
	}
	s9, _ := m.Resolve("s9")
	require.Len(t, compose.New(m, 3).Chain(s9), 3)
	require.Len(t, compose.New(m, 0).Chain(s9), 9)
}

func TestCompose_ClearedAttributeReadsAsDefault(t *testing.T) {
	m := namedstyle.NewManager(substyle.Indent(2), substyle.Precision(4))
	c := compose.New(m, 0)

	got := c.Compose([]substyle.SubStyle{substyle.Indent(0)})
	require.Equal(t, m.DefaultStyle(), got)

	got = c.Compose([]substyle.SubStyle{substyle.Precision(0), substyle.Bool(substyle.Bold, true)})
	require.Equal(t, c.Compose([]substyle.SubStyle{substyle.Bool(substyle.Bold, true)}), got)
}

func TestStyle_SubStyles(t *testing.T) {
	m := newManager()
	def := compose.Compose(m, nil)
	require.Equal(t, []substyle.SubStyle{substyle.Default()}, def.SubStyles())

	got := compose.Compose(m, []substyle.SubStyle{substyle.Bool(substyle.Bold, true), substyle.Indent(2)})
	require.ElementsMatch(t, []substyle.SubStyle{substyle.Indent(2), substyle.Bool(substyle.Bold, true)}, got.SubStyles())
}
