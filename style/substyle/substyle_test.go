package substyle

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIntern_SharesEqualValues(t *testing.T) {
	a := Bool(Bold, true)
	b := Intern(Value{Kind: Bold, Num: 1})
	require.Equal(t, a, b)
	require.True(t, a == b)
	require.NotEqual(t, a, Bool(Bold, false))
	require.NotEqual(t, a, Bool(Italic, true))
}

func TestNamed_NFCNormalised(t *testing.T) {
	composed := Named("Caf\u00e9")
	decomposed := Named("Cafe\u0301")
	require.Equal(t, composed, decomposed)
	require.Equal(t, "Caf\u00e9", decomposed.Text())
}

func TestZeroSubStyle(t *testing.T) {
	var z SubStyle
	require.True(t, z.IsZero())
	require.Equal(t, NumKinds, z.Kind())
	require.Equal(t, "<none>", z.String())
	require.False(t, Default().IsZero())
}

func TestAccessors(t *testing.T) {
	require.Equal(t, Indentation, Indent(-3).Kind())
	require.Equal(t, int64(-3), Indent(-3).Int())
	require.True(t, Indent(0).IsNeutralDelta())
	require.True(t, Precision(0).IsNeutralDelta())
	require.False(t, Precision(2).IsNeutralDelta())
	require.False(t, Int(FontSize, 0).IsNeutralDelta())
	require.Equal(t, "Arial", Text(FontFamily, "Arial").Text())
	require.True(t, Bool(Wrap, true).Bool())
}

func TestConstructorKinds(t *testing.T) {
	require.Equal(t, KindDefault, Default().Kind())
	require.Equal(t, KindPrecision, Precision(3).Kind())
	require.Equal(t, NamedStyle, Named("Heading").Kind())

	k, err := ParseKind("default")
	require.NoError(t, err)
	require.Equal(t, KindDefault, k)
	k, err = ParseKind("precision")
	require.NoError(t, err)
	require.Equal(t, KindPrecision, k)
}

func TestString(t *testing.T) {
	require.Equal(t, "default", Default().String())
	require.Equal(t, "bold=true", Bool(Bold, true).String())
	require.Equal(t, "indentation+2", Indent(2).String())
	require.Equal(t, "precision-1", Precision(-1).String())
	require.Equal(t, `named-style="Heading"`, Named("Heading").String())
	require.Equal(t, "font-size=12", Int(FontSize, 12).String())
}

func TestParse(t *testing.T) {
	tests := []struct {
		kind, raw string
		want      SubStyle
	}{
		{"bold", "true", Bool(Bold, true)},
		{"italic", "0", Bool(Italic, false)},
		{"background-color", "0xff0000", Int(BackgroundColor, 0xff0000)},
		{"indentation", "-2", Indent(-2)},
		{"named-style", "Heading", Named("Heading")},
		{"default", "", Default()},
	}
	for _, tt := range tests {
		got, err := Parse(tt.kind, tt.raw)
		require.NoError(t, err, tt.kind)
		require.Equal(t, tt.want, got, tt.kind)
	}

	_, err := Parse("blink", "true")
	require.Error(t, err)
	_, err = Parse("bold", "maybe")
	require.Error(t, err)
	_, err = Parse("font-size", "big")
	require.Error(t, err)
}

func TestKind_Names(t *testing.T) {
	for k := Kind(0); k < NumKinds; k++ {
		got, err := ParseKind(k.String())
		require.NoError(t, err)
		require.Equal(t, k, got)
	}
	require.Equal(t, "kind(200)", Kind(200).String())
	require.True(t, Indentation.Accumulates())
	require.False(t, Bold.Accumulates())
}

func TestRegistry_RefCounts(t *testing.T) {
	r := NewRegistry()
	bold := r.Intern(Value{Kind: Bold, Num: 1})

	r.Retain(bold)
	r.Retain(bold)
	r.Retain(Indent(1))
	r.Retain(SubStyle{})
	require.Equal(t, 2, r.RefCount(bold))
	require.Equal(t, 2, r.Live())

	r.Release(bold)
	require.Equal(t, 1, r.RefCount(bold))
	r.Release(bold)
	require.Equal(t, 0, r.RefCount(bold))
	require.Equal(t, 1, r.Live())

	// releasing an unknown value is a no-op
	r.Release(Bool(Italic, true))
	require.Equal(t, 1, r.Live())

	r.Reset()
	require.Equal(t, 0, r.Live())
}
