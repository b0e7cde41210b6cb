// Package substyle defines the atomic, immutable style values stored in the
// range index and the registry that tracks how many entries share each one.
//
// A SubStyle is a handle produced by Go's unique package: two SubStyles built
// from equal (kind, payload) pairs are the same handle, so equality is a
// pointer compare and a value is shared by every rectangle that uses it.
// There is no way to mutate a SubStyle after creation.
package substyle

import (
	"fmt"
	"strconv"
	"unique"

	"golang.org/x/text/unicode/norm"
)

// Value is the plain (kind, payload) pair a SubStyle is interned from.
type Value struct {
	Kind Kind
	Text string
	Num  int64
}

// SubStyle is an interned, immutable style attribute. The zero SubStyle means
// "no substyle"; it is used by undo data to mark bands that must be reset.
type SubStyle struct {
	h unique.Handle[Value]
}

// Intern returns the shared SubStyle for v. Named-style names are
// NFC-normalised first so canonically equivalent names share one value.
func Intern(v Value) SubStyle {
	if v.Kind == NamedStyle {
		v.Text = norm.NFC.String(v.Text)
	}
	return SubStyle{h: unique.Make(v)}
}

// Default returns the default-marker substyle.
func Default() SubStyle { return Intern(Value{Kind: KindDefault}) }

// Named returns a reference to the named style name.
func Named(name string) SubStyle { return Intern(Value{Kind: NamedStyle, Text: name}) }

// Indent returns an indentation delta.
func Indent(delta int) SubStyle { return Intern(Value{Kind: Indentation, Num: int64(delta)}) }

// Precision returns a precision delta.
func Precision(delta int) SubStyle { return Intern(Value{Kind: KindPrecision, Num: int64(delta)}) }

// Bool returns a boolean attribute (bold, italic, wrap, ...).
func Bool(k Kind, v bool) SubStyle {
	var n int64
	if v {
		n = 1
	}
	return Intern(Value{Kind: k, Num: n})
}

// Int returns an integer attribute (font size, colors, alignment, angle).
func Int(k Kind, v int64) SubStyle { return Intern(Value{Kind: k, Num: v}) }

// Text returns a string attribute (font family, borders, number format).
func Text(k Kind, s string) SubStyle { return Intern(Value{Kind: k, Text: s}) }

// IsZero reports whether s is the "no substyle" value.
func (s SubStyle) IsZero() bool { return s == SubStyle{} }

// Value returns a copy of the interned payload.
func (s SubStyle) Value() Value {
	if s.IsZero() {
		return Value{Kind: NumKinds}
	}
	return s.h.Value()
}

// Kind returns the attribute kind (NumKinds for the zero SubStyle).
func (s SubStyle) Kind() Kind { return s.Value().Kind }

// Int returns the numeric payload (deltas, sizes, colors, 0/1 for booleans).
func (s SubStyle) Int() int64 { return s.Value().Num }

// Bool returns the payload of a boolean attribute.
func (s SubStyle) Bool() bool { return s.Value().Num != 0 }

// Text returns the string payload (named-style name, font family, ...).
func (s SubStyle) Text() string { return s.Value().Text }

// IsNeutralDelta reports whether s is an Indentation or Precision value with
// a zero delta.
func (s SubStyle) IsNeutralDelta() bool {
	v := s.Value()
	return v.Kind.Accumulates() && v.Num == 0
}

func (s SubStyle) String() string {
	if s.IsZero() {
		return "<none>"
	}
	v := s.h.Value()
	switch v.Kind.ValueType() {
	case NoValue:
		return v.Kind.String()
	case BoolValue:
		return v.Kind.String() + "=" + strconv.FormatBool(v.Num != 0)
	case DeltaValue:
		return fmt.Sprintf("%s%+d", v.Kind, v.Num)
	case TextValue:
		return v.Kind.String() + "=" + strconv.Quote(v.Text)
	default:
		return v.Kind.String() + "=" + strconv.FormatInt(v.Num, 10)
	}
}

// Parse builds a substyle from a kind name and a textual value, as found in
// scripts and config files. Booleans accept strconv.ParseBool spellings;
// integers accept any strconv.ParseInt base-0 form ("0xff0000").
func Parse(kindName, raw string) (SubStyle, error) {
	k, err := ParseKind(kindName)
	if err != nil {
		return SubStyle{}, err
	}
	switch k.ValueType() {
	case NoValue:
		return Intern(Value{Kind: k}), nil
	case BoolValue:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return SubStyle{}, fmt.Errorf("%s: %w", kindName, err)
		}
		return Bool(k, b), nil
	case IntValue, DeltaValue:
		n, err := strconv.ParseInt(raw, 0, 64)
		if err != nil {
			return SubStyle{}, fmt.Errorf("%s: %w", kindName, err)
		}
		return Int(k, n), nil
	default:
		return Text(k, raw), nil
	}
}
