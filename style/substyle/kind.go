package substyle

import "fmt"

// Kind identifies one atomic style attribute.
type Kind uint8

const (
	// KindDefault resets everything below it to the document default style.
	KindDefault Kind = iota
	// NamedStyle references a named (cell) style by name.
	NamedStyle
	// Indentation carries a signed delta accumulated over the layers below.
	Indentation
	// KindPrecision carries a signed delta accumulated and clamped to [0,10].
	KindPrecision

	FontFamily
	FontSize
	Bold
	Italic
	Underline
	Strikethrough
	TextColor
	BackgroundColor
	HAlign
	VAlign
	Wrap
	Angle
	BorderLeft
	BorderRight
	BorderTop
	BorderBottom
	NumberFormat
	Locked
	Hidden

	// NumKinds is the number of kinds; it is also the Kind reported by a zero SubStyle.
	NumKinds
)

// ValueType describes how a kind's payload is interpreted.
type ValueType uint8

const (
	NoValue ValueType = iota
	BoolValue
	IntValue
	DeltaValue
	TextValue
)

var kindInfo = [NumKinds]struct {
	name string
	typ  ValueType
}{
	KindDefault:     {"default", NoValue},
	NamedStyle:      {"named-style", TextValue},
	Indentation:     {"indentation", DeltaValue},
	KindPrecision:   {"precision", DeltaValue},
	FontFamily:      {"font-family", TextValue},
	FontSize:        {"font-size", IntValue},
	Bold:            {"bold", BoolValue},
	Italic:          {"italic", BoolValue},
	Underline:       {"underline", BoolValue},
	Strikethrough:   {"strikethrough", BoolValue},
	TextColor:       {"text-color", IntValue},
	BackgroundColor: {"background-color", IntValue},
	HAlign:          {"halign", IntValue},
	VAlign:          {"valign", IntValue},
	Wrap:            {"wrap", BoolValue},
	Angle:           {"angle", IntValue},
	BorderLeft:      {"border-left", TextValue},
	BorderRight:     {"border-right", TextValue},
	BorderTop:       {"border-top", TextValue},
	BorderBottom:    {"border-bottom", TextValue},
	NumberFormat:    {"number-format", TextValue},
	Locked:          {"locked", BoolValue},
	Hidden:          {"hidden", BoolValue},
}

// String returns the kind's config name ("font-size").
func (k Kind) String() string {
	if k >= NumKinds {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindInfo[k].name
}

// ValueType returns how the kind's payload is interpreted.
func (k Kind) ValueType() ValueType {
	if k >= NumKinds {
		return NoValue
	}
	return kindInfo[k].typ
}

// Accumulates reports whether the kind carries a delta rather than an
// absolute value (Indentation, KindPrecision).
func (k Kind) Accumulates() bool { return k.ValueType() == DeltaValue }

// ParseKind looks a kind up by its config name.
func ParseKind(name string) (Kind, error) {
	for k := Kind(0); k < NumKinds; k++ {
		if kindInfo[k].name == name {
			return k, nil
		}
	}
	return NumKinds, fmt.Errorf("unknown substyle kind %q", name)
}
