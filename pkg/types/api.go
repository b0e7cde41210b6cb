package types

import "fmt"

// -----------------------------------------------------------------------------
// Typed Errors (stable categories for programmatic handling)
// -----------------------------------------------------------------------------

// ErrKind classifies errors so callers can branch on intent rather than text.
type ErrKind int

const (
	ErrKindRange  ErrKind = iota // coordinates or counts outside the grid limits
	ErrKindConfig                // invalid options / configuration file
	ErrKindState                 // invalid operation for current state
)

// String returns a short name for the kind.
func (k ErrKind) String() string {
	switch k {
	case ErrKindRange:
		return "range"
	case ErrKindConfig:
		return "config"
	case ErrKindState:
		return "state"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Error is a typed error with an optional underlying cause.
type Error struct {
	Kind ErrKind
	Msg  string
	Err  error // optional underlying cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Sentinels commonly returned by implementations.
var (
	// ErrOutOfBounds indicates a coordinate outside [1,MaxColumn]x[1,MaxRow].
	ErrOutOfBounds = &Error{Kind: ErrKindRange, Msg: "coordinate out of bounds"}
	// ErrInvalidRect indicates a rectangle whose left/top exceed its right/bottom.
	ErrInvalidRect = &Error{Kind: ErrKindRange, Msg: "invalid rectangle"}
	// ErrInvalidCount indicates a non-positive row/column count.
	ErrInvalidCount = &Error{Kind: ErrKindRange, Msg: "invalid count"}
	// ErrInvalidConfig indicates options that cannot be used to build a storage.
	ErrInvalidConfig = &Error{Kind: ErrKindConfig, Msg: "invalid configuration"}
	// ErrNoStyleManager indicates a storage was created without a style manager.
	ErrNoStyleManager = &Error{Kind: ErrKindState, Msg: "style manager is required"}
)

// RangeError wraps ErrOutOfBounds (or another range sentinel) with detail.
func RangeError(cause *Error, format string, args ...any) *Error {
	return &Error{Kind: cause.Kind, Msg: fmt.Sprintf(format, args...), Err: cause}
}

// ConfigError wraps ErrInvalidConfig with detail.
func ConfigError(format string, args ...any) *Error {
	return &Error{Kind: ErrKindConfig, Msg: fmt.Sprintf(format, args...), Err: ErrInvalidConfig}
}
