package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestError_Unwrap(t *testing.T) {
	err := RangeError(ErrOutOfBounds, "column %d beyond %d", 20000, DefaultMaxColumn)
	require.ErrorIs(t, err, ErrOutOfBounds)
	require.Equal(t, ErrKindRange, err.Kind)
	require.Equal(t, "column 20000 beyond 18278: coordinate out of bounds", err.Error())

	wrapped := fmt.Errorf("insert: %w", err)
	var typed *Error
	require.True(t, errors.As(wrapped, &typed))
	require.Equal(t, ErrKindRange, typed.Kind)
}

func TestError_Nil(t *testing.T) {
	var e *Error
	require.Equal(t, "<nil>", e.Error())
}

func TestErrKind_String(t *testing.T) {
	tests := []struct {
		kind ErrKind
		want string
	}{
		{ErrKindRange, "range"},
		{ErrKindConfig, "config"},
		{ErrKindState, "state"},
		{ErrKind(42), "kind(42)"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, tt.kind.String())
	}
}

func TestLimits(t *testing.T) {
	l := DefaultLimits()
	require.True(t, l.Valid())
	require.True(t, l.ContainsColumn(1))
	require.True(t, l.ContainsColumn(18278))
	require.False(t, l.ContainsColumn(0))
	require.False(t, l.ContainsColumn(18279))
	require.True(t, l.ContainsRow(1048576))
	require.False(t, l.ContainsRow(1048577))
	require.False(t, Limits{}.Valid())
}

func TestConfigError(t *testing.T) {
	err := ConfigError("max_row %d", -1)
	require.ErrorIs(t, err, ErrInvalidConfig)
	require.Equal(t, ErrKindConfig, err.Kind)
	require.Equal(t, "max_row -1: invalid configuration", err.Error())
}
