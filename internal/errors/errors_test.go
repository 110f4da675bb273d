package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessingError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *ProcessingError
		expected string
	}{
		{
			name:     "without cause",
			err:      New(CodeInputStructure, "resolve columns", "missing column"),
			expected: "INPUT_STRUCTURE: resolve columns: missing column",
		},
		{
			name:     "with cause",
			err:      Wrap(CodeIO, "open workbook", "file system error", fmt.Errorf("permission denied")),
			expected: "IO_ERROR: open workbook: file system error: permission denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestProcessingError_Is(t *testing.T) {
	err := NoMatchError("filter reference", "7205", "6_06")

	assert.True(t, errors.Is(err, ErrNoMatch))
	assert.False(t, errors.Is(err, ErrInputStructure))
	assert.False(t, errors.Is(err, ErrIO))
}

func TestProcessingError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := IOError("write workbook", cause)

	assert.ErrorIs(t, err, cause)

	var pe *ProcessingError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, CodeIO, pe.Code)
}

func TestIsFatal(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		fatal bool
	}{
		{"nil error", nil, false},
		{"no match is tolerated", NoMatchError("filter", "7205", "6_06"), false},
		{"input structure is fatal", MissingColumnError("resolve", "kab"), true},
		{"io is fatal", IOError("open", fmt.Errorf("gone")), true},
		{"validation is fatal", ValidationError("process", fmt.Errorf("bad job")), true},
		{"plain error is fatal", fmt.Errorf("unknown"), true},
		{"wrapped processing error", fmt.Errorf("outer: %w", NoMatchError("filter", "1", "2")), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.fatal, IsFatal(tt.err))
		})
	}
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, CodeInputStructure, CodeOf(InputStructureError("load", "no sheet")))
	assert.Equal(t, CodeNoMatch, CodeOf(fmt.Errorf("wrap: %w", NoMatchError("filter", "1", "2"))))
	assert.Equal(t, Code(""), CodeOf(fmt.Errorf("plain")))
	assert.Equal(t, Code(""), CodeOf(nil))
}

func TestMissingColumnError_Message(t *testing.T) {
	err := MissingColumnError("resolve columns", "kab")
	assert.Contains(t, err.Error(), `"kab"`)
	assert.Contains(t, err.Error(), "could not be resolved")
}
