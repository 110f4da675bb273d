package errors

import (
	"errors"
	"fmt"
)

// Code classifies a processing failure. The taxonomy is small on purpose:
// a run either aborts before any output is written (INPUT_STRUCTURE,
// IO_ERROR, VALIDATION_FAILED) or tolerates the condition and continues
// with empty data (NO_MATCH).
type Code string

const (
	// CodeInputStructure marks an expected sheet or column that could not
	// be resolved in the input workbook. Fatal, no partial output.
	CodeInputStructure Code = "INPUT_STRUCTURE"
	// CodeNoMatch marks a filter that selected zero rows. Valid-but-empty;
	// surfaced as a warning, output is still generated.
	CodeNoMatch Code = "NO_MATCH"
	// CodeIO marks an unreadable or unwritable file. Fatal.
	CodeIO Code = "IO_ERROR"
	// CodeValidation marks invalid run configuration. Fatal.
	CodeValidation Code = "VALIDATION_FAILED"
)

// ProcessingError is a structured error carrying the taxonomy code, the
// operation that failed, and an optional wrapped cause.
type ProcessingError struct {
	Code    Code
	Op      string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ProcessingError) Error() string {
	msg := fmt.Sprintf("%s: %s: %s", e.Code, e.Op, e.Message)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the wrapped cause for errors.Is/errors.As chains.
func (e *ProcessingError) Unwrap() error {
	return e.Err
}

// Is matches two ProcessingErrors by code, so sentinel comparisons like
// errors.Is(err, ErrNoMatch) work regardless of op and message.
func (e *ProcessingError) Is(target error) bool {
	var pe *ProcessingError
	if errors.As(target, &pe) {
		return e.Code == pe.Code
	}
	return false
}

// New creates a ProcessingError with the given code, operation and message.
func New(code Code, op, message string) *ProcessingError {
	return &ProcessingError{Code: code, Op: op, Message: message}
}

// Wrap creates a ProcessingError wrapping an underlying cause.
func Wrap(code Code, op, message string, err error) *ProcessingError {
	return &ProcessingError{Code: code, Op: op, Message: message, Err: err}
}

// Sentinel errors for code-level matching with errors.Is.
var (
	ErrInputStructure = New(CodeInputStructure, "input", "input structure error")
	ErrNoMatch        = New(CodeNoMatch, "filter", "no rows matched")
	ErrIO             = New(CodeIO, "io", "file system error")
	ErrValidation     = New(CodeValidation, "config", "invalid configuration")
)

// InputStructureError reports a missing sheet or unresolvable column.
func InputStructureError(op, message string) *ProcessingError {
	return New(CodeInputStructure, op, message)
}

// MissingColumnError reports a required logical field that could not be
// resolved against the header row.
func MissingColumnError(op, logicalField string) *ProcessingError {
	return New(CodeInputStructure, op,
		fmt.Sprintf("required column %q could not be resolved from sheet headers", logicalField))
}

// NoMatchError reports a filter that selected zero rows.
func NoMatchError(op, district, tableCode string) *ProcessingError {
	return New(CodeNoMatch, op,
		fmt.Sprintf("no rows matched district %s table %s", district, tableCode))
}

// IOError wraps a file system failure.
func IOError(op string, err error) *ProcessingError {
	return Wrap(CodeIO, op, "file system error", err)
}

// ValidationError wraps a configuration validation failure.
func ValidationError(op string, err error) *ProcessingError {
	return Wrap(CodeValidation, op, "invalid configuration", err)
}

// IsFatal reports whether the error must abort the run before output is
// written. NO_MATCH is the only tolerated code.
func IsFatal(err error) bool {
	var pe *ProcessingError
	if errors.As(err, &pe) {
		return pe.Code != CodeNoMatch
	}
	return err != nil
}

// CodeOf extracts the taxonomy code from an error chain, or "" when the
// chain contains no ProcessingError.
func CodeOf(err error) Code {
	var pe *ProcessingError
	if errors.As(err, &pe) {
		return pe.Code
	}
	return ""
}
