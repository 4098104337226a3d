// Package errors defines the structured error type shared by the converter
// pipeline. Every failure carries a stable code so callers (and log readers)
// can tell a malformed archive apart from an unsupported cycle type without
// string matching.
package errors

import (
	"fmt"
)

// Code identifies a class of converter failure.
type Code string

const (
	// CodeBadDateVector is returned when a cycle start-time vector does not
	// have exactly six numeric components.
	CodeBadDateVector Code = "BAD_DATE_VECTOR"
	// CodeUnsupportedCycleType is returned when a cycle's type tag is not in
	// the fixed schema table.
	CodeUnsupportedCycleType Code = "UNSUPPORTED_CYCLE_TYPE"
	// CodeCycleSchemaMismatch is returned when a cycle's nested data block
	// does not have the field count its schema requires.
	CodeCycleSchemaMismatch Code = "CYCLE_SCHEMA_MISMATCH"
	// CodeRaggedCycleData is returned when two non-scalar field sequences in
	// one cycle have different lengths.
	CodeRaggedCycleData Code = "RAGGED_CYCLE_DATA"
	// CodeArchiveNotFound is returned when the source .mat file is missing
	// or unreadable.
	CodeArchiveNotFound Code = "ARCHIVE_NOT_FOUND"
	// CodeMalformedArchive is returned for any MAT-file level failure:
	// truncated file, bad magic, unknown element type or class.
	CodeMalformedArchive Code = "MALFORMED_ARCHIVE"
	// CodeMissingTopLevel is returned when the archive parses but the
	// expected top-level battery variable or its cycle list is absent.
	CodeMissingTopLevel Code = "MISSING_TOP_LEVEL"
	// CodeExportFailed is returned when the output file cannot be written.
	CodeExportFailed Code = "EXPORT_FAILED"
	// CodeConfig is returned for configuration loading or validation
	// failures.
	CodeConfig Code = "CONFIG"
)

// ConverterError is the application error type. It wraps an optional cause
// so errors.Is and errors.As keep working across package boundaries.
type ConverterError struct {
	Code    Code
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ConverterError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap exposes the cause to errors.Is and errors.As.
func (e *ConverterError) Unwrap() error {
	return e.Cause
}

// Is treats two ConverterErrors with the same code as equivalent, so
// sentinel-style comparisons against a bare coded error work.
func (e *ConverterError) Is(target error) bool {
	t, ok := target.(*ConverterError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// New creates a coded error without a cause.
func New(code Code, message string) *ConverterError {
	return &ConverterError{Code: code, Message: message}
}

// Newf creates a coded error with a formatted message.
func Newf(code Code, format string, args ...interface{}) *ConverterError {
	return &ConverterError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates a coded error around a cause.
func Wrap(code Code, message string, cause error) *ConverterError {
	return &ConverterError{Code: code, Message: message, Cause: cause}
}

// Wrapf creates a coded error around a cause with a formatted message.
func Wrapf(code Code, cause error, format string, args ...interface{}) *ConverterError {
	return &ConverterError{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// CodeOf returns the code of err if it is (or wraps) a ConverterError, or
// an empty code otherwise.
func CodeOf(err error) Code {
	for err != nil {
		if ce, ok := err.(*ConverterError); ok {
			return ce.Code
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return ""
		}
		err = u.Unwrap()
	}
	return ""
}
