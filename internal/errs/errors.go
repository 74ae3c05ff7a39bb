// Package errs provides error types and classification for the engine.
// This file defines error categories and helper utilities that determine how
// a failure affects a running conversion: abort it, skip the current record,
// or follow a configured policy.
package errs

import (
	"errors"
	"fmt"
)

// ErrorCategory represents the type/category of an error.
// Categories determine the handling strategy during a conversion run.
type ErrorCategory string

// Error categories for classification.
const (
	// CategoryConfig represents configuration errors: bad parameter values,
	// unresolvable input column references, unknown convertor names, or
	// malformed task files. Config errors are fatal and surface before any
	// record is emitted.
	CategoryConfig ErrorCategory = "config"

	// CategoryRecord represents per-record value errors, such as arithmetic
	// on a cell that does not hold a number. Record errors skip the current
	// record with a warning; the conversion continues.
	CategoryRecord ErrorCategory = "record"

	// CategoryUniqueness represents duplicate-key errors from key
	// generation. Handling is configurable per convertor; the default
	// policy aborts the conversion.
	CategoryUniqueness ErrorCategory = "uniqueness"

	// CategoryCollaborator represents an unavailable external collaborator
	// (geocoding backend, vector scorer). Collaborator errors are fatal and
	// detected during preprocessing, before any record is consumed.
	CategoryCollaborator ErrorCategory = "collaborator"

	// CategoryIO represents input/output failures on the underlying
	// collections (unreadable files, write errors). IO errors are fatal.
	CategoryIO ErrorCategory = "io"
)

// ErrSkipRecord is the sentinel returned by convertor value functions to
// omit the current record from the output entirely. It is distinct from
// returning an empty value, which writes an empty cell.
var ErrSkipRecord = errors.New("skip record")

// EngineError wraps an error with classification metadata.
type EngineError struct {
	// Category is the error classification category.
	Category ErrorCategory

	// Fatal indicates whether the error aborts the conversion run.
	Fatal bool

	// Message is a human-readable error message.
	Message string

	// OriginalErr is the underlying error, if any.
	OriginalErr error
}

// Error implements the error interface.
func (e *EngineError) Error() string {
	if e.OriginalErr != nil {
		return fmt.Sprintf("%s error: %s: %v", e.Category, e.Message, e.OriginalErr)
	}
	return fmt.Sprintf("%s error: %s", e.Category, e.Message)
}

// Unwrap returns the original error for use with errors.Is and errors.As.
func (e *EngineError) Unwrap() error {
	return e.OriginalErr
}

// NewConfigError creates a fatal configuration error.
func NewConfigError(format string, args ...any) *EngineError {
	return &EngineError{
		Category: CategoryConfig,
		Fatal:    true,
		Message:  fmt.Sprintf(format, args...),
	}
}

// WrapConfigError wraps an underlying error as a fatal configuration error.
func WrapConfigError(err error, format string, args ...any) *EngineError {
	return &EngineError{
		Category:    CategoryConfig,
		Fatal:       true,
		Message:     fmt.Sprintf(format, args...),
		OriginalErr: err,
	}
}

// NewRecordError creates a skippable per-record error.
func NewRecordError(format string, args ...any) *EngineError {
	return &EngineError{
		Category: CategoryRecord,
		Fatal:    false,
		Message:  fmt.Sprintf(format, args...),
	}
}

// WrapRecordError wraps an underlying error as a skippable per-record error.
func WrapRecordError(err error, format string, args ...any) *EngineError {
	return &EngineError{
		Category:    CategoryRecord,
		Fatal:       false,
		Message:     fmt.Sprintf(format, args...),
		OriginalErr: err,
	}
}

// NewUniquenessError creates a duplicate-key error.
func NewUniquenessError(format string, args ...any) *EngineError {
	return &EngineError{
		Category: CategoryUniqueness,
		Fatal:    true,
		Message:  fmt.Sprintf(format, args...),
	}
}

// NewCollaboratorError creates a fatal collaborator-unavailable error.
func NewCollaboratorError(format string, args ...any) *EngineError {
	return &EngineError{
		Category: CategoryCollaborator,
		Fatal:    true,
		Message:  fmt.Sprintf(format, args...),
	}
}

// WrapIOError wraps an underlying error as a fatal IO error.
func WrapIOError(err error, format string, args ...any) *EngineError {
	return &EngineError{
		Category:    CategoryIO,
		Fatal:       true,
		Message:     fmt.Sprintf(format, args...),
		OriginalErr: err,
	}
}

// GetCategory returns the error category for a given error.
// Unclassified errors report CategoryIO when wrapping an OS-level failure
// is likely; otherwise they are treated as fatal config errors, which is
// the conservative default for unexpected failures.
func GetCategory(err error) ErrorCategory {
	var classified *EngineError
	if errors.As(err, &classified) {
		return classified.Category
	}
	return CategoryConfig
}

// IsFatal returns true if the error aborts a conversion run.
// Unclassified errors are fatal by default.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrSkipRecord) {
		return false
	}
	var classified *EngineError
	if errors.As(err, &classified) {
		return classified.Fatal
	}
	return true
}

// IsSkippable returns true if the error only affects the current record.
func IsSkippable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrSkipRecord) {
		return true
	}
	var classified *EngineError
	if errors.As(err, &classified) {
		return classified.Category == CategoryRecord && !classified.Fatal
	}
	return false
}
