// Package errors provides centralized error definitions and error handling
// utilities for the taskmon codebase. It defines the monitor lifecycle
// sentinels, semantic error types, error constructors with context wrapping,
// and error classification helpers.
//
// # Error Types
//
// The package provides three error kinds, matching the monitor's contract:
//
//   - ErrNotStarted / ErrStopped: lifecycle sentinels returned when a
//     progress or info update is attempted outside the Started state.
//   - ValidationError: invalid input, such as a subtask total of zero.
//   - IOError: the session log directory or file cannot be created or
//     written.
//
// # Usage
//
// Creating errors:
//
//	// Validation error with field context
//	err := errors.NewValidationError("total_tasks", total, "must be a positive integer")
//
//	// IO error wrapping the underlying OS failure
//	err := errors.NewIOError("create log directory", path, osErr)
//
// Checking errors:
//
//	if errors.Is(err, errors.ErrNotStarted) { ... }
//
//	var verr *errors.ValidationError
//	if errors.As(err, &verr) { ... }
//
//	if errors.IsValidation(err) { ... }
package errors

import (
	"errors"
	"fmt"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Lifecycle sentinel errors
var (
	// ErrNotStarted indicates an update was attempted before Start or
	// after Stop.
	ErrNotStarted = New("monitor not started")
	// ErrStopped indicates an operation on a monitor that has reached its
	// terminal Stopped state. Restart is not supported.
	ErrStopped = New("monitor stopped")
	// ErrNoSubtask indicates a progress advance with no active subtask.
	ErrNoSubtask = New("no active subtask")
)

// Validation sentinel errors
var (
	// ErrInvalidTotal indicates a subtask was initialized with a
	// non-positive total.
	ErrInvalidTotal = New("total must be a positive integer")
)

// ValidationError represents invalid input to a monitor operation.
//
// Example:
//
//	err := errors.NewValidationError("total_tasks", 0, "must be a positive integer")
//	fmt.Println(err) // "validation failed for total_tasks: must be a positive integer (got 0)"
type ValidationError struct {
	// Field is the name of the argument that failed validation.
	Field string
	// Value is the rejected value.
	Value any
	// Reason explains why validation failed.
	Reason string
	// cause is an optional sentinel this error should match via Is.
	cause error
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value any, reason string) *ValidationError {
	return &ValidationError{
		Field:  field,
		Value:  value,
		Reason: reason,
	}
}

// WithCause attaches a sentinel error so callers can match with errors.Is.
func (e *ValidationError) WithCause(cause error) *ValidationError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *ValidationError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("validation failed for %s: %s (got %v)", e.Field, e.Reason, e.Value)
	}
	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Reason)
}

// Unwrap returns the attached sentinel, if any.
func (e *ValidationError) Unwrap() error {
	return e.cause
}

// IOError represents a failure to create or write the session log.
//
// The underlying OS error is preserved, so callers can still match
// against io/fs sentinels:
//
//	if errors.Is(err, fs.ErrPermission) { ... }
type IOError struct {
	// Op describes the operation that failed (e.g. "create log directory").
	Op string
	// Path is the file or directory involved.
	Path string
	// cause is the underlying error.
	cause error
}

// NewIOError creates a new IOError wrapping the underlying failure.
func NewIOError(op, path string, cause error) *IOError {
	return &IOError{
		Op:    op,
		Path:  path,
		cause: cause,
	}
}

// Error returns the formatted error message.
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.cause)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.cause)
}

// Unwrap returns the underlying error.
func (e *IOError) Unwrap() error {
	return e.cause
}

// -----------------------------------------------------------------------------
// Classification Helpers
// -----------------------------------------------------------------------------

// IsNotStarted returns true if the error indicates the monitor was not in
// the Started state.
func IsNotStarted(err error) bool {
	return Is(err, ErrNotStarted) || Is(err, ErrStopped)
}

// IsValidation returns true if the error is a ValidationError.
func IsValidation(err error) bool {
	var verr *ValidationError
	return As(err, &verr)
}

// IsIO returns true if the error is an IOError.
func IsIO(err error) bool {
	var ioerr *IOError
	return As(err, &ioerr)
}
