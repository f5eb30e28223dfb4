// Package errors provides a typed error system for exit code handling.
//
// The error types follow the failure categories of a publishing run:
//   - ValidationError: unknown flags, missing values or flag combinations
//   - RuntimeError: missing or unreadable files and malformed manifests
//   - PendingChangesError: a dry-run found template files that still
//     reference local features
//
// Every category exits with status 1. PendingChangesError is not a crash;
// callers use IsPolicy to report it as "needs attention" instead of a failure.
//
// Example usage:
//
//	if namespace == "" {
//		return errors.NewValidationError("--namespace is required", nil)
//	}
//
//	if err := readFile(path); err != nil {
//		return errors.NewRuntimeError("failed to read manifest", err)
//	}
//
//	os.Exit(errors.GetExitCode(err))
package errors

import (
	"errors"
	"fmt"
)

// ValidationError represents a validation or usage error.
type ValidationError struct {
	Message string
	Cause   error
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap implements the error unwrapping interface for error chain inspection.
func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// RuntimeError represents a filesystem or manifest content failure.
type RuntimeError struct {
	Message string
	Cause   error
}

// Error implements the error interface for RuntimeError.
func (e *RuntimeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap implements the error unwrapping interface for error chain inspection.
func (e *RuntimeError) Unwrap() error {
	return e.Cause
}

// PendingChangesError reports files a dry-run would have to rewrite.
type PendingChangesError struct {
	Files []string
}

func (e *PendingChangesError) Error() string {
	return fmt.Sprintf("%d template file(s) reference local features", len(e.Files))
}

// NewValidationError creates a new ValidationError with the given message and cause.
// Returns an error interface to support standard Go error handling.
func NewValidationError(msg string, cause error) error {
	return &ValidationError{
		Message: msg,
		Cause:   cause,
	}
}

// NewRuntimeError creates a new RuntimeError with the given message and cause.
// Returns an error interface to support standard Go error handling.
func NewRuntimeError(msg string, cause error) error {
	return &RuntimeError{
		Message: msg,
		Cause:   cause,
	}
}

// NewPendingChangesError creates a PendingChangesError for the given files.
func NewPendingChangesError(files []string) error {
	return &PendingChangesError{Files: files}
}

// IsPolicy reports whether err is a dry-run policy failure rather than a crash.
func IsPolicy(err error) bool {
	var pending *PendingChangesError
	return errors.As(err, &pending)
}

// GetExitCode extracts the process exit code from an error.
// Returns:
//   - 0 for nil
//   - 1 for every other error, whatever its category
func GetExitCode(err error) int {
	if err == nil {
		return 0
	}
	return 1
}
