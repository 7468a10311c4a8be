// Package serrors defines the error taxonomy for the scour pipeline.
//
// Only two classes of failure abort an invocation: invalid input (empty
// query, missing root) and a failure to encode the result document. Every
// per-file problem during a scan degrades to a skip counter instead.
package serrors

import (
	"errors"
	"fmt"
)

// ErrorType classifies pipeline errors
type ErrorType string

const (
	// ErrorTypeInvalidInput covers pre-scan validation failures
	ErrorTypeInvalidInput ErrorType = "invalid_input"

	// ErrorTypeSerialization covers result encoding failures, which
	// indicate a programming defect rather than bad input
	ErrorTypeSerialization ErrorType = "serialization"
)

// ErrEmptyQuery is returned when the query trims to nothing.
// No filesystem access is attempted in this case.
var ErrEmptyQuery = &InputError{Field: "query", Reason: "query cannot be empty"}

// InputError represents an invalid-input error that fails the invocation
// before any scanning starts.
type InputError struct {
	Field  string
	Value  string
	Reason string
}

// NewInputError creates an invalid-input error for a named input
func NewInputError(field, value, reason string) *InputError {
	return &InputError{Field: field, Value: value, Reason: reason}
}

// Error implements the error interface
func (e *InputError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("%s: %s", e.Reason, e.Value)
	}
	return e.Reason
}

// Type returns the taxonomy class
func (e *InputError) Type() ErrorType {
	return ErrorTypeInvalidInput
}

// SerializationError wraps a failure to encode the result document
type SerializationError struct {
	Format     string
	Underlying error
}

// NewSerializationError creates a serialization error
func NewSerializationError(format string, err error) *SerializationError {
	return &SerializationError{Format: format, Underlying: err}
}

// Error implements the error interface
func (e *SerializationError) Error() string {
	return fmt.Sprintf("failed to encode %s result: %v", e.Format, e.Underlying)
}

// Unwrap returns the underlying error for errors.Is/As
func (e *SerializationError) Unwrap() error {
	return e.Underlying
}

// IsInvalidInput reports whether err is an invalid-input error
func IsInvalidInput(err error) bool {
	var ie *InputError
	return errors.As(err, &ie)
}
