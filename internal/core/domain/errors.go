package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a business domain error with a structured error code.
type DomainError struct {
	Code    string // Error code (e.g., "KM-CMD-4000")
	Message string // Human-readable message; also the wire reply text
	Details string // Optional additional details
	Cause   error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is() support for error comparison.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new DomainError with the given code and message.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *DomainError) WithDetails(details string) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		Cause:   e.Cause,
	}
}

// WithCause returns a copy of the error wrapping the given cause.
func (e *DomainError) WithCause(cause error) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		Cause:   cause,
	}
}

// IsDomainError checks if an error is a DomainError with the given code.
// If code is empty, it only checks if the error is a DomainError.
func IsDomainError(err error, code string) bool {
	var de *DomainError
	if errors.As(err, &de) {
		if code == "" {
			return true
		}
		return de.Code == code
	}
	return false
}

// Reply converts an error to its wire representation: the Message for
// DomainErrors, err.Error() otherwise.
func Reply(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Message
	}
	return err.Error()
}

// ============================================================================
// Command Errors (CMD)
// ============================================================================

var (
	// ErrUnknownCommand indicates a command not present in the registry.
	ErrUnknownCommand = NewDomainError("KM-CMD-4000", "Unknown command")

	// ErrTooFewParams indicates a key-owning command arrived without a key
	// or without its required arguments.
	ErrTooFewParams = NewDomainError("KM-CMD-4001", "Too few parameters")

	// ErrNotImplemented is the reply for commands named in the vocabulary
	// but intentionally left unimplemented.
	ErrNotImplemented = NewDomainError("KM-CMD-5010", "Not implemented")
)

// ============================================================================
// Type Errors (TYPE)
// ============================================================================

var (
	// ErrWrongType indicates a command reached an actor of the wrong type.
	ErrWrongType = NewDomainError("KM-TYPE-4090", "wrong node type")
)

// WrongType builds the type-mismatch diagnostic for a command routed to
// an actor of another type.
func WrongType(cmd string, want, got NodeType) *DomainError {
	return ErrWrongType.WithDetails(
		fmt.Sprintf("'%s' targets a %s node but key holds a %s node", cmd, want, got))
}

// ============================================================================
// Value Errors (VAL)
// ============================================================================

var (
	// ErrNotInteger indicates integer arithmetic on a non-numeric value.
	ErrNotInteger = NewDomainError("KM-VAL-4002", "value is not an integer")

	// ErrNotFloat indicates float arithmetic on a non-numeric value.
	ErrNotFloat = NewDomainError("KM-VAL-4003", "value is not a valid float")

	// ErrInvalidCursor indicates a scan cursor that is not a non-negative
	// integer, or a scan count that is not a positive integer.
	ErrInvalidCursor = NewDomainError("KM-VAL-4004", "invalid cursor")

	// ErrBadPattern indicates a glob pattern that failed to compile.
	ErrBadPattern = NewDomainError("KM-VAL-4005", "invalid pattern")

	// ErrIndexOutOfRange indicates a positional list access past either end.
	ErrIndexOutOfRange = NewDomainError("KM-VAL-4006", "index out of range")

	// ErrSyntax indicates a malformed argument where a keyword was expected.
	ErrSyntax = NewDomainError("KM-VAL-4007", "syntax error")
)

// ============================================================================
// Dispatch Errors (ASK)
// ============================================================================

var (
	// ErrAskTimeout indicates an internal ask exceeded its budget.
	ErrAskTimeout = NewDomainError("KM-ASK-5040", "timed out waiting for reply")

	// ErrActorStopped indicates the target actor terminated before replying.
	ErrActorStopped = NewDomainError("KM-ASK-5041", "node is gone")
)
