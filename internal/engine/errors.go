package engine

import (
	"errors"
	"fmt"

	"github.com/roach88/inventory/internal/store"
)

// Error represents a failure to reconcile one candidate.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Product is the candidate's name.
	Product string

	// Message is a human-readable description.
	Message string

	// Err is the underlying cause, if any.
	Err error
}

// ErrorCode categorizes reconciliation errors.
type ErrorCode string

const (
	// ErrCodeStoreFailure indicates the store rejected a create or save.
	ErrCodeStoreFailure ErrorCode = "STORE_FAILURE"

	// ErrCodeInvalidCandidate indicates the candidate violates a record invariant.
	ErrCodeInvalidCandidate ErrorCode = "INVALID_CANDIDATE"
)

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (product=%q): %v", e.Code, e.Message, e.Product, e.Err)
	}
	return fmt.Sprintf("%s: %s (product=%q)", e.Code, e.Message, e.Product)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// IsStoreError returns true if the error is a store failure.
// Uses errors.As to handle wrapped errors.
func IsStoreError(err error) bool {
	var re *Error
	if errors.As(err, &re) {
		return re.Code == ErrCodeStoreFailure
	}
	return false
}

// IsInvalidCandidate returns true if the error is an invalid candidate error.
func IsInvalidCandidate(err error) bool {
	var re *Error
	if errors.As(err, &re) {
		return re.Code == ErrCodeInvalidCandidate
	}
	return false
}

// NewStoreError creates an Error for a failed store operation.
func NewStoreError(name, op string, err error) *Error {
	return &Error{
		Code:    ErrCodeStoreFailure,
		Product: name,
		Message: op + " failed",
		Err:     err,
	}
}

// NewInvalidCandidateError creates an Error for a candidate that cannot be stored.
func NewInvalidCandidateError(name, reason string) *Error {
	return &Error{
		Code:    ErrCodeInvalidCandidate,
		Product: name,
		Message: reason,
	}
}

func errUnknownOutcome(o store.Outcome) error {
	return fmt.Errorf("unexpected create outcome %d", int(o))
}
