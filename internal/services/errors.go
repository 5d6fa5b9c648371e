package services

import (
	"errors"
	"fmt"
)

// Guard failures are domain-rule rejections, returned as values so handlers
// can render a message without treating them as server faults.
var (
	ErrRideFull           = errors.New("ride is full")
	ErrAlreadyRider       = errors.New("user is already a rider on this ride")
	ErrDuplicateRequest   = errors.New("user already has an active request for this ride")
	ErrNotRider           = errors.New("user is not a rider on this ride")
	ErrRequestNotPending  = errors.New("request has already been accepted, rejected, or cancelled")
	ErrWrongActor         = errors.New("operation not permitted for this user")
	ErrCreatorCannotLeave = errors.New("ride creator cannot be removed from their own ride")
)

// ValidationError reports malformed input. It is surfaced to the caller for
// user-facing messaging and never persisted.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func invalid(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// IsGuardFailure reports whether err is one of the domain guard failures.
func IsGuardFailure(err error) bool {
	switch {
	case errors.Is(err, ErrRideFull),
		errors.Is(err, ErrAlreadyRider),
		errors.Is(err, ErrDuplicateRequest),
		errors.Is(err, ErrNotRider),
		errors.Is(err, ErrRequestNotPending),
		errors.Is(err, ErrWrongActor),
		errors.Is(err, ErrCreatorCannotLeave):
		return true
	}
	return false
}
