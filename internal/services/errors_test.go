package services

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsGuardFailure(t *testing.T) {
	guards := []error{
		ErrRideFull,
		ErrAlreadyRider,
		ErrDuplicateRequest,
		ErrNotRider,
		ErrRequestNotPending,
		ErrWrongActor,
		ErrCreatorCannotLeave,
	}

	for _, err := range guards {
		if !IsGuardFailure(err) {
			t.Errorf("%v should be a guard failure", err)
		}
		if !IsGuardFailure(fmt.Errorf("context: %w", err)) {
			t.Errorf("wrapped %v should still be a guard failure", err)
		}
	}

	if IsGuardFailure(errors.New("disk on fire")) {
		t.Error("arbitrary errors are not guard failures")
	}
	if IsGuardFailure(invalid("field", "reason")) {
		t.Error("validation errors are not guard failures")
	}
	if IsGuardFailure(nil) {
		t.Error("nil is not a guard failure")
	}
}

func TestValidationError_Message(t *testing.T) {
	err := invalid("capacity", "must be between 2 and 10")
	want := "invalid capacity: must be between 2 and 10"
	if err.Error() != want {
		t.Errorf("Error() = %q, expected %q", err.Error(), want)
	}

	var vErr *ValidationError
	if !errors.As(fmt.Errorf("create: %w", err), &vErr) {
		t.Error("wrapped validation errors should unwrap with errors.As")
	}
	if vErr.Field != "capacity" {
		t.Errorf("Field = %q", vErr.Field)
	}
}
