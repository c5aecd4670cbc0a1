package service

import (
	"errors"
	"fmt"
)

// Failure kinds surfaced by the service layer. Handlers translate these into
// the uniform error envelope; nothing else escapes except *PersistenceError.
var (
	// ErrNotFound means a referenced id did not resolve.
	ErrNotFound = errors.New("not found")
	// ErrInvalidReference means a nested foreign key points at a missing parent.
	ErrInvalidReference = errors.New("invalid reference")
	// ErrInvalidArgument means a caller-supplied value violates a constraint.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrPlanInactive means an entry was added to a plan whose active flag is off.
	ErrPlanInactive = errors.New("meal plan is not active")
	// ErrNoActivePlan means no meal plan currently has active=true.
	ErrNoActivePlan = errors.New("no active meal plan")
)

// PersistenceError wraps a storage engine failure that aborted a transaction.
// The whole aggregate operation has been rolled back when one is returned.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func persistence(op string, err error) *PersistenceError {
	return &PersistenceError{Op: op, Err: err}
}
