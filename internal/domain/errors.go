package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation  = errors.New("invalid input")
	ErrNotFound    = errors.New("event not found")
	ErrPersistence = errors.New("persistence failure")
)

// ValidationError reports malformed or contradictory input, naming the field
// that failed. It matches ErrValidation under errors.Is.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NotFoundError reports that no event matched the given key (an ID or a
// summary). It matches ErrNotFound under errors.Is.
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no event matching %q", e.Key)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// PersistenceError reports that durable storage failed during Op ("load" or
// "save"). It matches ErrPersistence under errors.Is and unwraps to the
// underlying cause.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s events: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func (e *PersistenceError) Is(target error) bool { return target == ErrPersistence }
