package domain

import "errors"

var (
	// ErrParse is returned when the source cannot be parsed. It is fatal for the file.
	ErrParse = errors.New("parse failed")
	// ErrRoutineNotFound is returned when no top-level routine has the requested name.
	ErrRoutineNotFound = errors.New("routine not found")
	// ErrNotInvocable is returned for routines that take parameters or return more than one value.
	ErrNotInvocable = errors.New("routine is not invocable without arguments")
	// ErrExecution wraps failures raised while running interpreted code.
	ErrExecution = errors.New("execution failed")
)
