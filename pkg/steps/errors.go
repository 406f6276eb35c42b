package steps

import (
	"errors"
	"fmt"
)

var (
	ErrNoSteps     = errors.New("no steps")
	ErrDuplicateID = errors.New("duplicate step id")
)

// StepExecutionError wraps the error returned by a failing step.
type StepExecutionError struct {
	Step  StepID
	Index int
	Err   error
}

func (e *StepExecutionError) Error() string {
	return fmt.Sprintf("step %s failed: %v", e.Step, e.Err)
}

func (e *StepExecutionError) Unwrap() error {
	return e.Err
}

// RollbackError reports that cleanup after a failure did not complete.
type RollbackError struct {
	Err error
}

func (e *RollbackError) Error() string {
	return fmt.Sprintf("rollback failed: %v", e.Err)
}

func (e *RollbackError) Unwrap() error {
	return e.Err
}
