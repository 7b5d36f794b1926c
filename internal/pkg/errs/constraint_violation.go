package errs

import (
	"errors"
	"fmt"
)

var ErrConstraintViolation = errors.New("constraint violation")

// ConstraintViolationError reports a write rejected by a storage integrity
// rule: unique key, foreign key, not-null or check constraint.
type ConstraintViolationError struct {
	Constraint string
	Cause      error
}

func NewConstraintViolationErrorWithCause(constraint string, cause error) *ConstraintViolationError {
	return &ConstraintViolationError{
		Constraint: constraint,
		Cause:      cause,
	}
}

func NewConstraintViolationError(constraint string) *ConstraintViolationError {
	return &ConstraintViolationError{
		Constraint: constraint,
	}
}

func (e *ConstraintViolationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrConstraintViolation, e.Constraint, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrConstraintViolation, e.Constraint)
}

func (e *ConstraintViolationError) Unwrap() error {
	return ErrConstraintViolation
}
