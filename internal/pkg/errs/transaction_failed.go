package errs

import (
	"errors"
	"fmt"
)

var (
	ErrTransactionFailed = errors.New("transaction failed")

	// ErrNestedTransaction is returned when a transaction is started while
	// another one is still active on the same unit of work.
	ErrNestedTransaction = errors.New("nested transactions are not supported")
)

// TransactionFailedError reports that the storage engine could not begin or
// commit a transaction. Operation is "begin" or "commit".
type TransactionFailedError struct {
	Operation string
	Cause     error
}

func NewTransactionFailedErrorWithCause(operation string, cause error) *TransactionFailedError {
	return &TransactionFailedError{
		Operation: operation,
		Cause:     cause,
	}
}

func NewTransactionFailedError(operation string) *TransactionFailedError {
	return &TransactionFailedError{
		Operation: operation,
	}
}

func (e *TransactionFailedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrTransactionFailed, e.Operation, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrTransactionFailed, e.Operation)
}

func (e *TransactionFailedError) Unwrap() error {
	return ErrTransactionFailed
}
