package errs

import (
	"errors"
	"fmt"
)

// TransactionAbortError marks a storage transaction that could not be completed:
// begin or commit failed, the database chose the transaction as a serialization or
// deadlock victim, or a guarded write lost a race. Nothing was persisted and the whole
// operation is safe to retry.
type TransactionAbortError struct {
	Op    string
	Cause error
}

func NewTransactionAbortError(op string, cause error) *TransactionAbortError {
	return &TransactionAbortError{
		Op:    op,
		Cause: cause,
	}
}

func (e *TransactionAbortError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrTransactionAborted, e.Op, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrTransactionAborted, e.Op)
}

func (e *TransactionAbortError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrTransactionAborted}
	}
	return []error{ErrTransactionAborted, e.Cause}
}

// IsRetryable reports whether err is a transaction abort anywhere in its chain.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrTransactionAborted)
}
