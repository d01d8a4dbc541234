package notification

import (
	"context"
	"errors"
	"fmt"
)

// TransientError marks a delivery failure that is likely to succeed on retry
// (timeouts, throttling, temporary unavailability).
type TransientError struct {
	Err error
}

func NewTransientError(err error) *TransientError {
	return &TransientError{Err: err}
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("transient delivery error: %v", e.Err)
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

// PermanentError marks a delivery failure that retrying will not help
// (invalid recipient, hard rejection).
type PermanentError struct {
	Err error
}

func NewPermanentError(err error) *PermanentError {
	return &PermanentError{Err: err}
}

func (e *PermanentError) Error() string {
	return fmt.Sprintf("permanent delivery error: %v", e.Err)
}

func (e *PermanentError) Unwrap() error {
	return e.Err
}

func IsPermanent(err error) bool {
	var permanent *PermanentError
	return errors.As(err, &permanent)
}

// IsTransient treats unclassified errors and attempt timeouts as transient,
// so an unknown failure mode gets bounded retries rather than none.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	return !IsPermanent(err)
}
