package orderflow

import (
	"errors"
	"fmt"
)

// ErrPaymentFailed matches every *PaymentFailedError.
var ErrPaymentFailed = errors.New("payment failed")

// PaymentFailedError reports a declined, failed or timed-out payment. The draft stays
// in PaymentChosen and the payment can be retried.
type PaymentFailedError struct {
	Reason string
	Cause  error
}

func (e *PaymentFailedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrPaymentFailed, e.Reason, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrPaymentFailed, e.Reason)
}

func (e *PaymentFailedError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrPaymentFailed, e.Cause}
	}
	return []error{ErrPaymentFailed}
}

// Retryable is always true: nothing was persisted, so the same call may be repeated.
func (e *PaymentFailedError) Retryable() bool {
	return true
}
