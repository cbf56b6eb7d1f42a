package checkout

import (
	"errors"
	"fmt"
)

// ValidationError reasons.
const (
	ReasonMissingLocation = "missingLocation"
	ReasonMissingService  = "missingService"
	ReasonInvalidCustomer = "invalidCustomer"
	ReasonMalformedPrice  = "malformedPrice"
)

// ValidationError reports a malformed order draft. Reason is one of the
// Reason* constants; Field carries the offending customer field when the
// reason is invalidCustomer.
type ValidationError struct {
	Reason string
	Field  string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed: %s (%s)", e.Reason, e.Field)
	}
	return "validation failed: " + e.Reason
}

// NewValidationError builds a ValidationError with the given reason.
func NewValidationError(reason string) error {
	return &ValidationError{Reason: reason}
}

// OrderCreationError signals that the backend refused or failed to create a
// payment session. Retrying with the same draft is safe.
type OrderCreationError struct {
	Err error
}

func (e *OrderCreationError) Error() string {
	return fmt.Sprintf("order creation failed: %v", e.Err)
}

func (e *OrderCreationError) Unwrap() error { return e.Err }

// ProviderUnavailableError signals that the payment gateway could not be
// loaded or reached. Retrying is safe.
type ProviderUnavailableError struct {
	Err error
}

func (e *ProviderUnavailableError) Error() string {
	return fmt.Sprintf("payment gateway not available: %v", e.Err)
}

func (e *ProviderUnavailableError) Unwrap() error { return e.Err }

// VerificationError signals that a payment proof was rejected. The proof is
// single-use; the caller must not retry verification without explicit user
// action.
type VerificationError struct {
	ProviderOrderID string
	Err             error
}

func (e *VerificationError) Error() string {
	return fmt.Sprintf("payment verification failed for order %s: %v", e.ProviderOrderID, e.Err)
}

func (e *VerificationError) Unwrap() error { return e.Err }

// errProviderAbsent covers the case where the loader reports success but no
// gateway was bound.
var errProviderAbsent = errors.New("gateway still absent after load")

// StateError reports an operation invoked in a state that does not allow it.
type StateError struct {
	Op    string
	State State
}

func (e *StateError) Error() string {
	return fmt.Sprintf("%s not allowed in state %s", e.Op, e.State)
}
