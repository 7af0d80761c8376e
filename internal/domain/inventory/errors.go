package inventory

import (
	"errors"
	"fmt"
)

// Common errors
var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrItemNotFound         = errors.New("item not found")
	ErrInsufficientQuantity = errors.New("insufficient quantity")
	ErrParse                = errors.New("inventory data is not valid JSON")
	ErrIO                   = errors.New("inventory storage failure")
)

// InvalidInputError reports a malformed argument or malformed persisted data.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s", e.Reason)
}

func (e *InvalidInputError) Unwrap() error {
	return ErrInvalidInput
}

// InsufficientQuantityError reports a removal that asked for more than is held.
// Both amounts are part of the contract so callers can surface them.
type InsufficientQuantityError struct {
	Item      string
	Held      int
	Requested int
}

func (e *InsufficientQuantityError) Error() string {
	return fmt.Sprintf("insufficient quantity of %q: held %d, requested %d", e.Item, e.Held, e.Requested)
}

func (e *InsufficientQuantityError) Unwrap() error {
	return ErrInsufficientQuantity
}

func invalidInput(format string, args ...interface{}) error {
	return &InvalidInputError{Reason: fmt.Sprintf(format, args...)}
}
