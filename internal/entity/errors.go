package entity

import (
	"errors"
	"fmt"
)

var (
	// Item errors
	ErrItemNotFound     = errors.New("item not found")
	ErrDuplicateItem    = errors.New("item with this code already exists")
	ErrCapacityExceeded = errors.New("not enough remaining capacity")
	ErrNotSellable      = errors.New("item is not open for sale")

	// Customer errors
	ErrCustomerNotFound  = errors.New("customer not found")
	ErrDuplicateCustomer = errors.New("customer with this id already exists")

	// Sale errors
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrDuplicateSale   = errors.New("sale already recorded")

	// General errors
	ErrInvalidInput = errors.New("invalid input")
)

// ValidationError reports a single field that violated its constraint.
// It unwraps to ErrInvalidInput.
type ValidationError struct {
	Field      string
	Constraint string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Constraint)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

func invalid(field, constraint string) error {
	return &ValidationError{Field: field, Constraint: constraint}
}
