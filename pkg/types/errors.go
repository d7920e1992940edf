package types

import (
	"errors"
	"fmt"
	"math"
)

// ErrValidation is matched by every entity invariant violation
var ErrValidation = errors.New("validation failed")

// Domain errors for entity validation
var (
	ErrEmptyID             = errors.New("id is required")
	ErrEmptyName           = errors.New("name is required")
	ErrEmptyCustomerID     = errors.New("customer id is required")
	ErrEmptyProductID      = errors.New("product id is required")
	ErrNegativePrice       = errors.New("price must be >= 0")
	ErrNonFinitePrice      = errors.New("price must be a finite number")
	ErrNonFiniteTotal      = errors.New("total must be a finite number")
	ErrNonPositiveQuantity = errors.New("quantity must be greater than 0")
	ErrNoItems             = errors.New("order must have at least one item")
	ErrNegativePoints      = errors.New("reward points must be >= 0")
	ErrAddressRequired     = errors.New("address is mandatory to activate a customer")

	// Address errors
	ErrEmptyStreet       = errors.New("street is required")
	ErrNonPositiveNumber = errors.New("number must be greater than 0")
	ErrEmptyZip          = errors.New("zip is required")
	ErrEmptyCity         = errors.New("city is required")
)

// ValidationError reports which entity field broke an invariant
type ValidationError struct {
	Entity string
	Field  string
	Err    error
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s.%s: %v", e.Entity, e.Field, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Entity, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Is makes every ValidationError match ErrValidation
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// checkPrice reports why price cannot be used, or nil
func checkPrice(price float64) error {
	switch {
	case math.IsNaN(price) || math.IsInf(price, 0):
		return ErrNonFinitePrice
	case price < 0:
		return ErrNegativePrice
	}
	return nil
}

func invalid(entity, field string, err error) error {
	return &ValidationError{Entity: entity, Field: field, Err: err}
}

// IsValidation reports whether err is an entity invariant violation
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}
