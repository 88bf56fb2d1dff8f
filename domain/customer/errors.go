package customer

import (
	"errors"

	"shop/domain/shared"
)

var (
	// ErrCustomerNotFound customer id could not be resolved
	// Usable with errors.Is(err, ErrCustomerNotFound)
	ErrCustomerNotFound = errors.New("customer not found")
)

// NewCustomerNotFoundError creates a customer-not-found error with stack.
func NewCustomerNotFoundError(customerID string) error {
	return &customerDomainError{
		sentinel: ErrCustomerNotFound,
		entity:   "customer",
		message:  "customer not found: " + customerID,
		stack:    shared.CaptureStack(3),
	}
}

// customerDomainError customer domain error (with stack)
type customerDomainError struct {
	sentinel error
	entity   string
	message  string
	stack    []uintptr
}

func (e *customerDomainError) Error() string {
	return e.message
}

func (e *customerDomainError) Unwrap() error {
	return e.sentinel
}

// Stack implements shared.Stacker.
func (e *customerDomainError) Stack() []string {
	if len(e.stack) == 0 {
		return nil
	}
	return shared.FormatStack(e.stack)
}
