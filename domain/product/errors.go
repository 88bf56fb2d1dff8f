package product

import (
	"errors"
	"fmt"

	"shop/domain/shared"
)

var (
	// ErrProductNotFound product id could not be resolved
	ErrProductNotFound = errors.New("product not found")

	// ErrStockConflict the conditional stock decrement found less stock than
	// the earlier validation pass did. Raised at commit time when a
	// concurrent order consumed the remaining units first.
	ErrStockConflict = errors.New("stock changed concurrently, insufficient units remain")
)

// NewProductNotFoundError creates a product-not-found error with stack.
func NewProductNotFoundError(productID string) error {
	return &productDomainError{
		sentinel: ErrProductNotFound,
		entity:   "product",
		message:  "product not found: " + productID,
		stack:    shared.CaptureStack(3),
	}
}

// NewStockConflictError creates a commit-time stock conflict error with stack.
func NewStockConflictError(productID string, requested int) error {
	return &productDomainError{
		sentinel: ErrStockConflict,
		entity:   "product",
		message:  fmt.Sprintf("stock for product %s changed concurrently, cannot take %d units", productID, requested),
		stack:    shared.CaptureStack(3),
	}
}

// productDomainError product domain error (with stack)
type productDomainError struct {
	sentinel error
	entity   string
	message  string
	stack    []uintptr
}

func (e *productDomainError) Error() string {
	return e.message
}

func (e *productDomainError) Unwrap() error {
	return e.sentinel
}

// Stack implements shared.Stacker.
func (e *productDomainError) Stack() []string {
	if len(e.stack) == 0 {
		return nil
	}
	return shared.FormatStack(e.stack)
}
