/*
Package order - order domain errors.

Design:
1. Sentinel errors support errors.Is() checks across layers
2. Constructors capture the stack at creation for precise error logs
3. No HTTP status codes or other transport concepts here
*/
package order

import (
	"errors"
	"fmt"
	"strings"

	"shop/domain/shared"
)

var (
	// ErrOrderNotFound order does not exist
	ErrOrderNotFound = errors.New("order not found")

	// ErrInvalidOrder the request references at least one product id that is
	// not in the catalog
	ErrInvalidOrder = errors.New("invalid order")

	// ErrInsufficientStock a requested quantity exceeds the product's
	// available quantity
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrEmptyOrderItems order must contain at least one line
	ErrEmptyOrderItems = errors.New("order must have at least one item")

	// ErrInvalidQuantity line quantities must be positive
	ErrInvalidQuantity = errors.New("quantity must be positive")

	// ErrEmptyCustomer customer id is required
	ErrEmptyCustomer = errors.New("customer id is required")

	// ErrConcurrentModification optimistic lock conflict on save
	ErrConcurrentModification = errors.New("order was modified by another transaction, please retry")
)

// StockViolation one line that failed the sufficiency check.
type StockViolation struct {
	ProductID   string
	ProductName string
	Requested   int
	Available   int
}

// NewOrderNotFoundError creates an order-not-found error with stack.
func NewOrderNotFoundError(orderID string) error {
	return &orderDomainError{
		sentinel: ErrOrderNotFound,
		message:  "order not found: " + orderID,
		stack:    shared.CaptureStack(3),
	}
}

// NewUnknownProductsError creates an invalid-order error naming the product
// ids that did not resolve against the catalog.
func NewUnknownProductsError(missingIDs []string) error {
	return &orderDomainError{
		sentinel: ErrInvalidOrder,
		message:  "invalid order: unknown products: " + strings.Join(missingIDs, ", "),
		stack:    shared.CaptureStack(3),
	}
}

// NewInsufficientStockError creates an insufficient-stock error. The message
// identifies every offending product by display name.
func NewInsufficientStockError(violations []StockViolation) error {
	parts := make([]string, len(violations))
	for i, v := range violations {
		parts[i] = fmt.Sprintf("insufficient stock for %q: requested %d, available %d",
			v.ProductName, v.Requested, v.Available)
	}
	return &orderDomainError{
		sentinel:   ErrInsufficientStock,
		message:    strings.Join(parts, "; "),
		violations: violations,
		stack:      shared.CaptureStack(3),
	}
}

// NewEmptyOrderItemsError creates an empty-order error with stack.
func NewEmptyOrderItemsError() error {
	return &orderDomainError{
		sentinel: ErrEmptyOrderItems,
		message:  "order must have at least one item",
		stack:    shared.CaptureStack(3),
	}
}

// NewInvalidQuantityError creates an invalid-quantity error with stack.
func NewInvalidQuantityError(productID string, quantity int) error {
	return &orderDomainError{
		sentinel: ErrInvalidQuantity,
		message:  fmt.Sprintf("quantity for product %s must be positive, got %d", productID, quantity),
		stack:    shared.CaptureStack(3),
	}
}

// NewEmptyCustomerError creates an empty-customer error with stack.
func NewEmptyCustomerError() error {
	return &orderDomainError{
		sentinel: ErrEmptyCustomer,
		message:  "customer id is required",
		stack:    shared.CaptureStack(3),
	}
}

// NewConcurrentModificationError creates an optimistic-lock conflict error.
func NewConcurrentModificationError(orderID string) error {
	return &orderDomainError{
		sentinel: ErrConcurrentModification,
		message:  "order " + orderID + " was modified by another transaction, please retry",
		stack:    shared.CaptureStack(3),
	}
}

// orderDomainError order domain error (with stack)
type orderDomainError struct {
	sentinel   error
	message    string
	violations []StockViolation
	stack      []uintptr
}

func (e *orderDomainError) Error() string {
	return e.message
}

func (e *orderDomainError) Unwrap() error {
	return e.sentinel
}

// Stack implements shared.Stacker.
func (e *orderDomainError) Stack() []string {
	if len(e.stack) == 0 {
		return nil
	}
	return shared.FormatStack(e.stack)
}

// Violations returns the stock violations behind an ErrInsufficientStock,
// or nil for other errors.
func (e *orderDomainError) Violations() []StockViolation {
	return e.violations
}
