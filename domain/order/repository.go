package order

import "context"

// Repository order store interface
type Repository interface {
	// Save Save the order aggregate root with all its line items.
	// order.IsNew() decides between insert and optimistic-locked update.
	// Repository only handles persistence; events are collected by the unit
	// of work and stored in the outbox table.
	Save(ctx context.Context, order *Order) error

	// FindByID Find order aggregate root by ID
	FindByID(ctx context.Context, id string) (*Order, error)

	// FindByCustomerID Find a customer's orders, newest first
	FindByCustomerID(ctx context.Context, customerID string) ([]*Order, error)
}
