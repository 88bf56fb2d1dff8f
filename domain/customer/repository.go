package customer

import "context"

// Repository customer lookup interface
// This service never creates or updates customers, so the interface stays a
// pure read port. Implementations return ErrCustomerNotFound (wrapped) when
// the id does not resolve.
type Repository interface {
	// FindByID Find customer aggregate root by ID
	FindByID(ctx context.Context, id string) (*Customer, error)
}
