package mocks

import (
	"context"
	"sync"
	"time"

	"shop/domain/customer"
)

// MockCustomerRepository in-memory customer lookup.
// The customer base is owned by an external subsystem, so this mock is
// read-only: seed it, then look customers up.
type MockCustomerRepository struct {
	customers map[string]*customer.Customer
	mu        sync.RWMutex
}

// NewMockCustomerRepository creates an empty mock customer repository.
func NewMockCustomerRepository() *MockCustomerRepository {
	return &MockCustomerRepository{
		customers: make(map[string]*customer.Customer),
	}
}

// AddCustomer seeds one customer.
func (r *MockCustomerRepository) AddCustomer(id, name, email string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.customers[id] = customer.RebuildFromDTO(customer.ReconstructionDTO{
		ID:        id,
		Name:      name,
		Email:     email,
		CreatedAt: time.Now(),
	})
}

func (r *MockCustomerRepository) FindByID(ctx context.Context, id string) (*customer.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, exists := r.customers[id]
	if !exists {
		return nil, customer.NewCustomerNotFoundError(id)
	}
	return c, nil
}

var _ customer.Repository = (*MockCustomerRepository)(nil)
