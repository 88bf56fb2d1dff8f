package mocks

import (
	"context"
	"sort"
	"sync"

	"shop/domain/order"
)

// MockOrderRepository in-memory order store.
// Repositories persist aggregates only; events are collected by the unit of
// work and handed to the outbox, never published from here.
type MockOrderRepository struct {
	orders map[string]*order.Order
	mu     sync.RWMutex
}

// NewMockOrderRepository creates an empty mock order repository.
func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{
		orders: make(map[string]*order.Order),
	}
}

func (r *MockOrderRepository) Save(ctx context.Context, o *order.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !o.IsNew() {
		existing, exists := r.orders[o.ID()]
		if exists && existing.Version() != o.Version() {
			return order.NewConcurrentModificationError(o.ID())
		}
	}

	o.IncrementVersionForSave()
	r.orders[o.ID()] = o
	o.ClearNewFlag()
	return nil
}

func (r *MockOrderRepository) FindByID(ctx context.Context, id string) (*order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, exists := r.orders[id]
	if !exists {
		return nil, order.NewOrderNotFoundError(id)
	}
	return o, nil
}

func (r *MockOrderRepository) FindByCustomerID(ctx context.Context, customerID string) ([]*order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var orders []*order.Order
	for _, o := range r.orders {
		if o.CustomerID() == customerID {
			orders = append(orders, o)
		}
	}
	// Map iteration order is random; the port contract is newest first.
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt().After(orders[j].CreatedAt())
	})
	return orders, nil
}

// Count returns the number of stored orders.
func (r *MockOrderRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.orders)
}

// Snapshot captures the current order set and returns a restore closure.
func (r *MockOrderRepository) Snapshot() func() {
	r.mu.RLock()
	saved := make(map[string]*order.Order, len(r.orders))
	for id, o := range r.orders {
		saved[id] = o
	}
	r.mu.RUnlock()

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.orders = saved
	}
}

var _ order.Repository = (*MockOrderRepository)(nil)
