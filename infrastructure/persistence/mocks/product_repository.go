package mocks

import (
	"context"
	"sync"
	"time"

	"shop/domain/product"
	"shop/domain/shared"
)

// MockProductRepository in-memory product catalog.
// DecrementStock mirrors the conditional-update semantics of the MySQL
// implementation: every line is applied only if the stored quantity still
// covers it, and the whole batch fails on the first conflict.
type MockProductRepository struct {
	products map[string]*product.Product
	mu       sync.RWMutex
}

// NewMockProductRepository creates an empty mock product repository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products: make(map[string]*product.Product),
	}
}

// AddProduct seeds one product with the given price and stock level.
func (r *MockProductRepository) AddProduct(id, name string, unitPrice shared.Money, quantity int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	r.products[id] = product.RebuildFromDTO(product.ReconstructionDTO{
		ID:        id,
		Name:      name,
		UnitPrice: unitPrice,
		Quantity:  quantity,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

func (r *MockProductRepository) FindByID(ctx context.Context, id string) (*product.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, exists := r.products[id]
	if !exists {
		return nil, product.NewProductNotFoundError(id)
	}
	return p, nil
}

// FindAllByIDs returns the products that exist; unknown ids are simply
// absent from the result, membership checks belong to the caller.
func (r *MockProductRepository) FindAllByIDs(ctx context.Context, ids []string) ([]*product.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]*product.Product, 0, len(ids))
	for _, id := range ids {
		if p, exists := r.products[id]; exists {
			products = append(products, p)
		}
	}
	return products, nil
}

func (r *MockProductRepository) DecrementStock(ctx context.Context, decrements []product.StockDecrement) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Validate the whole batch before touching anything.
	for _, d := range decrements {
		p, exists := r.products[d.ProductID]
		if !exists {
			return product.NewProductNotFoundError(d.ProductID)
		}
		if p.Quantity() < d.Quantity {
			return product.NewStockConflictError(d.ProductID, d.Quantity)
		}
	}

	now := time.Now()
	for _, d := range decrements {
		p := r.products[d.ProductID]
		r.products[d.ProductID] = product.RebuildFromDTO(product.ReconstructionDTO{
			ID:        p.ID(),
			Name:      p.Name(),
			UnitPrice: p.UnitPrice(),
			Quantity:  p.Quantity() - d.Quantity,
			Version:   p.Version() + 1,
			CreatedAt: p.CreatedAt(),
			UpdatedAt: now,
		})
	}
	return nil
}

// Snapshot captures the current catalog state and returns a restore closure.
func (r *MockProductRepository) Snapshot() func() {
	r.mu.RLock()
	saved := make(map[string]*product.Product, len(r.products))
	for id, p := range r.products {
		saved[id] = p
	}
	r.mu.RUnlock()

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.products = saved
	}
}

var _ product.Repository = (*MockProductRepository)(nil)
