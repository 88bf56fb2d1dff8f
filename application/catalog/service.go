// Package catalog - application layer, read side of the product catalog.
package catalog

import (
	"context"
	"time"

	"shop/domain/product"
)

// ApplicationService exposes catalog reads to the API layer.
type ApplicationService struct {
	productRepo product.Repository
}

// NewApplicationService creates the catalog application service.
func NewApplicationService(productRepo product.Repository) *ApplicationService {
	return &ApplicationService{productRepo: productRepo}
}

// ProductResponse product response DTO
type ProductResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	UnitPrice int64     `json:"unit_price"`
	Currency  string    `json:"currency"`
	Quantity  int       `json:"quantity"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GetProduct returns one product by id.
func (s *ApplicationService) GetProduct(ctx context.Context, productID string) (*ProductResponse, error) {
	p, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	return &ProductResponse{
		ID:        p.ID(),
		Name:      p.Name(),
		UnitPrice: p.UnitPrice().Amount(),
		Currency:  p.UnitPrice().Currency(),
		Quantity:  p.Quantity(),
		UpdatedAt: p.UpdatedAt(),
	}, nil
}
