/*
Package product - catalog subdomain.

Products are owned by the external catalog subsystem. The order workflow reads
current state (price, available quantity) and decrements stock after an order
is placed; it never creates or deletes products. The aggregate keeps a version
field so repositories can apply optimistic concurrency on stock updates.
*/
package product

import (
	"time"

	"shop/domain/shared"
)

// Product aggregate root
type Product struct {
	id        string
	name      string
	unitPrice shared.Money
	quantity  int // units currently available for sale
	version   int // optimistic lock version, bumped on every stock update
	createdAt time.Time
	updatedAt time.Time
}

// ReconstructionDTO product reconstruction data transfer object
// Repository implementations only; never call from the application layer.
type ReconstructionDTO struct {
	ID        string
	Name      string
	UnitPrice shared.Money
	Quantity  int
	Version   int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RebuildFromDTO rebuilds a Product aggregate from storage.
func RebuildFromDTO(dto ReconstructionDTO) *Product {
	return &Product{
		id:        dto.ID,
		name:      dto.Name,
		unitPrice: dto.UnitPrice,
		quantity:  dto.Quantity,
		version:   dto.Version,
		createdAt: dto.CreatedAt,
		updatedAt: dto.UpdatedAt,
	}
}

// CanFulfill reports whether the available quantity covers the requested one.
// This is the read-side sufficiency check; the repository re-checks
// atomically when the stock is actually decremented.
func (p *Product) CanFulfill(quantity int) bool {
	return quantity > 0 && quantity <= p.quantity
}

func (p *Product) ID() string              { return p.id }
func (p *Product) Name() string            { return p.name }
func (p *Product) UnitPrice() shared.Money { return p.unitPrice }
func (p *Product) Quantity() int           { return p.quantity }
func (p *Product) Version() int            { return p.version }
func (p *Product) CreatedAt() time.Time    { return p.createdAt }
func (p *Product) UpdatedAt() time.Time    { return p.updatedAt }
