/*
Package customer - customer subdomain.

Customers are owned by an external subsystem; this service only reads them to
validate that an order is placed by a registered customer. The aggregate is
therefore small: no behavior methods mutate it here, and it records no events.
*/
package customer

import "time"

// Customer aggregate root
// All fields private, exposed through read-only getters.
type Customer struct {
	id        string
	name      string
	email     string
	createdAt time.Time
}

// ReconstructionDTO customer reconstruction data transfer object
// Limited to repository layer usage, for rebuilding the aggregate from storage.
type ReconstructionDTO struct {
	ID        string
	Name      string
	Email     string
	CreatedAt time.Time
}

// RebuildFromDTO rebuilds a Customer aggregate from storage.
// Repository implementations only; never call from the application layer.
func RebuildFromDTO(dto ReconstructionDTO) *Customer {
	return &Customer{
		id:        dto.ID,
		name:      dto.Name,
		email:     dto.Email,
		createdAt: dto.CreatedAt,
	}
}

func (c *Customer) ID() string           { return c.id }
func (c *Customer) Name() string         { return c.name }
func (c *Customer) Email() string        { return c.email }
func (c *Customer) CreatedAt() time.Time { return c.createdAt }
