package po

import (
	"time"

	"shop/domain/customer"
)

// CustomerPO Customer persistence object
type CustomerPO struct {
	ID        string    `gorm:"primaryKey;size:64"`
	Name      string    `gorm:"size:255;not null"`
	Email     string    `gorm:"size:255;uniqueIndex;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// TableName Specify table name
func (CustomerPO) TableName() string {
	return "customers"
}

// ToDomain Convert persistence object to domain model
func (po *CustomerPO) ToDomain() *customer.Customer {
	return customer.RebuildFromDTO(customer.ReconstructionDTO{
		ID:        po.ID,
		Name:      po.Name,
		Email:     po.Email,
		CreatedAt: po.CreatedAt,
	})
}
