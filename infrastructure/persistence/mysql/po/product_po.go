package po

import (
	"time"

	"shop/domain/product"
	"shop/domain/shared"
)

// ProductPO Product persistence object
type ProductPO struct {
	ID        string    `gorm:"primaryKey;size:64"`
	Name      string    `gorm:"size:255;not null"`
	UnitPrice int64     `gorm:"not null"`
	Currency  string    `gorm:"size:3;not null"`
	Quantity  int       `gorm:"not null"` // units available for sale, never below zero
	Version   int       `gorm:"default:0"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName Specify table name
func (ProductPO) TableName() string {
	return "products"
}

// ToDomain Convert persistence object to domain model
func (po *ProductPO) ToDomain() *product.Product {
	return product.RebuildFromDTO(product.ReconstructionDTO{
		ID:        po.ID,
		Name:      po.Name,
		UnitPrice: *shared.NewMoney(po.UnitPrice, po.Currency),
		Quantity:  po.Quantity,
		Version:   po.Version,
		CreatedAt: po.CreatedAt,
		UpdatedAt: po.UpdatedAt,
	})
}
