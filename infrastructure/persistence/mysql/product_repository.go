package mysql

import (
	"context"
	"errors"

	"shop/domain/product"
	"shop/infrastructure/persistence"
	"shop/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

// ProductRepository MySQL/GORM implementation of the product catalog.
// Reads serve the order validation pass; DecrementStock is the only write
// and re-checks sufficiency atomically at the database.
type ProductRepository struct {
	db *gorm.DB
}

// NewProductRepository Create product repository
func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// getDB returns the transaction from context if available, otherwise the default db
func (r *ProductRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := persistence.TxFromContext(ctx); ok {
		return tx
	}
	return r.db.WithContext(ctx)
}

// FindByID Find product by ID
func (r *ProductRepository) FindByID(ctx context.Context, id string) (*product.Product, error) {
	var productPO po.ProductPO

	result := r.getDB(ctx).First(&productPO, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, product.NewProductNotFoundError(id)
		}
		return nil, result.Error
	}

	return productPO.ToDomain(), nil
}

// FindAllByIDs Find all products matching the given IDs in one query.
// IDs with no matching row are absent from the result; the caller decides
// whether that is an error.
func (r *ProductRepository) FindAllByIDs(ctx context.Context, ids []string) ([]*product.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var productPOs []po.ProductPO
	if err := r.getDB(ctx).Where("id IN ?", ids).Find(&productPOs).Error; err != nil {
		return nil, err
	}

	products := make([]*product.Product, len(productPOs))
	for i, productPO := range productPOs {
		products[i] = productPO.ToDomain()
	}
	return products, nil
}

// DecrementStock Decrement available quantity for each product.
// The UPDATE is conditional on the row still holding enough units, so the
// validation pass and a concurrent checkout cannot oversell together: if
// another transaction consumed the stock first, RowsAffected is 0 and the
// whole batch fails with ErrStockConflict. Runs inside the unit-of-work
// transaction, which rolls the already-applied lines back.
func (r *ProductRepository) DecrementStock(ctx context.Context, decrements []product.StockDecrement) error {
	db := r.getDB(ctx)

	for _, d := range decrements {
		result := db.Model(&po.ProductPO{}).
			Where("id = ? AND quantity >= ?", d.ProductID, d.Quantity).
			Updates(map[string]interface{}{
				"quantity": gorm.Expr("quantity - ?", d.Quantity),
				"version":  gorm.Expr("version + 1"),
			})

		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			// Distinguish a vanished product from a stock conflict.
			var count int64
			if err := db.Model(&po.ProductPO{}).Where("id = ?", d.ProductID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return product.NewProductNotFoundError(d.ProductID)
			}
			return product.NewStockConflictError(d.ProductID, d.Quantity)
		}
	}

	return nil
}

// Compile-time interface implementation check
var _ product.Repository = (*ProductRepository)(nil)
