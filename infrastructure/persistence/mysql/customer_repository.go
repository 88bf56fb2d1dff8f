package mysql

import (
	"context"
	"errors"

	"shop/domain/customer"
	"shop/infrastructure/persistence"
	"shop/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

// CustomerRepository MySQL/GORM implementation of the customer lookup.
// Customers are maintained by an external subsystem; this repository is
// read-only.
type CustomerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository Create customer repository
func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// getDB returns the transaction from context if available, otherwise the default db
func (r *CustomerRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := persistence.TxFromContext(ctx); ok {
		return tx
	}
	return r.db.WithContext(ctx)
}

// FindByID Find customer by ID
func (r *CustomerRepository) FindByID(ctx context.Context, id string) (*customer.Customer, error) {
	var customerPO po.CustomerPO

	result := r.getDB(ctx).First(&customerPO, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, customer.NewCustomerNotFoundError(id)
		}
		return nil, result.Error
	}

	return customerPO.ToDomain(), nil
}

// Compile-time interface implementation check
var _ customer.Repository = (*CustomerRepository)(nil)
