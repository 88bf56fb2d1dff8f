package mysql

import (
	"context"
	"errors"

	"shop/domain/order"
	"shop/infrastructure/persistence"
	"shop/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

// OrderRepository MySQL/GORM implementation of order repository
// DDD principle: Repository is only responsible for persistence of aggregate roots, not event publishing
// GORM usage rule: Association features are prohibited to maintain DDD aggregate boundaries
type OrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository Create order repository
func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// getDB returns the transaction from context if available, otherwise the default db
func (r *OrderRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := persistence.TxFromContext(ctx); ok {
		return tx
	}
	return r.db.WithContext(ctx)
}

// Save Save order (create or update)
// Order and order items are written manually, no GORM associations.
// When called within UoW.Execute() it joins the transaction from context;
// standalone calls get their own transaction for atomicity.
func (r *OrderRepository) Save(ctx context.Context, o *order.Order) error {
	if tx, ok := persistence.TxFromContext(ctx); ok {
		return r.saveWithTx(tx, o)
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return r.saveWithTx(tx, o)
	})
}

// saveWithTx performs the actual save operations within a transaction
func (r *OrderRepository) saveWithTx(tx *gorm.DB, o *order.Order) error {
	if !o.IsNew() {
		// Optimistic concurrency: the version must not have moved since load.
		var count int64
		if err := tx.Model(&po.OrderPO{}).
			Where("id = ? AND version = ?", o.ID(), o.Version()).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			var exists int64
			if err := tx.Model(&po.OrderPO{}).Where("id = ?", o.ID()).Count(&exists).Error; err != nil {
				return err
			}
			if exists > 0 {
				return order.NewConcurrentModificationError(o.ID())
			}
			// Row absent: the first save is being retried after a rollback.
		}
	}

	o.IncrementVersionForSave()
	orderPO, itemPOs := po.FromOrderDomain(o)

	if err := tx.Save(orderPO).Error; err != nil {
		return err
	}

	// Replace order items (simple strategy: delete then insert)
	if err := tx.Where("order_id = ?", o.ID()).Delete(&po.OrderItemPO{}).Error; err != nil {
		return err
	}
	if len(itemPOs) > 0 {
		if err := tx.Create(&itemPOs).Error; err != nil {
			return err
		}
	}

	o.ClearNewFlag()
	return nil
}

// FindByID Find order by ID
func (r *OrderRepository) FindByID(ctx context.Context, id string) (*order.Order, error) {
	db := r.getDB(ctx)
	var orderPO po.OrderPO

	result := db.First(&orderPO, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, order.NewOrderNotFoundError(id)
		}
		return nil, result.Error
	}

	// Items are queried manually (no Preload) to keep aggregate boundaries clear
	var itemPOs []po.OrderItemPO
	if err := db.Where("order_id = ?", id).Find(&itemPOs).Error; err != nil {
		return nil, err
	}

	return orderPO.ToDomain(itemPOs), nil
}

// FindByCustomerID Find order list by customer ID
func (r *OrderRepository) FindByCustomerID(ctx context.Context, customerID string) ([]*order.Order, error) {
	db := r.getDB(ctx)
	var orderPOs []po.OrderPO

	if err := db.Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&orderPOs).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, len(orderPOs))
	for i, orderPO := range orderPOs {
		var itemPOs []po.OrderItemPO
		if err := db.Where("order_id = ?", orderPO.ID).Find(&itemPOs).Error; err != nil {
			return nil, err
		}
		orders[i] = orderPO.ToDomain(itemPOs)
	}

	return orders, nil
}

// Compile-time interface implementation check
var _ order.Repository = (*OrderRepository)(nil)
