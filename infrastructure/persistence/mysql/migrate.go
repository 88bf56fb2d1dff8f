package mysql

import (
	"fmt"

	"shop/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates the schema for every persistence object.
// Intended for development and tests; production schemas are managed by
// migration scripts.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&po.CustomerPO{},
		&po.ProductPO{},
		&po.OrderPO{},
		&po.OrderItemPO{},
		&po.OutboxEventPO{},
	); err != nil {
		return fmt.Errorf("auto migration failed: %w", err)
	}
	return nil
}
