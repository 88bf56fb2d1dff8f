package product

import "context"

// StockDecrement one product's share of an order, to be taken from stock.
// Quantities are aggregated per product id before they reach the repository,
// so a product appears at most once per call.
type StockDecrement struct {
	ProductID string
	Quantity  int
}

// Repository product catalog port
// The order workflow needs batch resolution and an atomic stock decrement;
// the catalog read API needs single lookup. Catalog writes (create/update of
// products) belong to the external catalog subsystem and have no port here.
type Repository interface {
	// FindByID Find product aggregate root by ID
	FindByID(ctx context.Context, id string) (*Product, error)

	// FindAllByIDs Batch lookup; returns only the products that exist.
	// Callers detect missing ids by set membership against the result.
	FindAllByIDs(ctx context.Context, ids []string) ([]*Product, error)

	// DecrementStock atomically takes the given quantities from stock.
	// Each decrement is conditional on enough units remaining; when a
	// concurrent order drained the stock first the implementation returns
	// ErrStockConflict (wrapped) and the surrounding transaction rolls back.
	DecrementStock(ctx context.Context, decrements []StockDecrement) error
}
