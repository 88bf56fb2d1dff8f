package order

import (
	"context"

	"shop/domain/product"
)

// ProductDemand total quantity an order requests for one product.
// The request may list the same product on several lines; demands are the
// per-product aggregation of those lines, in first-seen order.
type ProductDemand struct {
	ProductID string
	Quantity  int
}

// AggregateDemand merges requested lines into per-product demands.
// Without this merge a request listing the same product twice would pass two
// independent stock checks against the same pre-order quantity and oversell.
func AggregateDemand(lines []LineRequest) []ProductDemand {
	index := make(map[string]int, len(lines))
	demands := make([]ProductDemand, 0, len(lines))

	for _, line := range lines {
		if i, ok := index[line.ProductID]; ok {
			demands[i].Quantity += line.Quantity
			continue
		}
		index[line.ProductID] = len(demands)
		demands = append(demands, ProductDemand{ProductID: line.ProductID, Quantity: line.Quantity})
	}

	return demands
}

// DomainService validates the cross-entity rules of order creation.
// It reads through repository interfaces but never persists anything; state
// changes stay with the application service and its unit of work.
type DomainService struct {
	productRepository product.Repository
}

// NewDomainService creates the order domain service.
func NewDomainService(productRepo product.Repository) *DomainService {
	return &DomainService{
		productRepository: productRepo,
	}
}

// ResolveProducts fetches every product named by the demands and verifies set
// membership: each requested id must resolve to a catalog product. Returns
// the resolved products keyed by id, or ErrInvalidOrder naming the missing
// ids.
func (s *DomainService) ResolveProducts(ctx context.Context, demands []ProductDemand) (map[string]*product.Product, error) {
	ids := make([]string, len(demands))
	for i, d := range demands {
		ids[i] = d.ProductID
	}

	products, err := s.productRepository.FindAllByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	resolved := make(map[string]*product.Product, len(products))
	for _, p := range products {
		resolved[p.ID()] = p
	}

	var missing []string
	for _, d := range demands {
		if _, ok := resolved[d.ProductID]; !ok {
			missing = append(missing, d.ProductID)
		}
	}
	if len(missing) > 0 {
		return nil, NewUnknownProductsError(missing)
	}

	return resolved, nil
}

// CheckStock runs the sufficiency check for every demand and collects all
// violations before failing, so the error can name each offending product.
// Demands must already be aggregated per product id.
func (s *DomainService) CheckStock(demands []ProductDemand, resolved map[string]*product.Product) error {
	var violations []StockViolation

	for _, d := range demands {
		p, ok := resolved[d.ProductID]
		if !ok {
			// ResolveProducts guarantees membership; a miss here is a
			// programming error surfaced as an invalid order.
			return NewUnknownProductsError([]string{d.ProductID})
		}
		if !p.CanFulfill(d.Quantity) {
			violations = append(violations, StockViolation{
				ProductID:   p.ID(),
				ProductName: p.Name(),
				Requested:   d.Quantity,
				Available:   p.Quantity(),
			})
		}
	}

	if len(violations) > 0 {
		return NewInsufficientStockError(violations)
	}

	return nil
}
