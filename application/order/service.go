/*
Package order - application layer, order creation workflow.

Responsibilities:
1. Receive requests from the API layer
2. Gate the workflow through the domain service validations
3. Build the Order aggregate with catalog prices snapshotted at validation time
4. Persist the order and decrement stock inside one unit-of-work transaction
5. Return result DTOs to the caller

The validation steps (customer, product membership, stock sufficiency) are
pure reads and short-circuit the workflow before any state mutation. The two
mutating steps share a single transaction, so a failed stock decrement rolls
the order back instead of leaving stock inconsistent with persisted orders.
*/
package order

import (
	"context"
	"time"

	"shop/domain/customer"
	"shop/domain/order"
	"shop/domain/product"
	"shop/domain/shared"
)

// ApplicationService coordinates the order creation workflow.
type ApplicationService struct {
	orderRepo          order.Repository
	customerRepo       customer.Repository
	productRepo        product.Repository
	orderDomainService *order.DomainService
	uowFactory         shared.UnitOfWorkFactory
}

// NewApplicationService creates the order application service.
// Dependencies arrive by constructor injection; there is no registration
// container anywhere in this codebase. A unit of work is created per request
// because it carries per-execution state.
func NewApplicationService(
	orderRepo order.Repository,
	customerRepo customer.Repository,
	productRepo product.Repository,
	uowFactory shared.UnitOfWorkFactory,
) *ApplicationService {
	return &ApplicationService{
		orderRepo:          orderRepo,
		customerRepo:       customerRepo,
		productRepo:        productRepo,
		orderDomainService: order.NewDomainService(productRepo),
		uowFactory:         uowFactory,
	}
}

// ============================================================================
// DTO Definitions
// ============================================================================

// CreateOrderRequest create order request DTO.
// Prices and product names are never accepted from the client; they are
// snapshotted from the catalog during validation.
type CreateOrderRequest struct {
	CustomerID string             `json:"customer_id" binding:"required"`
	Items      []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// OrderItemRequest one requested order line.
type OrderItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

// OrderResponse order response DTO
type OrderResponse struct {
	ID          string              `json:"id"`
	CustomerID  string              `json:"customer_id"`
	Items       []OrderItemResponse `json:"items"`
	TotalAmount MoneyResponse       `json:"total_amount"`
	CreatedAt   time.Time           `json:"created_at"`
}

// OrderItemResponse order line response DTO
type OrderItemResponse struct {
	ProductID   string        `json:"product_id"`
	ProductName string        `json:"product_name"`
	Quantity    int           `json:"quantity"`
	UnitPrice   MoneyResponse `json:"unit_price"`
	Subtotal    MoneyResponse `json:"subtotal"`
}

// MoneyResponse money response DTO
type MoneyResponse struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// ============================================================================
// Workflow
// ============================================================================

// CreateOrder runs the order creation workflow:
// customer lookup → product resolution → stock check → price snapshot →
// persist order + decrement stock (one transaction) → response.
func (s *ApplicationService) CreateOrder(ctx context.Context, req CreateOrderRequest) (*OrderResponse, error) {
	// Customer gate. Runs before any product lookup; an unknown customer
	// causes no catalog traffic at all.
	if _, err := s.customerRepo.FindByID(ctx, req.CustomerID); err != nil {
		return nil, err
	}

	lines := make([]order.LineRequest, len(req.Items))
	for i, item := range req.Items {
		lines[i] = order.LineRequest{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}
	}

	// Demands are aggregated per product id; duplicate lines in the request
	// are checked and reconciled against the catalog as one total.
	demands := order.AggregateDemand(lines)

	resolved, err := s.orderDomainService.ResolveProducts(ctx, demands)
	if err != nil {
		return nil, err
	}

	if err := s.orderDomainService.CheckStock(demands, resolved); err != nil {
		return nil, err
	}

	// Snapshot name and unit price from the resolved products. The stored
	// line items keep these values even if the catalog changes later.
	for i := range lines {
		p := resolved[lines[i].ProductID]
		lines[i].ProductName = p.Name()
		lines[i].UnitPrice = p.UnitPrice()
	}

	o, err := order.NewOrder(req.CustomerID, lines)
	if err != nil {
		return nil, err
	}

	// Persist order and reconcile stock in one transaction. The decrements
	// are derived from the aggregate's own line items, i.e. exactly what is
	// being persisted. The conditional decrement re-checks sufficiency
	// atomically and fails the whole transaction on a concurrent conflict.
	uow := s.uowFactory.New()
	err = uow.Execute(ctx, func(txCtx context.Context) error {
		if err := s.orderRepo.Save(txCtx, o); err != nil {
			return err
		}
		if err := s.productRepo.DecrementStock(txCtx, stockDecrements(o)); err != nil {
			return err
		}
		uow.RegisterNew(o)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.convertToResponse(o), nil
}

// stockDecrements aggregates the order's persisted line items into one
// decrement per product.
func stockDecrements(o *order.Order) []product.StockDecrement {
	items := o.Items()
	lines := make([]order.LineRequest, len(items))
	for i, item := range items {
		lines[i] = order.LineRequest{ProductID: item.ProductID(), Quantity: item.Quantity()}
	}

	demands := order.AggregateDemand(lines)
	decrements := make([]product.StockDecrement, len(demands))
	for i, d := range demands {
		decrements[i] = product.StockDecrement{ProductID: d.ProductID, Quantity: d.Quantity}
	}
	return decrements
}

// GetOrder returns one order by id.
func (s *ApplicationService) GetOrder(ctx context.Context, orderID string) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	return s.convertToResponse(o), nil
}

// GetCustomerOrders returns all orders of one customer.
func (s *ApplicationService) GetCustomerOrders(ctx context.Context, customerID string) ([]*OrderResponse, error) {
	orders, err := s.orderRepo.FindByCustomerID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	responses := make([]*OrderResponse, len(orders))
	for i, o := range orders {
		responses[i] = s.convertToResponse(o)
	}

	return responses, nil
}

// convertToResponse converts the order aggregate to its response DTO.
func (s *ApplicationService) convertToResponse(o *order.Order) *OrderResponse {
	items := o.Items()
	itemResponses := make([]OrderItemResponse, len(items))
	for i, item := range items {
		itemResponses[i] = OrderItemResponse{
			ProductID:   item.ProductID(),
			ProductName: item.ProductName(),
			Quantity:    item.Quantity(),
			UnitPrice: MoneyResponse{
				Amount:   item.UnitPrice().Amount(),
				Currency: item.UnitPrice().Currency(),
			},
			Subtotal: MoneyResponse{
				Amount:   item.Subtotal().Amount(),
				Currency: item.Subtotal().Currency(),
			},
		}
	}

	return &OrderResponse{
		ID:         o.ID(),
		CustomerID: o.CustomerID(),
		Items:      itemResponses,
		TotalAmount: MoneyResponse{
			Amount:   o.TotalAmount().Amount(),
			Currency: o.TotalAmount().Currency(),
		},
		CreatedAt: o.CreatedAt(),
	}
}
