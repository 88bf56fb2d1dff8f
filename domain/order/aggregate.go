/*
Package order - sales order subdomain, core of the application.

The Order aggregate root owns the consistency boundary of an order: line items
are created through the factory and never modified afterwards. An order placed
by this service is immutable; status lifecycle (shipping, cancellation) is
handled elsewhere and deliberately absent here.
*/
package order

import (
	"fmt"
	"time"

	"shop/domain/shared"

	"github.com/google/uuid"
)

// Order aggregate root
type Order struct {
	id          string
	customerID  string
	items       []LineItem
	totalAmount shared.Money
	version     int // optimistic lock version, managed by the persistence layer
	createdAt   time.Time
	updatedAt   time.Time

	// Domain events recorded within the aggregate
	events []shared.DomainEvent

	isNew bool // true until the aggregate is persisted for the first time
}

// LineItem one product position of an order - entity within the aggregate.
// unitPrice is the catalog price snapshotted at order time; later catalog
// price changes never alter a persisted line item.
type LineItem struct {
	id          string
	productID   string
	productName string
	quantity    int
	unitPrice   shared.Money
	subtotal    shared.Money
}

// LineRequest input for one order line. ProductName and UnitPrice come from
// the resolved catalog product, not from the caller.
type LineRequest struct {
	ProductID   string
	ProductName string
	Quantity    int
	UnitPrice   shared.Money
}

// NewOrder creates a new Order aggregate root.
// The only entry point for creating orders; validates the structural rules
// (non-empty, positive quantities) and records the OrderPlaced event. The
// cross-entity rules (customer exists, products exist, stock suffices) are
// checked by the domain service before this factory is called.
func NewOrder(customerID string, requests []LineRequest) (*Order, error) {
	if customerID == "" {
		return nil, NewEmptyCustomerError()
	}

	if len(requests) == 0 {
		return nil, NewEmptyOrderItemsError()
	}

	items := make([]LineItem, len(requests))
	for i, req := range requests {
		if req.Quantity <= 0 {
			return nil, NewInvalidQuantityError(req.ProductID, req.Quantity)
		}

		subtotal, err := req.UnitPrice.Multiply(req.Quantity)
		if err != nil {
			return nil, err
		}

		id, err := uuid.NewV7()
		if err != nil {
			return nil, fmt.Errorf("failed to generate line item ID: %w", err)
		}

		items[i] = LineItem{
			id:          id.String(),
			productID:   req.ProductID,
			productName: req.ProductName,
			quantity:    req.Quantity,
			unitPrice:   req.UnitPrice,
			subtotal:    *subtotal,
		}
	}

	totalAmount := shared.NewMoney(0, items[0].unitPrice.Currency())
	var err error
	for _, item := range items {
		totalAmount, err = totalAmount.Add(item.subtotal)
		if err != nil {
			return nil, err
		}
	}

	orderID, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate order ID: %w", err)
	}

	now := time.Now()
	o := &Order{
		id:          orderID.String(),
		customerID:  customerID,
		items:       items,
		totalAmount: *totalAmount,
		version:     0,
		createdAt:   now,
		updatedAt:   now,
		events:      make([]shared.DomainEvent, 0),
		isNew:       true,
	}

	o.events = append(o.events, NewOrderPlacedEvent(o.id, customerID, o.totalAmount))

	return o, nil
}

// ReconstructionDTO order reconstruction data transfer object
// Repository implementations only; never call from the application layer.
type ReconstructionDTO struct {
	ID          string
	CustomerID  string
	Items       []LineItem
	TotalAmount shared.Money
	Version     int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RebuildFromDTO rebuilds an Order aggregate root from storage.
func RebuildFromDTO(dto ReconstructionDTO) *Order {
	return &Order{
		id:          dto.ID,
		customerID:  dto.CustomerID,
		items:       dto.Items,
		totalAmount: dto.TotalAmount,
		version:     dto.Version,
		createdAt:   dto.CreatedAt,
		updatedAt:   dto.UpdatedAt,
		events:      nil,
		isNew:       false,
	}
}

// ItemReconstructionDTO line item reconstruction data transfer object
type ItemReconstructionDTO struct {
	ID          string
	ProductID   string
	ProductName string
	Quantity    int
	UnitPrice   shared.Money
	Subtotal    shared.Money
}

// RebuildItemFromDTO rebuilds a LineItem from storage.
func RebuildItemFromDTO(dto ItemReconstructionDTO) LineItem {
	return LineItem{
		id:          dto.ID,
		productID:   dto.ProductID,
		productName: dto.ProductName,
		quantity:    dto.Quantity,
		unitPrice:   dto.UnitPrice,
		subtotal:    dto.Subtotal,
	}
}

// IncrementVersionForSave bumps the version after successful persistence.
// Called by the repository, not by business code.
func (o *Order) IncrementVersionForSave() {
	o.version++
	o.updatedAt = time.Now()
}

// IsNew reports whether the aggregate has not been persisted yet.
func (o *Order) IsNew() bool { return o.isNew }

// ClearNewFlag marks the aggregate as persisted. Repository use only.
func (o *Order) ClearNewFlag() { o.isNew = false }

func (o *Order) ID() string         { return o.id }
func (o *Order) CustomerID() string { return o.customerID }

// Items returns a copy of the order's line items; the aggregate's internal
// slice is never handed out.
func (o *Order) Items() []LineItem {
	items := make([]LineItem, len(o.items))
	copy(items, o.items)
	return items
}

func (o *Order) TotalAmount() shared.Money { return o.totalAmount }
func (o *Order) Version() int              { return o.version }
func (o *Order) CreatedAt() time.Time      { return o.createdAt }
func (o *Order) UpdatedAt() time.Time      { return o.updatedAt }

// PullEvents returns and clears the aggregate's recorded events.
func (o *Order) PullEvents() []shared.DomainEvent {
	events := make([]shared.DomainEvent, len(o.events))
	copy(events, o.events)
	o.events = make([]shared.DomainEvent, 0)
	return events
}

// LineItem getters - read only, no external modification

func (item LineItem) ID() string              { return item.id }
func (item LineItem) ProductID() string       { return item.productID }
func (item LineItem) ProductName() string     { return item.productName }
func (item LineItem) Quantity() int           { return item.quantity }
func (item LineItem) UnitPrice() shared.Money { return item.unitPrice }
func (item LineItem) Subtotal() shared.Money  { return item.subtotal }

// Compile-time check that Order implements AggregateRoot
var _ shared.AggregateRoot = (*Order)(nil)
