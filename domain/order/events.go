package order

import (
	"time"

	"shop/domain/shared"
)

// OrderPlacedEvent recorded when a new order passes all validation and is
// created. The unit of work stores it in the outbox within the same
// transaction that persists the order and decrements stock.
type OrderPlacedEvent struct {
	orderID     string
	customerID  string
	totalAmount shared.Money
	occurredOn  time.Time
}

func NewOrderPlacedEvent(orderID, customerID string, totalAmount shared.Money) *OrderPlacedEvent {
	return &OrderPlacedEvent{
		orderID:     orderID,
		customerID:  customerID,
		totalAmount: totalAmount,
		occurredOn:  time.Now(),
	}
}

func (e *OrderPlacedEvent) EventName() string         { return "order.placed" }
func (e *OrderPlacedEvent) OccurredOn() time.Time     { return e.occurredOn }
func (e *OrderPlacedEvent) GetAggregateID() string    { return e.orderID }
func (e *OrderPlacedEvent) OrderID() string           { return e.orderID }
func (e *OrderPlacedEvent) CustomerID() string        { return e.customerID }
func (e *OrderPlacedEvent) TotalAmount() shared.Money { return e.totalAmount }
