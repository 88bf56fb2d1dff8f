package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shop/domain/shared"
)

func lineRequests() []LineRequest {
	return []LineRequest{
		{ProductID: "prod-1", ProductName: "Mechanical Keyboard", Quantity: 2, UnitPrice: *shared.NewMoney(12900, "USD")},
		{ProductID: "prod-2", ProductName: "Wireless Mouse", Quantity: 1, UnitPrice: *shared.NewMoney(4900, "USD")},
	}
}

func TestNewOrder(t *testing.T) {
	o, err := NewOrder("cust-1", lineRequests())
	require.NoError(t, err)

	assert.NotEmpty(t, o.ID())
	assert.Equal(t, "cust-1", o.CustomerID())
	assert.True(t, o.IsNew())
	assert.Equal(t, 0, o.Version())

	items := o.Items()
	require.Len(t, items, 2)
	assert.Equal(t, int64(25800), items[0].Subtotal().Amount())
	assert.Equal(t, int64(4900), items[1].Subtotal().Amount())
	assert.Equal(t, int64(30700), o.TotalAmount().Amount())
	assert.Equal(t, "USD", o.TotalAmount().Currency())
}

func TestNewOrder_LineIdentifiersAreUnique(t *testing.T) {
	o, err := NewOrder("cust-1", lineRequests())
	require.NoError(t, err)

	items := o.Items()
	assert.NotEmpty(t, items[0].ID())
	assert.NotEqual(t, items[0].ID(), items[1].ID())
	assert.NotEqual(t, o.ID(), items[0].ID())
}

func TestNewOrder_EmptyCustomer(t *testing.T) {
	_, err := NewOrder("", lineRequests())
	assert.ErrorIs(t, err, ErrEmptyCustomer)
}

func TestNewOrder_EmptyItems(t *testing.T) {
	_, err := NewOrder("cust-1", nil)
	assert.ErrorIs(t, err, ErrEmptyOrderItems)
}

func TestNewOrder_NonPositiveQuantity(t *testing.T) {
	for _, quantity := range []int{0, -1} {
		requests := lineRequests()
		requests[1].Quantity = quantity

		_, err := NewOrder("cust-1", requests)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	}
}

func TestNewOrder_RecordsPlacementEvent(t *testing.T) {
	o, err := NewOrder("cust-1", lineRequests())
	require.NoError(t, err)

	events := o.PullEvents()
	require.Len(t, events, 1)
	assert.Equal(t, "order.placed", events[0].EventName())
	assert.Equal(t, o.ID(), events[0].GetAggregateID())
	assert.False(t, events[0].OccurredOn().IsZero())

	// Events are pulled once, not replayed.
	assert.Empty(t, o.PullEvents())
}

func TestOrder_ItemsReturnsCopy(t *testing.T) {
	o, err := NewOrder("cust-1", lineRequests())
	require.NoError(t, err)

	items := o.Items()
	items[0] = LineItem{}

	assert.Equal(t, "prod-1", o.Items()[0].ProductID())
}

func TestRebuildFromDTO(t *testing.T) {
	o, err := NewOrder("cust-1", lineRequests())
	require.NoError(t, err)
	o.IncrementVersionForSave()
	o.ClearNewFlag()

	rebuilt := RebuildFromDTO(ReconstructionDTO{
		ID:          o.ID(),
		CustomerID:  o.CustomerID(),
		Items:       o.Items(),
		TotalAmount: o.TotalAmount(),
		Version:     o.Version(),
		CreatedAt:   o.CreatedAt(),
		UpdatedAt:   o.UpdatedAt(),
	})

	assert.Equal(t, o.ID(), rebuilt.ID())
	assert.Equal(t, o.Version(), rebuilt.Version())
	assert.False(t, rebuilt.IsNew())
	// Reconstruction must not resurrect already-published events.
	assert.Empty(t, rebuilt.PullEvents())
}
