package order

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shop/domain/customer"
	"shop/domain/order"
	"shop/domain/product"
	"shop/domain/shared"
	"shop/infrastructure/persistence/mocks"
)

type testEnv struct {
	customers *mocks.MockCustomerRepository
	products  *mocks.MockProductRepository
	orders    *mocks.MockOrderRepository
	uow       *mocks.MockUnitOfWork
	service   *ApplicationService
}

func newTestEnv() *testEnv {
	customers := mocks.NewMockCustomerRepository()
	products := mocks.NewMockProductRepository()
	orders := mocks.NewMockOrderRepository()
	uow := mocks.NewMockUnitOfWork(orders, products)

	customers.AddCustomer("cust-1", "Dana Reyes", "dana@example.com")
	products.AddProduct("prod-keyboard", "Mechanical Keyboard", *shared.NewMoney(12900, "USD"), 10)
	products.AddProduct("prod-mouse", "Wireless Mouse", *shared.NewMoney(4900, "USD"), 3)

	return &testEnv{
		customers: customers,
		products:  products,
		orders:    orders,
		uow:       uow,
		service:   NewApplicationService(orders, customers, products, uow),
	}
}

func (e *testEnv) stockOf(t *testing.T, productID string) int {
	t.Helper()
	p, err := e.products.FindByID(context.Background(), productID)
	require.NoError(t, err)
	return p.Quantity()
}

func TestCreateOrder_Success(t *testing.T) {
	env := newTestEnv()

	resp, err := env.service.CreateOrder(context.Background(), CreateOrderRequest{
		CustomerID: "cust-1",
		Items: []OrderItemRequest{
			{ProductID: "prod-keyboard", Quantity: 2},
			{ProductID: "prod-mouse", Quantity: 1},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "cust-1", resp.CustomerID)
	require.Len(t, resp.Items, 2)

	// Name and unit price are snapshotted from the catalog.
	assert.Equal(t, "Mechanical Keyboard", resp.Items[0].ProductName)
	assert.Equal(t, int64(12900), resp.Items[0].UnitPrice.Amount)
	assert.Equal(t, int64(25800), resp.Items[0].Subtotal.Amount)
	assert.Equal(t, "Wireless Mouse", resp.Items[1].ProductName)
	assert.Equal(t, int64(4900), resp.Items[1].Subtotal.Amount)

	assert.Equal(t, int64(30700), resp.TotalAmount.Amount)
	assert.Equal(t, "USD", resp.TotalAmount.Currency)

	// Stock reconciled with the persisted lines.
	assert.Equal(t, 8, env.stockOf(t, "prod-keyboard"))
	assert.Equal(t, 2, env.stockOf(t, "prod-mouse"))

	// Order is retrievable afterwards.
	fetched, err := env.service.GetOrder(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, resp.TotalAmount, fetched.TotalAmount)

	// The placement event went through the unit of work.
	events := env.uow.SavedEvents()
	require.Len(t, events, 1)
	assert.Equal(t, "order.placed", events[0].EventName())
	assert.Equal(t, resp.ID, events[0].GetAggregateID())
}

func TestCreateOrder_AggregatesDuplicateLines(t *testing.T) {
	env := newTestEnv()

	// 2 + 3 across duplicate lines fits the 3-unit stock only if the lines
	// were checked independently; the aggregated demand of 5 must not.
	_, err := env.service.CreateOrder(context.Background(), CreateOrderRequest{
		CustomerID: "cust-1",
		Items: []OrderItemRequest{
			{ProductID: "prod-mouse", Quantity: 2},
			{ProductID: "prod-mouse", Quantity: 2},
		},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, order.ErrInsufficientStock)
	assert.Equal(t, 3, env.stockOf(t, "prod-mouse"))
	assert.Equal(t, 0, env.orders.Count())

	// Within stock, duplicate lines are kept as distinct order lines but
	// decremented once as their sum.
	resp, err := env.service.CreateOrder(context.Background(), CreateOrderRequest{
		CustomerID: "cust-1",
		Items: []OrderItemRequest{
			{ProductID: "prod-mouse", Quantity: 1},
			{ProductID: "prod-mouse", Quantity: 2},
		},
	})
	require.NoError(t, err)
	assert.Len(t, resp.Items, 2)
	assert.Equal(t, 0, env.stockOf(t, "prod-mouse"))
}

func TestCreateOrder_UnknownProduct(t *testing.T) {
	env := newTestEnv()

	_, err := env.service.CreateOrder(context.Background(), CreateOrderRequest{
		CustomerID: "cust-1",
		Items: []OrderItemRequest{
			{ProductID: "prod-keyboard", Quantity: 1},
			{ProductID: "prod-ghost", Quantity: 1},
		},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, order.ErrInvalidOrder)
	assert.Contains(t, err.Error(), "prod-ghost")

	// Nothing was persisted and no stock moved.
	assert.Equal(t, 0, env.orders.Count())
	assert.Equal(t, 10, env.stockOf(t, "prod-keyboard"))
}

func TestCreateOrder_InsufficientStock(t *testing.T) {
	env := newTestEnv()

	_, err := env.service.CreateOrder(context.Background(), CreateOrderRequest{
		CustomerID: "cust-1",
		Items: []OrderItemRequest{
			{ProductID: "prod-mouse", Quantity: 5},
		},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, order.ErrInsufficientStock)

	// The message names the product and both quantities.
	assert.Contains(t, err.Error(), `"Wireless Mouse"`)
	assert.Contains(t, err.Error(), "requested 5")
	assert.Contains(t, err.Error(), "available 3")

	var detailed interface{ Violations() []order.StockViolation }
	require.ErrorAs(t, err, &detailed)
	require.Len(t, detailed.Violations(), 1)
	assert.Equal(t, "prod-mouse", detailed.Violations()[0].ProductID)

	assert.Equal(t, 0, env.orders.Count())
	assert.Equal(t, 3, env.stockOf(t, "prod-mouse"))
}

func TestCreateOrder_CollectsAllStockViolations(t *testing.T) {
	env := newTestEnv()

	_, err := env.service.CreateOrder(context.Background(), CreateOrderRequest{
		CustomerID: "cust-1",
		Items: []OrderItemRequest{
			{ProductID: "prod-keyboard", Quantity: 11},
			{ProductID: "prod-mouse", Quantity: 4},
		},
	})
	require.Error(t, err)

	var detailed interface{ Violations() []order.StockViolation }
	require.ErrorAs(t, err, &detailed)
	assert.Len(t, detailed.Violations(), 2)
}

// countingProductRepository records catalog traffic for the customer gate test.
type countingProductRepository struct {
	product.Repository
	calls int
}

func (r *countingProductRepository) FindAllByIDs(ctx context.Context, ids []string) ([]*product.Product, error) {
	r.calls++
	return r.Repository.FindAllByIDs(ctx, ids)
}

func TestCreateOrder_UnknownCustomer(t *testing.T) {
	env := newTestEnv()
	counting := &countingProductRepository{Repository: env.products}
	service := NewApplicationService(env.orders, env.customers, counting, env.uow)

	_, err := service.CreateOrder(context.Background(), CreateOrderRequest{
		CustomerID: "cust-ghost",
		Items: []OrderItemRequest{
			{ProductID: "prod-keyboard", Quantity: 1},
		},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, customer.ErrCustomerNotFound)
	assert.Contains(t, err.Error(), "cust-ghost")

	// The customer gate short-circuits before any product lookup.
	assert.Equal(t, 0, counting.calls)
	assert.Equal(t, 0, env.orders.Count())
	assert.Equal(t, 10, env.stockOf(t, "prod-keyboard"))
}

func TestCreateOrder_EmptyItems(t *testing.T) {
	env := newTestEnv()

	_, err := env.service.CreateOrder(context.Background(), CreateOrderRequest{
		CustomerID: "cust-1",
		Items:      nil,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, order.ErrEmptyOrderItems)
	assert.Equal(t, 0, env.orders.Count())
}

// conflictingProductRepository fails the decrement the way a concurrent
// checkout would, after the order save already succeeded.
type conflictingProductRepository struct {
	product.Repository
}

func (r *conflictingProductRepository) DecrementStock(ctx context.Context, decrements []product.StockDecrement) error {
	return product.NewStockConflictError(decrements[0].ProductID, decrements[0].Quantity)
}

func TestCreateOrder_StockConflictRollsBackOrder(t *testing.T) {
	env := newTestEnv()
	conflicting := &conflictingProductRepository{Repository: env.products}
	service := NewApplicationService(env.orders, env.customers, conflicting, env.uow)

	_, err := service.CreateOrder(context.Background(), CreateOrderRequest{
		CustomerID: "cust-1",
		Items: []OrderItemRequest{
			{ProductID: "prod-keyboard", Quantity: 1},
		},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, product.ErrStockConflict)

	// The save and the decrement share one transaction: the conflicting
	// decrement must take the saved order down with it.
	assert.Equal(t, 0, env.orders.Count())
	assert.Empty(t, env.uow.SavedEvents())
}

func TestGetOrder_NotFound(t *testing.T) {
	env := newTestEnv()

	_, err := env.service.GetOrder(context.Background(), "order-ghost")
	require.Error(t, err)
	assert.ErrorIs(t, err, order.ErrOrderNotFound)
}

func TestGetCustomerOrders(t *testing.T) {
	env := newTestEnv()
	env.customers.AddCustomer("cust-2", "Lee Park", "lee@example.com")

	for _, customerID := range []string{"cust-1", "cust-1", "cust-2"} {
		_, err := env.service.CreateOrder(context.Background(), CreateOrderRequest{
			CustomerID: customerID,
			Items:      []OrderItemRequest{{ProductID: "prod-keyboard", Quantity: 1}},
		})
		require.NoError(t, err)
	}

	orders, err := env.service.GetCustomerOrders(context.Background(), "cust-1")
	require.NoError(t, err)
	assert.Len(t, orders, 2)
	for _, o := range orders {
		assert.Equal(t, "cust-1", o.CustomerID)
	}
}

func TestCreateOrder_ErrorTaxonomyIsDisjoint(t *testing.T) {
	env := newTestEnv()

	_, err := env.service.CreateOrder(context.Background(), CreateOrderRequest{
		CustomerID: "cust-1",
		Items:      []OrderItemRequest{{ProductID: "prod-mouse", Quantity: 99}},
	})
	require.Error(t, err)

	assert.True(t, errors.Is(err, order.ErrInsufficientStock))
	assert.False(t, errors.Is(err, order.ErrInvalidOrder))
	assert.False(t, errors.Is(err, customer.ErrCustomerNotFound))
}

func TestCreateOrder_ConcurrentRequestsConserveStock(t *testing.T) {
	env := newTestEnv()

	// prod-mouse has 3 in stock; 8 concurrent requests for 1 each.
	var wg sync.WaitGroup
	var succeeded int64
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.service.CreateOrder(context.Background(), CreateOrderRequest{
				CustomerID: "cust-1",
				Items:      []OrderItemRequest{{ProductID: "prod-mouse", Quantity: 1}},
			})
			if err == nil {
				atomic.AddInt64(&succeeded, 1)
				return
			}
			// Losers are rejected either at validation or at decrement time.
			assert.True(t,
				errors.Is(err, order.ErrInsufficientStock) || errors.Is(err, product.ErrStockConflict),
				"unexpected error: %v", err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(3), succeeded)
	assert.Equal(t, 3, env.orders.Count())
	assert.Len(t, env.uow.SavedEvents(), 3)

	p, err := env.products.FindByID(context.Background(), "prod-mouse")
	require.NoError(t, err)
	assert.Equal(t, 0, p.Quantity())
}

func TestCreateOrder_PriceSnapshotSurvivesCatalogChange(t *testing.T) {
	env := newTestEnv()

	created, err := env.service.CreateOrder(context.Background(), CreateOrderRequest{
		CustomerID: "cust-1",
		Items:      []OrderItemRequest{{ProductID: "prod-keyboard", Quantity: 2}},
	})
	require.NoError(t, err)

	// Reprice the product after the order was placed.
	env.products.AddProduct("prod-keyboard", "Mechanical Keyboard", *shared.NewMoney(19900, "USD"), 10)

	got, err := env.service.GetOrder(context.Background(), created.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, int64(12900), got.Items[0].UnitPrice.Amount)
	assert.Equal(t, int64(25800), got.Items[0].Subtotal.Amount)
	assert.Equal(t, int64(25800), got.TotalAmount.Amount)
}

func TestGetCustomerOrders_NewestFirst(t *testing.T) {
	env := newTestEnv()

	first, err := env.service.CreateOrder(context.Background(), CreateOrderRequest{
		CustomerID: "cust-1",
		Items:      []OrderItemRequest{{ProductID: "prod-keyboard", Quantity: 1}},
	})
	require.NoError(t, err)

	time.Sleep(2 * time.Millisecond)

	second, err := env.service.CreateOrder(context.Background(), CreateOrderRequest{
		CustomerID: "cust-1",
		Items:      []OrderItemRequest{{ProductID: "prod-mouse", Quantity: 1}},
	})
	require.NoError(t, err)

	orders, err := env.service.GetCustomerOrders(context.Background(), "cust-1")
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, second.ID, orders[0].ID)
	assert.Equal(t, first.ID, orders[1].ID)
	assert.False(t, orders[0].CreatedAt.Before(orders[1].CreatedAt))
}
