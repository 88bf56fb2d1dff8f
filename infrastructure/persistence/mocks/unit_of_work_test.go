package mocks

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shop/domain/product"
	"shop/domain/shared"
)

func TestMockUnitOfWork_NewReturnsFreshInstances(t *testing.T) {
	factory := NewMockUnitOfWork()

	first := factory.New()
	second := factory.New()

	assert.NotSame(t, factory, first)
	assert.NotSame(t, first, second)
}

func TestMockUnitOfWork_RollbackRestoresParticipants(t *testing.T) {
	products := NewMockProductRepository()
	products.AddProduct("prod-1", "Widget", *shared.NewMoney(1000, "USD"), 5)
	factory := NewMockUnitOfWork(products)

	boom := errors.New("boom")
	err := factory.New().Execute(context.Background(), func(ctx context.Context) error {
		if err := products.DecrementStock(ctx, []product.StockDecrement{{ProductID: "prod-1", Quantity: 2}}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	p, err := products.FindByID(context.Background(), "prod-1")
	require.NoError(t, err)
	assert.Equal(t, 5, p.Quantity())
}

// Rollbacks of failing executions must not undo writes committed by other
// executions running at the same time.
func TestMockUnitOfWork_ConcurrentRollbackPreservesCommits(t *testing.T) {
	products := NewMockProductRepository()
	products.AddProduct("prod-1", "Widget", *shared.NewMoney(1000, "USD"), 100)
	factory := NewMockUnitOfWork(products)

	fail := errors.New("rolled back")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(shouldFail bool) {
			defer wg.Done()
			_ = factory.New().Execute(context.Background(), func(ctx context.Context) error {
				if err := products.DecrementStock(ctx, []product.StockDecrement{{ProductID: "prod-1", Quantity: 1}}); err != nil {
					return err
				}
				if shouldFail {
					return fail
				}
				return nil
			})
		}(i%2 == 0)
	}
	wg.Wait()

	// 4 of 8 executions committed a decrement of 1 each.
	p, err := products.FindByID(context.Background(), "prod-1")
	require.NoError(t, err)
	assert.Equal(t, 96, p.Quantity())
}
