package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	mysqlDriver "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shop/domain/order"
	"shop/domain/product"
)

func fastConfig() Config {
	return Config{
		Enabled:            true,
		MaxAttempts:        3,
		InitialDelay:       time.Millisecond,
		MaxDelay:           5 * time.Millisecond,
		BackoffFactor:      2.0,
		RetryOnDeadlock:    true,
		RetryOnLockTimeout: true,
	}
}

func TestExecuteWithRetry_SucceedsAfterTransientFailure(t *testing.T) {
	attempts := 0
	err := ExecuteWithRetry(context.Background(), fastConfig(), func(ctx context.Context) error {
		attempts++
		if attempts < 3 {
			return &mysqlDriver.MySQLError{Number: 1213, Message: "Deadlock found when trying to get lock"}
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestExecuteWithRetry_DoesNotRetryBusinessErrors(t *testing.T) {
	cases := []error{
		order.NewInsufficientStockError([]order.StockViolation{
			{ProductID: "prod-1", ProductName: "Mechanical Keyboard", Requested: 5, Available: 2},
		}),
		product.NewStockConflictError("prod-1", 5),
		order.NewUnknownProductsError([]string{"prod-ghost"}),
	}

	for _, businessErr := range cases {
		attempts := 0
		err := ExecuteWithRetry(context.Background(), fastConfig(), func(ctx context.Context) error {
			attempts++
			return businessErr
		})

		assert.ErrorIs(t, err, businessErr)
		assert.Equal(t, 1, attempts, "business error must fail fast: %v", businessErr)
	}
}

func TestExecuteWithRetry_ExhaustsAttempts(t *testing.T) {
	deadlock := &mysqlDriver.MySQLError{Number: 1213, Message: "Deadlock found"}

	attempts := 0
	err := ExecuteWithRetry(context.Background(), fastConfig(), func(ctx context.Context) error {
		attempts++
		return deadlock
	})

	assert.ErrorIs(t, err, deadlock)
	assert.Equal(t, 3, attempts)
}

func TestExecuteWithRetry_Disabled(t *testing.T) {
	config := fastConfig()
	config.Enabled = false

	attempts := 0
	err := ExecuteWithRetry(context.Background(), config, func(ctx context.Context) error {
		attempts++
		return errors.New("deadlock detected")
	})

	require.Error(t, err)
	assert.Equal(t, 1, attempts)
}

func TestExecuteWithRetry_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := ExecuteWithRetry(ctx, fastConfig(), func(ctx context.Context) error {
		t.Fatal("must not run with cancelled context")
		return nil
	})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestIsRetryableError(t *testing.T) {
	config := fastConfig()

	assert.True(t, IsRetryableError(&mysqlDriver.MySQLError{Number: 1213}, config))
	assert.True(t, IsRetryableError(&mysqlDriver.MySQLError{Number: 1205}, config))
	assert.False(t, IsRetryableError(&mysqlDriver.MySQLError{Number: 1062}, config))
	assert.False(t, IsRetryableError(nil, config))
	assert.False(t, IsRetryableError(errors.New("customer not found"), config))

	config.RetryOnDeadlock = false
	assert.False(t, IsRetryableError(&mysqlDriver.MySQLError{Number: 1213}, config))
}

func TestIsRetryableError_CustomPredicate(t *testing.T) {
	config := fastConfig()
	config.RetryPredicate = func(err error) bool {
		return errors.Is(err, order.ErrConcurrentModification)
	}

	assert.True(t, IsRetryableError(order.NewConcurrentModificationError("order-1"), config))
}

func TestExponentialBackoffWithJitter(t *testing.T) {
	config := Config{
		InitialDelay:  100 * time.Millisecond,
		MaxDelay:      2 * time.Second,
		BackoffFactor: 2.0,
	}

	assert.Equal(t, time.Duration(0), ExponentialBackoffWithJitter(0, config))
	assert.Equal(t, 100*time.Millisecond, ExponentialBackoffWithJitter(1, config))
	assert.Equal(t, 200*time.Millisecond, ExponentialBackoffWithJitter(2, config))
	// Capped at MaxDelay for late attempts.
	assert.Equal(t, 2*time.Second, ExponentialBackoffWithJitter(30, config))
}
