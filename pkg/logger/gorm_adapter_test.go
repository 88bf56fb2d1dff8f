/*
Package logger - GORM logger adapter tests
*/
package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"shop/infrastructure/persistence"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm/logger"
)

func withObservedLogger(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	originalLogger := log
	t.Cleanup(func() { log = originalLogger })

	core, logs := observer.New(zapcore.DebugLevel)
	log = zap.New(core)
	return logs
}

func TestGormLoggerAdapter_LevelFiltering(t *testing.T) {
	logs := withObservedLogger(t)

	adapter := NewGormLoggerAdapter(logger.Warn)
	adapter.Info(context.Background(), "filtered info")
	adapter.Warn(context.Background(), "visible warn")

	if logs.FilterMessage("filtered info").Len() != 0 {
		t.Error("info message should be filtered at warn level")
	}
	if logs.FilterMessage("visible warn").Len() != 1 {
		t.Error("warn message should pass at warn level")
	}
}

func TestGormLoggerAdapter_LogMode(t *testing.T) {
	withObservedLogger(t)

	adapter := NewGormLoggerAdapter(logger.Warn)
	newAdapter := adapter.LogMode(logger.Info)
	if newAdapter == nil {
		t.Fatal("LogMode should return a new adapter")
	}
	if newAdapter == logger.Interface(adapter) {
		t.Error("LogMode should not mutate the receiver")
	}
}

func TestGormLoggerAdapter_TraceError(t *testing.T) {
	logs := withObservedLogger(t)

	adapter := NewGormLoggerAdapter(logger.Error)
	adapter.Trace(context.Background(), time.Now(), func() (string, int64) {
		return "SELECT * FROM orders WHERE id = ?", 0
	}, errors.New("connection refused"))

	if logs.FilterMessage("Database operation failed").Len() != 1 {
		t.Error("expected error trace log")
	}
}

func TestGormLoggerAdapter_SlowQuery(t *testing.T) {
	logs := withObservedLogger(t)

	adapter := NewGormLoggerAdapterWithConfig(logger.Warn, &GormLoggerConfig{
		SlowThreshold: time.Millisecond,
	})
	begin := time.Now().Add(-time.Second)
	adapter.Trace(context.Background(), begin, func() (string, int64) {
		return "SELECT * FROM order_items", 100
	}, nil)

	if logs.FilterMessage("Slow SQL query").Len() != 1 {
		t.Error("expected slow query log")
	}
}

func TestGormLoggerAdapter_RequestIDFromContext(t *testing.T) {
	logs := withObservedLogger(t)

	ctx := persistence.ContextWithRequestID(context.Background(), "req-123")
	adapter := NewGormLoggerAdapter(logger.Info)
	adapter.Info(ctx, "with request id")

	entries := logs.FilterMessage("with request id").All()
	if len(entries) != 1 {
		t.Fatal("expected one log entry")
	}
	fields := entries[0].ContextMap()
	if fields["request_id"] != "req-123" {
		t.Errorf("expected request_id field, got %v", fields)
	}
}
