// Package persistence carries the transaction handle through context so
// repositories can join an ambient transaction without depending on the
// unit-of-work implementation.
package persistence

import (
	"context"

	"gorm.io/gorm"
)

type txContextKey struct{}

type requestIDContextKey struct{}

// ContextWithTx returns a context carrying the given transaction.
func ContextWithTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txContextKey{}, tx)
}

// TxFromContext extracts the transaction from the context, if any.
func TxFromContext(ctx context.Context) (*gorm.DB, bool) {
	tx, ok := ctx.Value(txContextKey{}).(*gorm.DB)
	return tx, ok
}

// ContextWithRequestID returns a context carrying the request id, so
// database logs can be correlated with the HTTP request that caused them.
func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDContextKey{}, requestID)
}

// RequestIDFromContext extracts the request id, or "" if absent.
func RequestIDFromContext(ctx context.Context) string {
	if requestID, ok := ctx.Value(requestIDContextKey{}).(string); ok {
		return requestID
	}
	return ""
}
