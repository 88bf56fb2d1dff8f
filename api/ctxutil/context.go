// Package ctxutil bridges gin's context and the request-scoped values the
// lower layers read from context.Context.
package ctxutil

import (
	"context"

	"shop/api/response"
	"shop/infrastructure/persistence"

	"github.com/gin-gonic/gin"
)

// WithRequestID returns the request context enriched with the request id, so
// repository and database logs can be correlated with the HTTP request.
func WithRequestID(ctx *gin.Context) context.Context {
	requestID := response.GetRequestID(ctx)
	return persistence.ContextWithRequestID(ctx.Request.Context(), requestID)
}

func RequestIDFromContext(ctx context.Context) string {
	return persistence.RequestIDFromContext(ctx)
}
