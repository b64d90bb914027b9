// Package ctxutil carries per-update values through the context.
package ctxutil

import "context"

type ctxKey string

const correlationIDKey ctxKey = "correlation_id"

// WithCorrelationID stores the per-update correlation ID in the context.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey, id)
}

// CorrelationIDFromCtx extracts the correlation ID from the context.
// Returns an empty string if absent.
func CorrelationIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(correlationIDKey).(string)
	return id
}
