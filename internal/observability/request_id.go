package observability

import (
	"context"

	"github.com/google/uuid"
)

type contextKey struct{ name string }

// RequestIDKey stores the request ID in a context.
var RequestIDKey = contextKey{"request_id"}

// NewRequestID returns a random UUIDv4 string.
func NewRequestID() string {
	return uuid.New().String()
}

// RequestIDOrNew returns id when it parses as a UUID, and a fresh one
// otherwise.
func RequestIDOrNew(id string) string {
	if _, err := uuid.Parse(id); err != nil {
		return NewRequestID()
	}
	return id
}

func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

// RequestIDFromContext returns "" when ctx carries no request ID.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}
