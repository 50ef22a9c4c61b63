package taskgate

import "context"

type requestIDContextKey struct{}

// WithRequestID attaches a correlation identifier to ctx. The api client
// forwards it as X-Request-ID and the audit pipeline records it, so one
// navigation attempt can be traced across restore, refresh, and profile
// fetch calls.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDContextKey{}, id)
}

// RequestIDFromContext returns the correlation identifier attached by
// [WithRequestID], or "" when none is set.
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	id, _ := ctx.Value(requestIDContextKey{}).(string)
	return id
}
