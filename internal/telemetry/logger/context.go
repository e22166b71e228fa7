package logger

import "context"

type (
	loggerCtxKey    struct{}
	requestIDCtxKey struct{}
)

// WithLogger returns a copy of ctx that carries l.
func WithLogger(ctx context.Context, l Logger) context.Context {
	return context.WithValue(ctx, loggerCtxKey{}, l)
}

// FromContext returns the logger carried by ctx, or Default().
func FromContext(ctx context.Context) Logger {
	l, ok := ctx.Value(loggerCtxKey{}).(Logger)
	if !ok {
		return Default()
	}
	return l
}

// WithRequestID tags ctx with the id assigned by the request middleware.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDCtxKey{}, id)
}

// RequestIDFromContext returns the request id, or "" outside a request.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDCtxKey{}).(string)
	return id
}

// L is the logger handlers and services log through: FromContext plus a
// request_id attribute when ctx belongs to a request.
func L(ctx context.Context) Logger {
	l := FromContext(ctx).WithContext(ctx)
	if id := RequestIDFromContext(ctx); id != "" {
		return l.With("request_id", id)
	}
	return l
}
