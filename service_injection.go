package skema

import "context"

// serviceKey is a unique key per type parameter T for context storage.
type serviceKey[T any] struct{}

// WithService stores a typed service instance in the context for use by
// CustomContext checks.
func WithService[T any](ctx context.Context, svc T) context.Context {
	return context.WithValue(ctx, serviceKey[T]{}, any(svc))
}

// Service retrieves a typed service instance from context.
func Service[T any](ctx context.Context) (T, bool) {
	var zero T
	if ctx == nil {
		return zero, false
	}
	tv, ok := ctx.Value(serviceKey[T]{}).(T)
	if !ok {
		return zero, false
	}
	return tv, true
}

// RequireService returns the service, or a custom issue at the current path
// when none was registered.
func RequireService[T any](ctx context.Context) (T, error) {
	if v, ok := Service[T](ctx); ok {
		return v, nil
	}
	var zero T
	return zero, Issues{{Code: CodeCustom, Message: "service not provided", Hint: "register it with WithService"}}
}
