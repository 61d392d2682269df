// Package ctxstore stores typed request-scoped values (trace id, token
// claims) in a context.
package ctxstore

import "context"

type Key string

func (k Key) String() string {
	return string(k)
}

func With[T any](ctx context.Context, key Key, value T) context.Context {
	return context.WithValue(ctx, key, value)
}

func From[T any](ctx context.Context, key Key) (T, bool) {
	value, ok := ctx.Value(key).(T)
	return value, ok
}

// FromOr returns fallback when key is absent, e.g. for code paths reached
// outside the HTTP middleware chain.
func FromOr[T any](ctx context.Context, key Key, fallback T) T {
	if value, ok := From[T](ctx, key); ok {
		return value
	}
	return fallback
}
