package cache

import (
	"context"
)

type skipReadCtxKey struct{}

// WithSkipRead returns context with cache read ignored.
//
// With such context Cache.Get discards current entry and starts a new load.
func WithSkipRead(ctx context.Context) context.Context {
	return context.WithValue(ctx, skipReadCtxKey{}, true)
}

// SkipRead returns true if cache read is ignored in context.
func SkipRead(ctx context.Context) bool {
	_, ok := ctx.Value(skipReadCtxKey{}).(bool)

	return ok
}

// detach keeps context values for the loader, but drops cancellation and deadline of caller,
// so that load started by one caller serves all callers of the key.
func detach(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}

	return context.WithoutCancel(ctx)
}
