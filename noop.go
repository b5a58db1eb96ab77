package cache

import (
	"context"
)

// RejectAsIs is the default OnReject policy, it returns load error unchanged.
func RejectAsIs[T any](_ context.Context, err error, _ string, _ LoadFunc[T]) (T, error) {
	var zero T

	return zero, err
}

// RemoveNoOp is the default OnRemove hook, it does nothing.
func RemoveNoOp[T any](string, *Future[T]) error {
	return nil
}
