package cache

import (
	"context"
)

// Future is a handle to a value that is loaded asynchronously.
//
// Future is resolved exactly once, either with a value or with an error.
// Many goroutines may wait on the same Future, waiting does not affect the load.
type Future[T any] struct {
	done chan struct{}
	val  T
	err  error
}

func newFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

// Resolved returns a completed Future with a value.
func Resolved[T any](v T) *Future[T] {
	f := newFuture[T]()
	f.resolve(v, nil)

	return f
}

// Rejected returns a completed Future with an error.
func Rejected[T any](err error) *Future[T] {
	var zero T

	f := newFuture[T]()
	f.resolve(zero, err)

	return f
}

// resolve must be called once.
func (f *Future[T]) resolve(v T, err error) {
	f.val = v
	f.err = err
	close(f.done)
}

// Done returns a channel that is closed when result is available.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Await waits for the result.
//
// If ctx is done before the result is available, ctx error is returned,
// the load itself continues and the result stays available to other callers.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.val, f.err
	default:
	}

	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		var zero T

		return zero, ctx.Err()
	}
}

// Peek returns the value without waiting, ok is false while the result is pending.
func (f *Future[T]) Peek() (val T, ok bool) {
	select {
	case <-f.done:
		return f.val, true
	default:
		return val, false
	}
}

// Err returns the error of a completed result, nil while the result is pending.
func (f *Future[T]) Err() error {
	select {
	case <-f.done:
		return f.err
	default:
		return nil
	}
}
