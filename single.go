package cache

import (
	"context"
)

// Single caches one value, for example an access token, with the policies of Cache.
type Single[T any] struct {
	c *Cache[T]
}

// NewSingle creates a Single instance.
func NewSingle[T any](loader func(ctx context.Context) (T, error), cfg ...Config[T]) *Single[T] {
	return &Single[T]{
		c: New(func(ctx context.Context, _ string) (T, error) {
			return loader(ctx)
		}, cfg...),
	}
}

// Get returns a result, starting a load if there is no fresh one.
func (s *Single[T]) Get(ctx context.Context) *Future[T] {
	return s.c.Get(ctx, "")
}

// Value returns loaded value or error.
func (s *Single[T]) Value(ctx context.Context) (T, error) {
	return s.c.Value(ctx, "")
}

// Set replaces cached value.
func (s *Single[T]) Set(ctx context.Context, value T) {
	s.c.Set(ctx, "", value)
}

// Stats returns current statistics.
func (s *Single[T]) Stats() Stats {
	return s.c.Stats()
}

// Close stops background sweep.
func (s *Single[T]) Close() {
	s.c.Close()
}
