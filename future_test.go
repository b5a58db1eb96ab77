package cache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vearutop/cache"
)

func TestResolved(t *testing.T) {
	f := cache.Resolved(123)

	select {
	case <-f.Done():
	default:
		t.Fatal("resolved future is not done")
	}

	v, ok := f.Peek()
	assert.True(t, ok)
	assert.Equal(t, 123, v)
	assert.NoError(t, f.Err())

	v, err := f.Await(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 123, v)
}

func TestRejected(t *testing.T) {
	errFailed := errors.New("failed")
	f := cache.Rejected[int](errFailed)

	v, err := f.Await(context.Background())
	assert.ErrorIs(t, err, errFailed)
	assert.Equal(t, 0, v)

	v, ok := f.Peek()
	assert.True(t, ok)
	assert.Equal(t, 0, v)
	assert.ErrorIs(t, f.Err(), errFailed)
}

func TestFuture_Await_canceled(t *testing.T) {
	release := make(chan struct{})
	c := cache.New(func(ctx context.Context, key string) (string, error) {
		<-release

		return key, nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
	defer cancel()

	f := c.Get(ctx, "key")

	_, err := f.Await(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	_, ok := f.Peek()
	assert.False(t, ok)
	assert.NoError(t, f.Err())

	close(release)

	v, err := f.Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "key", v)
}
