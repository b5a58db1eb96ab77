package cache_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vearutop/cache"
)

func TestInvalidator_Invalidate(t *testing.T) {
	ctx := context.Background()

	var loads1, loads2 int

	cache1 := cache.New(func(context.Context, string) (int, error) {
		loads1++

		return 1, nil
	})
	cache2 := cache.New(func(context.Context, string) (int, error) {
		loads2++

		return 2, nil
	})

	i := &cache.Invalidator{}
	err := i.Invalidate(ctx)
	assert.ErrorIs(t, err, cache.ErrNothingToInvalidate)

	i.Callbacks = append(i.Callbacks, cache1.ExpireAll, cache2.DeleteAll)

	val, err := cache1.Value(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, 1, val)

	val, err = cache2.Value(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, 2, val)

	require.NoError(t, i.Invalidate(ctx))

	assert.Equal(t, 1, cache1.Len())
	assert.Equal(t, 0, cache2.Len())

	_, err = cache1.Value(ctx, "key")
	require.NoError(t, err)

	_, err = cache2.Value(ctx, "key")
	require.NoError(t, err)

	assert.Equal(t, 2, loads1)
	assert.Equal(t, 2, loads2)

	err = i.Invalidate(ctx)
	assert.ErrorIs(t, err, cache.ErrAlreadyInvalidated)
}
