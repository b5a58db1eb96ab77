package cache_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vearutop/cache"
)

func TestRejectAsIs(t *testing.T) {
	errFailed := errors.New("failed")

	v, err := cache.RejectAsIs[int](context.Background(), errFailed, "foo", nil)
	assert.Equal(t, 0, v)
	assert.Equal(t, errFailed, err)
}

func TestRemoveNoOp(t *testing.T) {
	assert.NoError(t, cache.RemoveNoOp("foo", cache.Resolved(123)))
}
