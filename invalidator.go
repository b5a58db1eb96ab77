package cache

import (
	"context"
	"sync"
	"time"

	"github.com/bool64/ctxd"
)

// Invalidator is a registry of cache expiration triggers.
type Invalidator struct {
	sync.Mutex

	// SkipInterval defines minimal duration between two cache invalidations (flood protection), default 15s.
	SkipInterval time.Duration

	// Callbacks contains a list of functions to call on invalidate,
	// for example Cache.ExpireAll or Cache.DeleteAll.
	Callbacks []func(ctx context.Context)

	lastRun time.Time
}

// Invalidate triggers cache expiration.
func (i *Invalidator) Invalidate(ctx context.Context) error {
	i.Lock()
	defer i.Unlock()

	if len(i.Callbacks) == 0 {
		return ErrNothingToInvalidate
	}

	if i.SkipInterval == 0 {
		i.SkipInterval = 15 * time.Second
	}

	if since := time.Since(i.lastRun); since < i.SkipInterval {
		return ctxd.WrapError(ctx, ErrAlreadyInvalidated, "invalidation skipped",
			"lastRun", i.lastRun.String(),
			"skipInterval", i.SkipInterval.String())
	}

	i.lastRun = time.Now()

	for _, cb := range i.Callbacks {
		cb(ctx)
	}

	return nil
}
