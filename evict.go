package cache

import (
	"context"
	"time"
)

func (c *cache[T]) sweeper() {
	ticker := time.NewTicker(c.config.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.deleteStale(context.Background())
		case <-c.closed:
			return
		}
	}
}

// deleteStale removes stale entries of a snapshot of keys.
func (c *cache[T]) deleteStale(ctx context.Context) {
	now := c.config.timeNow()
	keys := c.data.keys()
	cnt := 0

	for _, k := range keys {
		if c.evict(ctx, k, func(e *entry[T]) bool { return e.stale(&c.config, now) }) {
			cnt++
		}
	}

	items := c.data.len()

	if cnt > 0 {
		c.log.Debug(ctx, "deleted stale cache entries",
			"name", c.config.Name,
			"count", cnt,
			"items", items,
		)
	}

	c.stat.Set(ctx, MetricItems, float64(items), "name", c.config.Name)
}

// evict deletes entry of key if it matches and calls OnRemove outside of bucket lock.
func (c *cache[T]) evict(ctx context.Context, key string, match func(e *entry[T]) bool) bool {
	b := c.data.bucket(key)

	b.Lock()

	e, found := b.data[key]
	if !found || !match(e) {
		b.Unlock()

		return false
	}

	delete(b.data, key)
	b.Unlock()

	c.removed(ctx, key, e.result)

	return true
}

// ExpireAll marks all entries as stale, next Get of each key starts a new load.
func (c *Cache[T]) ExpireAll(ctx context.Context) {
	start := time.Now()
	cnt := 0

	for i := range c.data.buckets {
		b := &c.data.buckets[i]

		b.Lock()
		for _, e := range b.data {
			e.expired = true
			cnt++
		}
		b.Unlock()
	}

	c.log.Important(ctx, "expired all entries in cache",
		"name", c.config.Name,
		"elapsed", time.Since(start).String(),
		"count", cnt,
	)
}

// DeleteAll evicts all entries calling OnRemove for each of them.
func (c *Cache[T]) DeleteAll(ctx context.Context) {
	start := time.Now()
	cnt := 0

	for _, k := range c.data.keys() {
		if c.evict(ctx, k, func(*entry[T]) bool { return true }) {
			cnt++
		}
	}

	c.log.Important(ctx, "deleted all entries in cache",
		"name", c.config.Name,
		"elapsed", time.Since(start).String(),
		"count", cnt,
	)
}
