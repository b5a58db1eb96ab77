package cache

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/bool64/ctxd"
	"github.com/bool64/stats"
)

// Forever is a TimeToLive value to keep entries until explicitly replaced or removed, default.
const Forever = time.Duration(0)

// TTLAfter defines which entry timestamp starts time to live.
type TTLAfter int

const (
	// AfterAccess measures time to live from last read of entry, default.
	AfterAccess TTLAfter = iota

	// AfterWrite measures time to live from entry creation.
	AfterWrite
)

// LoadFunc produces a value for a key.
//
// Context of LoadFunc carries values of the caller that triggered the load,
// but it is not canceled with that caller.
type LoadFunc[T any] func(ctx context.Context, key string) (T, error)

// Config is optional configuration for New.
type Config[T any] struct {
	// Name is added to logs and stats.
	Name string

	// CheckInterval is a delay between two consecutive sweeps of stale entries, default 0 (no sweep).
	// Sweep is only started when TimeToLive is not Forever.
	//
	// Stale entries are never served regardless of sweep, sweep only releases memory of
	// keys that are not requested anymore.
	CheckInterval time.Duration

	// TimeToLive is a duration of entry freshness, default Forever.
	// Negative value makes every entry stale immediately.
	TimeToLive time.Duration

	// TTLAfter selects entry timestamp for TimeToLive, default AfterAccess.
	TTLAfter TTLAfter

	// KeepRejected disables removal of entry after failed load, so that the failure (or
	// the result of OnReject) is served until entry becomes stale.
	KeepRejected bool

	// OnReject is called once per failed load, its result replaces the result of the load.
	// Default RejectAsIs keeps the error.
	OnReject func(ctx context.Context, err error, key string, loader LoadFunc[T]) (T, error)

	// OnRemove is called once for every entry evicted as stale.
	// Entry is already detached from cache when OnRemove runs, so a lookup of the key inside the hook
	// does not see the removed result.
	// Errors and panics of OnRemove are logged and discarded.
	OnRemove func(key string, result *Future[T]) error

	// Logger collects messages with context.
	Logger ctxd.Logger

	// Stats tracks stats.
	Stats stats.Tracker

	timeNow func() time.Time
}

// Cache is a keyed cache of asynchronously loaded values.
//
// Concurrent requests of a key share a single load, completed and pending results
// are served until they become stale.
//
// Please use New to create instance.
type Cache[T any] struct {
	*cache[T]
}

type cache[T any] struct {
	loader LoadFunc[T]
	config Config[T]
	data   *store[T]
	cnt    counters

	closeOnce sync.Once
	closed    chan struct{}

	log  ctxd.Logger
	stat stats.Tracker
}

// New creates a Cache instance.
//
// Optional configuration can be provided with Config (only first argument is used).
func New[T any](loader LoadFunc[T], cfg ...Config[T]) *Cache[T] {
	config := Config[T]{}

	if len(cfg) >= 1 {
		config = cfg[0]
	}

	if config.OnReject == nil {
		config.OnReject = RejectAsIs[T]
	}

	if config.OnRemove == nil {
		config.OnRemove = RemoveNoOp[T]
	}

	if config.timeNow == nil {
		config.timeNow = time.Now
	}

	c := &cache[T]{
		loader: loader,
		config: config,
		data:   newStore[T](),
		cnt:    newCounters(),
		closed: make(chan struct{}),
		log:    config.Logger,
		stat:   config.Stats,
	}

	if c.log == nil {
		c.log = ctxd.NoOpLogger{}
	}

	if c.stat == nil {
		c.stat = stats.NoOp{}
	}

	C := &Cache[T]{
		cache: c,
	}

	if config.CheckInterval > 0 && config.TimeToLive != Forever {
		go c.sweeper()

		// Sweeper only holds inner cache, abandoned instance stops it.
		runtime.SetFinalizer(C, func(*Cache[T]) {
			c.close()
		})
	}

	return C
}

// Get returns a result for the key, starting a load if there is no fresh entry.
//
// All callers that get the key while entry is fresh receive the same Future.
func (c *Cache[T]) Get(ctx context.Context, key string) *Future[T] {
	now := c.config.timeNow()
	b := c.data.bucket(key)

	b.Lock()

	found, ok := b.data[key]
	if ok && !SkipRead(ctx) && !found.stale(&c.config, now) {
		found.accessedAt = now
		c.cnt.hits.Inc()
		b.Unlock()

		c.stat.Add(ctx, MetricHit, 1, "name", c.config.Name)
		c.log.Debug(ctx, "cache hit", "name", c.config.Name, "key", key)

		return found.result
	}

	e := newEntry(newFuture[T](), now)
	b.data[key] = e
	c.cnt.misses.Inc()

	b.Unlock()

	if ok {
		c.removed(ctx, key, found.result)
	}

	c.stat.Add(ctx, MetricMiss, 1, "name", c.config.Name)
	c.log.Debug(ctx, "cache miss", "name", c.config.Name, "key", key)

	go c.load(detach(ctx), key, e)

	return e.result
}

// Value returns loaded value or error for the key.
func (c *Cache[T]) Value(ctx context.Context, key string) (T, error) {
	return c.Get(ctx, key).Await(ctx)
}

// Set stores a value for the key replacing existing entry, loader is not called.
func (c *Cache[T]) Set(ctx context.Context, key string, value T) {
	e := newEntry(Resolved(value), c.config.timeNow())
	b := c.data.bucket(key)

	b.Lock()
	b.data[key] = e
	b.Unlock()

	c.stat.Add(ctx, MetricWrite, 1, "name", c.config.Name)
	c.log.Debug(ctx, "wrote to cache", "name", c.config.Name, "key", key, "value", value)
}

// Stats returns current statistics.
func (c *Cache[T]) Stats() Stats {
	return c.cnt.export(c.data.len())
}

// Len returns number of entries in cache.
func (c *Cache[T]) Len() int {
	return c.data.len()
}

// Close stops background sweep, cache remains usable.
func (c *Cache[T]) Close() {
	c.close()
}

func (c *cache[T]) close() {
	c.closeOnce.Do(func() {
		close(c.closed)
	})
}

func (c *cache[T]) load(ctx context.Context, key string, e *entry[T]) {
	defer func() {
		c.stat.Add(ctx, MetricBuild, 1, "name", c.config.Name)
	}()

	val, err := protect(func() (T, error) {
		return c.loader(ctx, key)
	})
	if err != nil {
		val, err = c.rejected(ctx, key, e, err)
	}

	e.result.resolve(val, err)
}

// rejected handles failed load before result is available to callers.
func (c *cache[T]) rejected(ctx context.Context, key string, e *entry[T], err error) (T, error) {
	c.cnt.failedLoads.Inc()
	c.stat.Add(ctx, MetricFailed, 1, "name", c.config.Name)
	c.log.Warn(ctx, "failed to load cache value",
		"error", err,
		"name", c.config.Name,
		"key", key)

	if !c.config.KeepRejected && c.data.deleteIf(key, e) {
		c.log.Debug(ctx, "removed rejected cache entry", "name", c.config.Name, "key", key)
	}

	return protect(func() (T, error) {
		return c.config.OnReject(ctx, err, key, c.loader)
	})
}

// removed calls OnRemove hook for evicted entry.
func (c *cache[T]) removed(ctx context.Context, key string, result *Future[T]) {
	c.stat.Add(ctx, MetricEvict, 1, "name", c.config.Name)
	c.log.Debug(ctx, "removing stale cache entry", "name", c.config.Name, "key", key)

	_, err := protect(func() (struct{}, error) {
		return struct{}{}, c.config.OnRemove(key, result)
	})
	if err != nil {
		c.log.Warn(ctx, "failed to handle cache entry removal",
			"error", err,
			"name", c.config.Name,
			"key", key)
	}
}

// protect converts panic of f into an error.
func protect[V any](f func() (V, error)) (val V, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrPanicked, r)
		}
	}()

	return f()
}
