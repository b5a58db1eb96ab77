package cache

import (
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
)

const shards = 64

// entry is a cache entry.
type entry[T any] struct {
	result     *Future[T]
	createdAt  time.Time
	accessedAt time.Time
	expired    bool
}

func newEntry[T any](result *Future[T], now time.Time) *entry[T] {
	return &entry[T]{result: result, createdAt: now, accessedAt: now}
}

// stale tells if entry must be treated as absent.
//
// Both lazy check in Get and periodic sweep use it.
func (e *entry[T]) stale(cfg *Config[T], now time.Time) bool {
	if e.expired {
		return true
	}

	if cfg.TimeToLive == Forever {
		return false
	}

	since := e.accessedAt
	if cfg.TTLAfter == AfterWrite {
		since = e.createdAt
	}

	return now.Sub(since) > cfg.TimeToLive
}

type bucket[T any] struct {
	sync.Mutex
	data map[string]*entry[T]
}

// store is a sharded map of entries.
//
// Bucket mutex guards read-modify-write sequences for keys of that bucket.
type store[T any] struct {
	buckets [shards]bucket[T]
}

func newStore[T any]() *store[T] {
	s := &store[T]{}

	for i := 0; i < shards; i++ {
		s.buckets[i].data = make(map[string]*entry[T])
	}

	return s
}

func (s *store[T]) bucket(key string) *bucket[T] {
	return &s.buckets[xxhash.Sum64String(key)%shards]
}

// deleteIf removes entry of key if it is still e.
func (s *store[T]) deleteIf(key string, e *entry[T]) bool {
	b := s.bucket(key)

	b.Lock()
	defer b.Unlock()

	if b.data[key] != e {
		return false
	}

	delete(b.data, key)

	return true
}

// keys returns a snapshot of stored keys.
func (s *store[T]) keys() []string {
	keys := make([]string, 0, 100)

	for i := range s.buckets {
		b := &s.buckets[i]

		b.Lock()
		for k := range b.data {
			keys = append(keys, k)
		}
		b.Unlock()
	}

	return keys
}

// len returns number of entries.
func (s *store[T]) len() int {
	cnt := 0

	for i := range s.buckets {
		b := &s.buckets[i]

		b.Lock()
		cnt += len(b.data)
		b.Unlock()
	}

	return cnt
}
