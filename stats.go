package cache

import (
	"github.com/puzpuzpuz/xsync"
)

// Metric names reported to stats.Tracker, all labeled with "name" of cache.
const (
	MetricHit    = "cache_hit"
	MetricMiss   = "cache_miss"
	MetricFailed = "cache_failed"
	MetricBuild  = "cache_build"
	MetricWrite  = "cache_write"
	MetricEvict  = "cache_evict"
	MetricItems  = "cache_items"
)

// Stats is a snapshot of cache statistics.
type Stats struct {
	Hits        int `json:"hits"`
	Misses      int `json:"misses"`
	FailedLoads int `json:"failedLoads"`
	Entries     int `json:"entries"`
}

type counters struct {
	hits        *xsync.Counter
	misses      *xsync.Counter
	failedLoads *xsync.Counter
}

func newCounters() counters {
	return counters{
		hits:        new(xsync.Counter),
		misses:      new(xsync.Counter),
		failedLoads: new(xsync.Counter),
	}
}

func (c counters) export(entries int) Stats {
	return Stats{
		Hits:        int(c.hits.Value()),
		Misses:      int(c.misses.Value()),
		FailedLoads: int(c.failedLoads.Value()),
		Entries:     entries,
	}
}
