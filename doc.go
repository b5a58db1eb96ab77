// Package cache provides a keyed cache of asynchronously loaded values.
// Focused on race-free deduplication of loads on top of slow or unreliable sources.
//
// Features:
//
//   - Concurrent requests of a key share a single load and a single Future.
//   - Pending results are cached as well as completed ones.
//   - Time to live is measured from last access or from write.
//   - Stale entries are never served, background sweep optionally releases memory of abandoned keys.
//   - Failed loads are removed by default, fallback policy can replace failure with a value.
//   - Removal hook is isolated from cache operations.
//   - Allows logging, stats collection.
//   - Allows mass expiration and removal (drop cache).
package cache
