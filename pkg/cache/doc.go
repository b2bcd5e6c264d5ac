// Package cache provides a generic, thread-safe LRU map used for process-wide
// lookup caches.
//
// Besides the usual Get/Put/Remove the cache exposes Compute, which runs a
// read-compare-write step for a single key under the cache lock. It is meant
// for freshness checks where the expensive work happens outside the cache and
// only the final decision needs to be atomic:
//
//	fresh := expensiveLookup()
//	entry := c.Compute(key, func(cached Entry, ok bool) (Entry, bool) {
//		if ok && !fresh.NewerThan(cached) {
//			return cached, false // keep
//		}
//		return fresh, true // store
//	})
//
// The compute callback must be fast and must not call back into the cache.
//
// Capacity bounds memory: once exceeded, the least recently used entry is
// evicted and the optional eviction callback fires.
package cache
