package viewstate

import "sync"

// Cache holds the last list fetched for one screen. Two rules keep it
// consistent with server state: the list is only ever replaced wholesale,
// never patched in place, and a fetch whose result arrives after a newer
// fetch has already landed is discarded (last request wins, not last
// arrival).
type Cache[T any] struct {
	mu      sync.Mutex
	nextSeq uint64
	applied uint64
	items   []T
}

// Begin reserves a sequence number for a fetch that is about to start.
func (c *Cache[T]) Begin() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextSeq++
	return c.nextSeq
}

// Replace installs a wholesale copy of items for the fetch identified by
// seq. Returns false when a newer fetch already landed; the stale result is
// dropped.
func (c *Cache[T]) Replace(seq uint64, items []T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if seq < c.applied {
		return false
	}
	c.applied = seq
	c.items = append([]T(nil), items...)
	return true
}

// Items returns a copy of the last applied snapshot.
func (c *Cache[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]T(nil), c.items...)
}

// Len returns the size of the last applied snapshot.
func (c *Cache[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}
