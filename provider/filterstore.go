package provider

import (
	"sync"

	"github.com/go-nearby/nearby"
)

// FilterStore holds the current scan filter set. Replace is invoked
// directly from caller threads while Snapshot is read from the packet
// path, so the store synchronizes independently of the worker queue.
//
// The set is always swapped wholesale as an immutable copy; readers can
// never observe a partially-updated sequence.
type FilterStore struct {
	mu sync.RWMutex
	// nil until filters are first installed; nil disables presence
	// resolution but not scanning.
	filters []nearby.ScanFilter
}

// Replace atomically installs a new filter set. A nil argument clears the
// store back to the never-set state.
func (s *FilterStore) Replace(ff []nearby.ScanFilter) {
	ff = nearby.CopyFilters(ff)

	s.mu.Lock()
	s.filters = ff
	s.mu.Unlock()
}

// Snapshot returns a defensive copy of the installed set reflecting a
// single point-in-time state, or nil if filters were never set.
func (s *FilterStore) Snapshot() []nearby.ScanFilter {
	s.mu.RLock()
	ff := s.filters
	s.mu.RUnlock()

	return nearby.CopyFilters(ff)
}
