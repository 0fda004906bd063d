package snapshot

import (
	"sync"
	"time"
)

// Store publishes the current snapshot to concurrent readers.
//
// The RWMutex protects only the current pointer. Snapshot contents are never
// mutated after Publish, so readers may hold a snapshot across the swap and
// keep seeing a consistent dataset.
type Store struct {
	mu      sync.RWMutex
	current *Snapshot
}

// NewStore creates an empty snapshot store
func NewStore() *Store {
	return &Store{}
}

// Publish swaps in a new snapshot. Nil snapshots are ignored so a failed
// refresh can never clear the last good dataset.
func (s *Store) Publish(snap *Snapshot) {
	if snap == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = snap
}

// Current returns the published snapshot, or false when none exists yet
func (s *Store) Current() (*Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current, s.current != nil
}

// Loaded reports whether any snapshot has been published
func (s *Store) Loaded() bool {
	_, ok := s.Current()
	return ok
}

// LastRefresh returns when the current snapshot was fetched
func (s *Store) LastRefresh() (time.Time, bool) {
	snap, ok := s.Current()
	if !ok {
		return time.Time{}, false
	}
	return snap.FetchedAt, true
}
