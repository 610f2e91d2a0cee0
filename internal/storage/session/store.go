package session

import (
	"sync"

	"coinwatch/internal/domain"
)

// Store keeps the most recent market snapshot per chat session so detail and
// back-to-list views are served without re-fetching. Snapshots are replaced
// wholesale; concurrent writes to the same key are last-write-wins, which is
// safe because every write is a complete self-consistent snapshot. Entries
// never expire — staleness is the caller's concern.
type Store struct {
	mu        sync.RWMutex
	snapshots map[string]domain.MarketSnapshot
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{snapshots: make(map[string]domain.MarketSnapshot)}
}

// Put replaces the cached snapshot for the session.
func (s *Store) Put(key string, snapshot domain.MarketSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshots[key] = snapshot
}

// Get returns the cached snapshot for the session, if any.
func (s *Store) Get(key string) (domain.MarketSnapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot, ok := s.snapshots[key]
	return snapshot, ok
}
