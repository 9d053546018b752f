package cache

import (
	"sync"
	"time"

	"oompa/backend/internal/model"
)

// DetailStore maps identities to cached detail records.
// Entries are never deleted.
type DetailStore struct {
	mu      sync.RWMutex
	entries map[int64]Entry[model.OompaDetail]
}

func NewDetailStore() *DetailStore {
	return &DetailStore{entries: make(map[int64]Entry[model.OompaDetail])}
}

// Get returns the entry for id and whether it exists.
func (s *DetailStore) Get(id int64) (Entry[model.OompaDetail], bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[id]
	return entry, ok
}

// Put stores value for id. The stored timestamp never moves backwards.
func (s *DetailStore) Put(id int64, value model.OompaDetail, fetchedAt time.Time) Entry[model.OompaDetail] {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.entries[id]; ok {
		fetchedAt = later(existing.FetchedAt, fetchedAt)
	}
	entry := Entry[model.OompaDetail]{Value: value, FetchedAt: fetchedAt}
	s.entries[id] = entry
	return entry
}

func (s *DetailStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// All returns a copy of every entry.
func (s *DetailStore) All() map[int64]Entry[model.OompaDetail] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[int64]Entry[model.OompaDetail], len(s.entries))
	for id, entry := range s.entries {
		out[id] = entry
	}
	return out
}

// Replace swaps the whole content, used when rehydrating from storage.
func (s *DetailStore) Replace(entries map[int64]Entry[model.OompaDetail]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[int64]Entry[model.OompaDetail], len(entries))
	for id, entry := range entries {
		s.entries[id] = entry
	}
}
