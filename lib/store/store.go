package store

import "sync"

// storeImpl is the map-backed store engine. A single mutex covers every
// operation, which makes the whole map one linearization point.
type storeImpl struct {
	mu      sync.Mutex
	entries map[string]string
}

// NewMapStore creates a new empty in-memory store.
func NewMapStore() IStore {
	return &storeImpl{
		entries: make(map[string]string),
	}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see interface.go)
// --------------------------------------------------------------------------

func (s *storeImpl) Put(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = value
}

func (s *storeImpl) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.entries[key]
	return value, ok
}

func (s *storeImpl) Remove(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.entries[key]
	if ok {
		delete(s.entries, key)
	}
	return ok
}

func (s *storeImpl) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
