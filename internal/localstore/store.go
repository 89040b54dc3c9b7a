package localstore

import (
	"encoding/json"
	"sync"
)

// Store persists small client-side values, such as the cart, under fixed keys.
type Store interface {
	// Get decodes the value stored under key into dest and reports whether it was present.
	Get(key string, dest interface{}) (bool, error)
	Set(key string, value interface{}) error
	Clear(key string) error
}

// MemoryStore keeps values in process memory as JSON.
type MemoryStore struct {
	items map[string][]byte
	mu    sync.RWMutex
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string][]byte)}
}

func (s *MemoryStore) Get(key string, dest interface{}) (bool, error) {
	s.mu.RLock()
	data, found := s.items[key]
	s.mu.RUnlock()

	if !found {
		return false, nil
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (s *MemoryStore) Set(key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = data
	return nil
}

func (s *MemoryStore) Clear(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, key)
	return nil
}
