package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// MemStore holds serialized documents in memory. Used by tests and as a dev
// fallback when no durable backend is configured.
type MemStore struct {
	mu sync.RWMutex
	m  map[string][]byte
}

func NewMemStore() *MemStore {
	return &MemStore{m: map[string][]byte{}}
}

// Seed stores an initial document, overwriting any existing one.
func (s *MemStore) Seed(name string, doc any) error {
	return s.Save(context.Background(), name, doc)
}

func (s *MemStore) Ping(_ context.Context) error { return nil }

func (s *MemStore) Load(_ context.Context, name string, into any) error {
	s.mu.RLock()
	data, ok := s.m[name]
	s.mu.RUnlock()

	if !ok {
		return fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	if err := json.Unmarshal(data, into); err != nil {
		return fmt.Errorf("%s: %w: %v", name, ErrMalformed, err)
	}
	return nil
}

func (s *MemStore) Save(_ context.Context, name string, doc any) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}

	s.mu.Lock()
	s.m[name] = data
	s.mu.Unlock()
	return nil
}
