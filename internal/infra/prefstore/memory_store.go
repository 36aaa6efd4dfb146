package prefstore

import (
	"context"
	"sync"

	"github.com/lequoctrung8581/weather-app-group-project-asm3/internal/domain/dashboard"
)

// MemoryStore is an in-process implementation of the preference store for
// tests/dev and as fallback when Valkey is unavailable.
type MemoryStore struct {
	mu    sync.RWMutex
	blobs map[string]string
}

// NewMemoryStore constructs a store backed by process memory.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string]string)}
}

// Get implements dashboard.PrefStore.
func (s *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.blobs[key]
	return value, ok, nil
}

// Set implements dashboard.PrefStore.
func (s *MemoryStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[key] = value
	return nil
}

var _ dashboard.PrefStore = (*MemoryStore)(nil)
