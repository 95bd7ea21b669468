package settings

import (
	"context"
	"sync"
)

// Source reads and writes settings. Get returns a snapshot that callers own.
type Source interface {
	Get(ctx context.Context) (*Settings, error)
	Save(ctx context.Context, s *Settings) error
}

// MemoryStore is a Source held in memory.
type MemoryStore struct {
	mu       sync.Mutex
	settings *Settings
	saves    int
}

// NewMemoryStore creates a store holding s, or defaults when s is nil.
func NewMemoryStore(s *Settings) *MemoryStore {
	if s == nil {
		s = Default()
	}
	return &MemoryStore{settings: s.Clone()}
}

func (m *MemoryStore) Get(ctx context.Context) (*Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.settings.Clone(), nil
}

func (m *MemoryStore) Save(ctx context.Context, s *Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings = s.Clone()
	m.saves++
	return nil
}

// Saves reports how many times Save succeeded.
func (m *MemoryStore) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
