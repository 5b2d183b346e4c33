package fixtured

import (
	"fmt"
	"sync"

	"github.com/iamaray/fixturegen/pkg/fixture"
)

// Storage defines the interface for persisting the fixture catalog
type Storage interface {
	SaveFixture(m *fixture.Manifest) error
	LoadFixtures() (map[string]*fixture.Manifest, error)
	DeleteFixture(id string) error
	Close() error
}

// MemoryStorage implements Storage using an in-memory map (not persistent).
// It is the fallback when no database path is configured, and the storage
// used by tests.
type MemoryStorage struct {
	fixtures map[string][]byte
	mu       sync.RWMutex
}

// NewMemoryStorage creates a new in-memory storage
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		fixtures: make(map[string][]byte),
	}
}

// SaveFixture stores a manifest
func (s *MemoryStorage) SaveFixture(m *fixture.Manifest) error {
	data, err := encodeManifest(m)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.fixtures[m.ID] = data

	return nil
}

// LoadFixtures loads all manifests
func (s *MemoryStorage) LoadFixtures() (map[string]*fixture.Manifest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	fixtures := make(map[string]*fixture.Manifest, len(s.fixtures))
	for id, data := range s.fixtures {
		m, err := decodeManifest(data)
		if err != nil {
			return nil, fmt.Errorf("decode fixture %s: %w", id, err)
		}
		fixtures[id] = m
	}

	return fixtures, nil
}

// DeleteFixture removes a manifest
func (s *MemoryStorage) DeleteFixture(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.fixtures, id)

	return nil
}

// Close is a no-op for memory storage
func (s *MemoryStorage) Close() error {
	return nil
}
