// Package confirmation holds the durable record of which keys each identity
// has proven ownership of.
package confirmation

import (
	"context"
	"slices"
	"sync"

	"keyproof/internal/identity/models"
)

// InMemoryStore is a process-local PersistenceStore.
type InMemoryStore struct {
	mu      sync.RWMutex
	records map[models.Identity][]models.Key
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{records: make(map[models.Identity][]models.Key)}
}

// GetKeys returns a copy of the recorded keys, nil when no record exists.
func (s *InMemoryStore) GetKeys(_ context.Context, identity models.Identity) ([]models.Key, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys, ok := s.records[identity]
	if !ok {
		return nil, nil
	}
	return slices.Clone(keys), nil
}

// SetKeys overwrites the record for identity.
func (s *InMemoryStore) SetKeys(_ context.Context, identity models.Identity, keys []models.Key) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[identity] = slices.Clone(keys)
	return nil
}

// Len reports the number of records.
func (s *InMemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Snapshot copies all records.
func (s *InMemoryStore) Snapshot() map[models.Identity][]models.Key {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[models.Identity][]models.Key, len(s.records))
	for id, keys := range s.records {
		out[id] = slices.Clone(keys)
	}
	return out
}
