package cache

import (
	"context"
	"sync"
	"time"
)

type cachedEntry struct {
	value     []byte
	expiresAt time.Time
}

// Clock returns the current time.
type Clock func() time.Time

// InMemoryStore is a process-local CacheStore with TTL expiration. It backs
// tests and single-instance deployments without Redis.
type InMemoryStore struct {
	mu      sync.RWMutex
	entries map[string]cachedEntry
	clock   Clock
}

type InMemoryOption func(*InMemoryStore)

// WithClock sets the clock function for testability.
func WithClock(clock Clock) InMemoryOption {
	return func(s *InMemoryStore) {
		if clock != nil {
			s.clock = clock
		}
	}
}

func NewInMemoryStore(opts ...InMemoryOption) *InMemoryStore {
	s := &InMemoryStore{
		entries: make(map[string]cachedEntry),
		clock:   time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Get returns the value for key. Expired entries are misses.
func (s *InMemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.lookup(key)
	return value, ok, nil
}

func (s *InMemoryStore) lookup(key string) ([]byte, bool) {
	entry, ok := s.entries[key]
	if !ok || !s.clock().Before(entry.expiresAt) {
		return nil, false
	}
	out := make([]byte, len(entry.value))
	copy(out, entry.value)
	return out, true
}

// Set stores value under key, overwriting any previous entry.
func (s *InMemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store(key, value, ttl)
	return nil
}

func (s *InMemoryStore) store(key string, value []byte, ttl time.Duration) {
	if ttl <= 0 {
		delete(s.entries, key)
		return
	}
	v := make([]byte, len(value))
	copy(v, value)
	s.entries[key] = cachedEntry{value: v, expiresAt: s.clock().Add(ttl)}
}

func (s *InMemoryStore) BatchGet(_ context.Context, keys []string) ([][]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([][]byte, len(keys))
	for i, key := range keys {
		if value, ok := s.lookup(key); ok {
			out[i] = value
		}
	}
	return out, nil
}

func (s *InMemoryStore) BatchSet(_ context.Context, keys []string, values [][]byte, ttl time.Duration) error {
	if len(keys) != len(values) {
		return errMismatchedBatch(len(keys), len(values))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, key := range keys {
		s.store(key, values[i], ttl)
	}
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range keys {
		delete(s.entries, key)
	}
	return nil
}

// Len counts live entries.
func (s *InMemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	now := s.clock()
	for _, e := range s.entries {
		if now.Before(e.expiresAt) {
			n++
		}
	}
	return n
}

// Snapshot copies all live entries. Tests use it to compare store contents.
func (s *InMemoryStore) Snapshot() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string, len(s.entries))
	for key := range s.entries {
		if value, ok := s.lookup(key); ok {
			out[key] = string(value)
		}
	}
	return out
}
