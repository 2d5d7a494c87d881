package cache

import (
	"context"
	"log/slog"
	"time"

	"keyproof/internal/identity/metrics"
	"keyproof/internal/identity/ports"
	"keyproof/pkg/platform/circuit"
)

// FallbackStore serves from a primary CacheStore and switches to a local
// fallback while the primary's circuit is open. The primary is still tried on
// every call so the circuit can close once it recovers.
type FallbackStore struct {
	primary  ports.CacheStore
	fallback ports.CacheStore
	breaker  *circuit.Breaker
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

type FallbackOption func(*FallbackStore)

func WithFallbackLogger(logger *slog.Logger) FallbackOption {
	return func(s *FallbackStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithFallbackMetrics(m *metrics.Metrics) FallbackOption {
	return func(s *FallbackStore) {
		s.metrics = m
	}
}

func WithBreaker(b *circuit.Breaker) FallbackOption {
	return func(s *FallbackStore) {
		if b != nil {
			s.breaker = b
		}
	}
}

func NewFallbackStore(primary, fallback ports.CacheStore, opts ...FallbackOption) *FallbackStore {
	s := &FallbackStore{
		primary:  primary,
		fallback: fallback,
		breaker:  circuit.New("cache"),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *FallbackStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, ok, err := s.primary.Get(ctx, key)
	if err == nil {
		if s.recordSuccess(ctx) {
			return value, ok, nil
		}
		return s.fallback.Get(ctx, key)
	}
	if !s.recordFailure(ctx, err) {
		return nil, false, err
	}
	return s.fallback.Get(ctx, key)
}

func (s *FallbackStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := s.primary.Set(ctx, key, value, ttl)
	if err == nil {
		s.recordSuccess(ctx)
		// keep the fallback warm for the next outage
		_ = s.fallback.Set(ctx, key, value, ttl)
		return nil
	}
	if !s.recordFailure(ctx, err) {
		return err
	}
	return s.fallback.Set(ctx, key, value, ttl)
}

func (s *FallbackStore) BatchGet(ctx context.Context, keys []string) ([][]byte, error) {
	values, err := s.primary.BatchGet(ctx, keys)
	if err == nil {
		if s.recordSuccess(ctx) {
			return values, nil
		}
		return s.fallback.BatchGet(ctx, keys)
	}
	if !s.recordFailure(ctx, err) {
		return nil, err
	}
	return s.fallback.BatchGet(ctx, keys)
}

func (s *FallbackStore) BatchSet(ctx context.Context, keys []string, values [][]byte, ttl time.Duration) error {
	err := s.primary.BatchSet(ctx, keys, values, ttl)
	if err == nil {
		s.recordSuccess(ctx)
		_ = s.fallback.BatchSet(ctx, keys, values, ttl)
		return nil
	}
	if !s.recordFailure(ctx, err) {
		return err
	}
	return s.fallback.BatchSet(ctx, keys, values, ttl)
}

// Delete removes keys from both stores so a stale fallback entry cannot
// outlive an invalidation.
func (s *FallbackStore) Delete(ctx context.Context, keys ...string) error {
	_ = s.fallback.Delete(ctx, keys...)
	err := s.primary.Delete(ctx, keys...)
	if err == nil {
		s.recordSuccess(ctx)
		return nil
	}
	if !s.recordFailure(ctx, err) {
		return err
	}
	return nil
}

// IsOpen reports whether calls are currently served by the fallback.
func (s *FallbackStore) IsOpen() bool {
	return s.breaker.IsOpen()
}

func (s *FallbackStore) recordSuccess(ctx context.Context) bool {
	usePrimary, change := s.breaker.RecordSuccess()
	if change.Closed {
		s.logger.InfoContext(ctx, "cache circuit closed, primary restored", "breaker", s.breaker.Name())
		s.metrics.SetCacheCircuitOpen(false)
	}
	return usePrimary
}

func (s *FallbackStore) recordFailure(ctx context.Context, err error) bool {
	useFallback, change := s.breaker.RecordFailure()
	if change.Opened {
		s.logger.WarnContext(ctx, "cache circuit opened, serving from fallback",
			"breaker", s.breaker.Name(), "error", err)
		s.metrics.SetCacheCircuitOpen(true)
	}
	return useFallback
}
