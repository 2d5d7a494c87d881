package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"keyproof/internal/identity/ports"
	"keyproof/pkg/platform/sentinel"
)

func errMismatchedBatch(keys, values int) error {
	return fmt.Errorf("batch set with %d keys and %d values: %w", keys, values, sentinel.ErrInvalidState)
}

// GetJSON reads and decodes key. A value that fails to decode is reported as
// sentinel.ErrInvalidState.
func GetJSON[T any](ctx context.Context, store ports.CacheStore, key string) (*T, bool, error) {
	raw, ok, err := store.Get(ctx, key)
	if err != nil || !ok {
		return nil, false, err
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, false, fmt.Errorf("decode cache entry %s: %w", key, errors.Join(sentinel.ErrInvalidState, err))
	}
	return &out, true, nil
}

// SetJSON encodes value and stores it under key.
func SetJSON[T any](ctx context.Context, store ports.CacheStore, key string, value T, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode cache entry %s: %w", key, err)
	}
	return store.Set(ctx, key, raw, ttl)
}

// BatchGetJSON reads keys in one batch; misses and undecodable entries are
// nil.
func BatchGetJSON[T any](ctx context.Context, store ports.CacheStore, keys []string) ([]*T, error) {
	out := make([]*T, len(keys))
	if len(keys) == 0 {
		return out, nil
	}
	raws, err := store.BatchGet(ctx, keys)
	if err != nil {
		return out, err
	}
	for i, raw := range raws {
		if raw == nil || i >= len(out) {
			continue
		}
		var v T
		if err := json.Unmarshal(raw, &v); err == nil {
			out[i] = &v
		}
	}
	return out, nil
}

// BatchSetJSON encodes values and stores them in one batch.
func BatchSetJSON[T any](ctx context.Context, store ports.CacheStore, keys []string, values []T, ttl time.Duration) error {
	if len(keys) != len(values) {
		return errMismatchedBatch(len(keys), len(values))
	}
	raws := make([][]byte, len(values))
	for i, v := range values {
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode cache entry %s: %w", keys[i], err)
		}
		raws[i] = raw
	}
	return store.BatchSet(ctx, keys, raws, ttl)
}

// GetOrSet returns the cached value under key, or builds, stores and returns
// it. A failed cache write does not fail the read.
func GetOrSet[T any](ctx context.Context, store ports.CacheStore, key string, ttl time.Duration, build func(ctx context.Context) (T, error)) (T, error) {
	if cached, ok, err := GetJSON[T](ctx, store, key); err == nil && ok {
		return *cached, nil
	}
	value, err := build(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	_ = SetJSON(ctx, store, key, value, ttl)
	return value, nil
}

// BatchProcess resolves one value per item through the cache: cached entries
// are returned as-is, misses are computed with at most limit calls in flight
// and written back with ttl. Items whose computation failed are nil in the
// result and their errors are joined into the returned error.
func BatchProcess[T any](
	ctx context.Context,
	store ports.CacheStore,
	items []string,
	keyFn func(item string) string,
	compute func(ctx context.Context, item string) (*T, error),
	ttl time.Duration,
	limit int,
) ([]*T, error) {
	keys := make([]string, len(items))
	for i, item := range items {
		keys[i] = keyFn(item)
	}

	results, err := BatchGetJSON[T](ctx, store, keys)
	if err != nil {
		// The cache is an optimization; compute everything on a failed read.
		results = make([]*T, len(items))
	}

	missing := make([]int, 0, len(items))
	for i, r := range results {
		if r == nil {
			missing = append(missing, i)
		}
	}
	if len(missing) == 0 {
		return results, nil
	}

	errs := make([]error, len(missing))
	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for n, idx := range missing {
		g.Go(func() error {
			value, err := compute(gctx, items[idx])
			if err != nil {
				errs[n] = fmt.Errorf("%s: %w", items[idx], err)
				return nil
			}
			results[idx] = value
			return nil
		})
	}
	_ = g.Wait()

	setKeys := make([]string, 0, len(missing))
	setValues := make([]T, 0, len(missing))
	for _, idx := range missing {
		if results[idx] != nil {
			setKeys = append(setKeys, keys[idx])
			setValues = append(setValues, *results[idx])
		}
	}
	if len(setKeys) > 0 {
		if err := BatchSetJSON(ctx, store, setKeys, setValues, ttl); err != nil {
			errs = append(errs, err)
		}
	}

	return results, errors.Join(errs...)
}
