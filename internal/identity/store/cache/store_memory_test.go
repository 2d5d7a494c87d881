package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryStore(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	store := NewInMemoryStore(WithClock(func() time.Time { return now }))

	t.Run("set then get", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "a", []byte("1"), time.Minute))
		value, ok, err := store.Get(ctx, "a")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, []byte("1"), value)
	})

	t.Run("set overwrites", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "a", []byte("2"), time.Minute))
		value, _, _ := store.Get(ctx, "a")
		assert.Equal(t, []byte("2"), value)
	})

	t.Run("expired entries are misses", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "short", []byte("x"), time.Second))
		now = now.Add(2 * time.Second)
		_, ok, err := store.Get(ctx, "short")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("batch get returns nil for misses in key order", func(t *testing.T) {
		require.NoError(t, store.BatchSet(ctx, []string{"b1", "b2"}, [][]byte{[]byte("1"), []byte("2")}, time.Minute))
		values, err := store.BatchGet(ctx, []string{"b2", "missing", "b1"})
		require.NoError(t, err)
		assert.Equal(t, [][]byte{[]byte("2"), nil, []byte("1")}, values)
	})

	t.Run("batch set rejects mismatched lengths", func(t *testing.T) {
		err := store.BatchSet(ctx, []string{"x"}, nil, time.Minute)
		assert.Error(t, err)
	})

	t.Run("delete removes keys", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, "b1", "b2"))
		_, ok, _ := store.Get(ctx, "b1")
		assert.False(t, ok)
	})

	t.Run("stored values are copies", func(t *testing.T) {
		buf := []byte("abc")
		require.NoError(t, store.Set(ctx, "copy", buf, time.Minute))
		buf[0] = 'z'
		value, _, _ := store.Get(ctx, "copy")
		assert.Equal(t, []byte("abc"), value)
	})
}
