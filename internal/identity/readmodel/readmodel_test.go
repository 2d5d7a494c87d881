package readmodel

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keyproof/internal/identity/models"
	"keyproof/internal/identity/store/cache"
	"keyproof/internal/platform/logger"
)

type countingProjector struct {
	calls atomic.Int32
	state models.ConfirmationMap
}

func (p *countingProjector) ConfirmAgainstCache(context.Context) models.ConfirmationMap {
	p.calls.Add(1)
	return p.state
}

type stubNodes []models.Identity

func (s stubNodes) NodeIdentities(context.Context) []models.Identity { return s }

func newReadModel(t *testing.T, store *cache.InMemoryStore, projector *countingProjector, nodes stubNodes) *ReadModel {
	t.Helper()
	rm, err := New(store, projector, nodes, WithLogger(logger.Discard()), WithAggregateTTL(time.Minute))
	require.NoError(t, err)
	return rm
}

func TestConfirmationMap(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	store := cache.NewInMemoryStore(cache.WithClock(func() time.Time { return now }))
	projector := &countingProjector{state: models.ConfirmationMap{
		"k1": {Identity: "alice", Confirmed: true},
		"k2": {Identity: "bob", Confirmed: false},
	}}
	rm := newReadModel(t, store, projector, nil)

	first, err := rm.ConfirmationMap(ctx)
	require.NoError(t, err)
	assert.Equal(t, projector.state, first)

	second, err := rm.ConfirmationMap(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), projector.calls.Load(), "second read is served from the cache")

	now = now.Add(2 * time.Minute)
	_, err = rm.ConfirmationMap(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(2), projector.calls.Load(), "expired aggregate is rebuilt")
}

func TestProfilesDropsMisses(t *testing.T) {
	ctx := context.Background()
	store := cache.NewInMemoryStore()
	require.NoError(t, cache.SetJSON(ctx, store, cache.ProfileKey("alice"), models.Profile{Identity: "alice", Name: "Alice"}, time.Hour))
	require.NoError(t, cache.SetJSON(ctx, store, cache.ProfileKey("carol"), models.Profile{Identity: "carol", Name: "Carol"}, time.Hour))
	rm := newReadModel(t, store, &countingProjector{}, stubNodes{"alice", "bob", "carol"})

	profiles, err := rm.Profiles(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.Profile{
		{Identity: "alice", Name: "Alice"},
		{Identity: "carol", Name: "Carol"},
	}, profiles)

	_, ok, err := store.Get(ctx, cache.ProfilesKey)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestInvalidate(t *testing.T) {
	ctx := context.Background()
	store := cache.NewInMemoryStore()
	projector := &countingProjector{state: models.ConfirmationMap{}}
	rm := newReadModel(t, store, projector, stubNodes{})

	_, err := rm.ConfirmationMap(ctx)
	require.NoError(t, err)
	_, err = rm.Profiles(ctx)
	require.NoError(t, err)

	require.NoError(t, rm.Invalidate(ctx))
	_, ok, _ := store.Get(ctx, cache.ConfirmationMapKey)
	assert.False(t, ok)
	_, ok, _ = store.Get(ctx, cache.ProfilesKey)
	assert.False(t, ok)

	_, err = rm.ConfirmationMap(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(2), projector.calls.Load())
}
