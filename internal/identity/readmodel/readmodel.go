// Package readmodel serves the two aggregates the public API consumes: the
// key confirmation map and the list of resolved profiles.
package readmodel

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"keyproof/internal/identity/models"
	"keyproof/internal/identity/ports"
	"keyproof/internal/identity/store/cache"
)

const defaultAggregateTTL = time.Hour

// ConfirmationProjector rebuilds the confirmation map from cached state.
type ConfirmationProjector interface {
	ConfirmAgainstCache(ctx context.Context) models.ConfirmationMap
}

// NodeIdentityLister supplies the identities whose profiles are listed.
type NodeIdentityLister interface {
	NodeIdentities(ctx context.Context) []models.Identity
}

type ReadModel struct {
	cache     ports.CacheStore
	projector ConfirmationProjector
	nodes     NodeIdentityLister
	logger    *slog.Logger
	ttl       time.Duration
}

type Option func(*ReadModel)

func WithLogger(logger *slog.Logger) Option {
	return func(r *ReadModel) {
		r.logger = logger
	}
}

// WithAggregateTTL sets how long both aggregates stay cached.
func WithAggregateTTL(ttl time.Duration) Option {
	return func(r *ReadModel) {
		if ttl > 0 {
			r.ttl = ttl
		}
	}
}

func New(store ports.CacheStore, projector ConfirmationProjector, nodes NodeIdentityLister, opts ...Option) (*ReadModel, error) {
	if store == nil {
		return nil, errors.New("cache store is required")
	}
	if projector == nil {
		return nil, errors.New("confirmation projector is required")
	}
	if nodes == nil {
		return nil, errors.New("node identity lister is required")
	}
	r := &ReadModel{
		cache:     store,
		projector: projector,
		nodes:     nodes,
		logger:    slog.Default(),
		ttl:       defaultAggregateTTL,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// ConfirmationMap returns the cached confirmation map, rebuilding it from
// per-key state on a miss.
func (r *ReadModel) ConfirmationMap(ctx context.Context) (models.ConfirmationMap, error) {
	return cache.GetOrSet(ctx, r.cache, cache.ConfirmationMapKey, r.ttl,
		func(ctx context.Context) (models.ConfirmationMap, error) {
			return r.projector.ConfirmAgainstCache(ctx), nil
		})
}

// Profiles returns the cached profile list, rebuilding it from per-identity
// profiles on a miss. Identities without a cached profile are left out.
func (r *ReadModel) Profiles(ctx context.Context) ([]models.Profile, error) {
	return cache.GetOrSet(ctx, r.cache, cache.ProfilesKey, r.ttl, r.collectProfiles)
}

func (r *ReadModel) collectProfiles(ctx context.Context) ([]models.Profile, error) {
	identities := r.nodes.NodeIdentities(ctx)
	keys := make([]string, len(identities))
	for i, id := range identities {
		keys[i] = cache.ProfileKey(id)
	}
	cached, err := cache.BatchGetJSON[models.Profile](ctx, r.cache, keys)
	if err != nil {
		return nil, err
	}
	profiles := make([]models.Profile, 0, len(cached))
	for _, p := range cached {
		if p != nil {
			profiles = append(profiles, *p)
		}
	}
	return profiles, nil
}

// Invalidate drops both aggregates so the next read rebuilds them.
func (r *ReadModel) Invalidate(ctx context.Context) error {
	if err := r.cache.Delete(ctx, cache.ConfirmationMapKey, cache.ProfilesKey); err != nil {
		r.logger.WarnContext(ctx, "failed to invalidate read model", "error", err)
		return err
	}
	return nil
}
