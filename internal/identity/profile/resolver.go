// Package profile resolves the public metadata of identities.
package profile

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"keyproof/internal/identity/metrics"
	"keyproof/internal/identity/models"
	"keyproof/internal/identity/ports"
	"keyproof/internal/identity/store/cache"
)

const (
	defaultProfileTTL  = 6 * 30 * 24 * time.Hour
	defaultFanoutLimit = 16

	sourceLookup = "lookup"
	sourceUsers  = "users"
	sourceCached = "cached"
	sourceNone   = "none"
)

// NodeIdentityLister supplies the identities whose profiles are refreshed.
type NodeIdentityLister interface {
	NodeIdentities(ctx context.Context) []models.Identity
}

// Resolver resolves profiles from the profile-lookup API, falling back to
// source-hosting user records.
type Resolver struct {
	lookup ports.ProfileLookupSource
	users  ports.UserInfoSource
	cache  ports.CacheStore
	nodes  NodeIdentityLister

	logger      *slog.Logger
	metrics     *metrics.Metrics
	tracer      trace.Tracer
	profileTTL  time.Duration
	fanoutLimit int
}

type Option func(*Resolver)

func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Resolver) {
		r.metrics = m
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(r *Resolver) {
		if tracer != nil {
			r.tracer = tracer
		}
	}
}

func WithProfileTTL(ttl time.Duration) Option {
	return func(r *Resolver) {
		if ttl > 0 {
			r.profileTTL = ttl
		}
	}
}

// WithFanoutLimit bounds concurrent resolutions during a refresh.
func WithFanoutLimit(limit int) Option {
	return func(r *Resolver) {
		if limit > 0 {
			r.fanoutLimit = limit
		}
	}
}

func New(lookup ports.ProfileLookupSource, users ports.UserInfoSource, store ports.CacheStore, nodes NodeIdentityLister, opts ...Option) (*Resolver, error) {
	if lookup == nil {
		return nil, errors.New("profile lookup source is required")
	}
	if users == nil {
		return nil, errors.New("user info source is required")
	}
	if store == nil {
		return nil, errors.New("cache store is required")
	}
	if nodes == nil {
		return nil, errors.New("node identity lister is required")
	}
	r := &Resolver{
		lookup:      lookup,
		users:       users,
		cache:       store,
		nodes:       nodes,
		logger:      slog.Default(),
		tracer:      otel.Tracer("keyproof/profile"),
		profileTTL:  defaultProfileTTL,
		fanoutLimit: defaultFanoutLimit,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Resolve returns the profile of identity, or nil when no source has a usable
// one. When the lookup API fails outright, a previously cached profile is
// returned instead of consulting the fallback.
func (r *Resolver) Resolve(ctx context.Context, identity models.Identity) *models.Profile {
	p, _ := r.resolve(ctx, identity, r.logger.With("identity", string(identity)))
	return p
}

func (r *Resolver) resolve(ctx context.Context, identity models.Identity, logger *slog.Logger) (*models.Profile, string) {
	res, err := r.lookup.Lookup(ctx, string(identity))
	if err != nil {
		logger.WarnContext(ctx, "profile lookup failed", "category", ports.CategoryOf(err), "error", err)
		cached, ok, cerr := cache.GetJSON[models.Profile](ctx, r.cache, cache.ProfileKey(identity))
		if cerr == nil && ok {
			return cached, sourceCached
		}
	} else if p := fromLookup(identity, res); p != nil {
		return p, sourceLookup
	}

	user, err := r.users.GetUser(ctx, string(identity))
	if err != nil {
		logger.WarnContext(ctx, "user info lookup failed", "category", ports.CategoryOf(err), "error", err)
		return nil, sourceNone
	}
	if p := fromUserInfo(identity, user); p != nil {
		return p, sourceUsers
	}
	return nil, sourceNone
}

func fromLookup(identity models.Identity, res *models.LookupResult) *models.Profile {
	if res == nil || !res.StatusOK {
		return nil
	}
	p := &models.Profile{
		Identity:    identity,
		Name:        res.FullName,
		Description: res.Bio,
		Avatar:      res.AvatarURL,
		Location:    res.Location,
	}
	for _, proof := range res.Proofs {
		switch proof.Type {
		case "twitter":
			if p.Twitter == "" {
				p.Twitter = proof.URL
			}
		case "dns", "generic_web_site":
			if p.Website == "" {
				p.Website = proof.URL
			}
		}
	}
	return p
}

// fromUserInfo accepts a user record only when name, avatar and bio are all
// present.
func fromUserInfo(identity models.Identity, user *models.UserInfo) *models.Profile {
	if user == nil || user.Name == "" || user.AvatarURL == "" || user.Bio == "" {
		return nil
	}
	return &models.Profile{
		Identity:    identity,
		Name:        user.Name,
		Avatar:      user.AvatarURL,
		Description: user.Bio,
		Location:    user.Location,
		Twitter:     user.TwitterHandle,
		Website:     user.Blog,
	}
}

// RefreshReport summarizes one profile refresh.
type RefreshReport struct {
	ID         string        `json:"id"`
	Identities int           `json:"identities"`
	Resolved   int           `json:"resolved"`
	Unresolved int           `json:"unresolved"`
	Elapsed    time.Duration `json:"elapsed"`
}

// RefreshProfiles resolves every node identity and overwrites its cached
// profile. Identities without a profile keep whatever is cached.
func (r *Resolver) RefreshProfiles(ctx context.Context) RefreshReport {
	started := time.Now()
	report := RefreshReport{ID: uuid.NewString()}
	logger := r.logger.With("sweep_id", report.ID, "driver", "profiles")

	ctx, span := r.tracer.Start(ctx, "profile.refresh", trace.WithAttributes(attribute.String("sweep_id", report.ID)))
	defer span.End()

	identities := r.nodes.NodeIdentities(ctx)
	report.Identities = len(identities)

	var resolved, unresolved atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.fanoutLimit)
	for _, identity := range identities {
		g.Go(func() error {
			idLogger := logger.With("identity", string(identity))
			p, source := r.resolve(gctx, identity, idLogger)
			r.metrics.IncrementProfileResolution(source)
			if p == nil {
				unresolved.Add(1)
				return nil
			}
			if err := cache.SetJSON(gctx, r.cache, cache.ProfileKey(identity), p, r.profileTTL); err != nil {
				idLogger.WarnContext(gctx, "failed to cache profile", "error", err)
				unresolved.Add(1)
				return nil
			}
			resolved.Add(1)
			return nil
		})
	}
	_ = g.Wait()

	report.Resolved = int(resolved.Load())
	report.Unresolved = int(unresolved.Load())
	report.Elapsed = time.Since(started)
	r.metrics.ObserveSweep("profiles", report.Identities, report.Elapsed)
	span.SetAttributes(attribute.Int("resolved", report.Resolved))
	logger.InfoContext(ctx, "profile refresh finished",
		"identities", report.Identities,
		"resolved", report.Resolved,
		"unresolved", report.Unresolved,
		"elapsed", report.Elapsed,
	)
	return report
}
