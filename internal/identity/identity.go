// Package identity assembles the key-ownership confirmation pipeline: it
// wires sources and stores into the collector, the confirmation engine, the
// profile resolver and the read model, and dispatches the sweep drivers.
package identity

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"keyproof/internal/identity/collector"
	"keyproof/internal/identity/confirmation"
	"keyproof/internal/identity/metrics"
	"keyproof/internal/identity/models"
	"keyproof/internal/identity/ports"
	"keyproof/internal/identity/profile"
	"keyproof/internal/identity/readmodel"
	"keyproof/internal/identity/sources/github"
	"keyproof/internal/identity/sources/keybase"
	"keyproof/internal/identity/sources/network"
	"keyproof/internal/identity/store/cache"
	confirmstore "keyproof/internal/identity/store/confirmation"
	"keyproof/internal/platform/config"
	"keyproof/internal/platform/httpclient"
	"keyproof/pkg/platform/sentinel"
)

// Driver names accepted by Run.
const (
	DriverStore    = confirmation.DriverStore
	DriverSources  = confirmation.DriverSources
	DriverProfiles = "profiles"
)

// ErrUnknownDriver is returned by Run for a driver name it does not know.
var ErrUnknownDriver = fmt.Errorf("unknown driver: %w", sentinel.ErrNotFound)

// Service is the pipeline's entry point for triggers and readers.
type Service struct {
	Collector *collector.Collector
	Engine    *confirmation.Engine
	Resolver  *profile.Resolver
	ReadModel *readmodel.ReadModel
	logger    *slog.Logger
}

// Backends are the stores the pipeline runs on. A nil Redis client selects
// the in-memory cache; a nil database selects the in-memory record store.
type Backends struct {
	Redis    redis.Cmdable
	Postgres *sql.DB
}

// Sources are the external collaborators. Nil fields are built from config.
type Sources struct {
	Nodes     ports.NodeSource
	Providers ports.ProviderSource
	Repos     ports.RepoContentSource
	Users     ports.UserInfoSource
	Lookup    ports.ProfileLookupSource
	Pages     ports.WebPageSource
}

// New builds the pipeline from configuration.
func New(ctx context.Context, cfg *config.Config, backends Backends, sources Sources, logger *slog.Logger, m *metrics.Metrics) (*Service, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	var cacheStore ports.CacheStore = cache.NewInMemoryStore()
	if backends.Redis != nil {
		cacheStore = cache.NewFallbackStore(cache.NewRedisStore(backends.Redis), cache.NewInMemoryStore(),
			cache.WithFallbackLogger(logger),
			cache.WithFallbackMetrics(m),
		)
	} else {
		logger.WarnContext(ctx, "redis not configured, using in-memory cache")
	}

	var recordStore ports.PersistenceStore = confirmstore.NewInMemoryStore()
	if backends.Postgres != nil {
		pg := confirmstore.NewPostgresStore(backends.Postgres)
		if err := pg.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		recordStore = pg
	} else {
		logger.WarnContext(ctx, "postgres not configured, using in-memory confirmation records")
	}

	sources = sources.withDefaults(cfg)

	col, err := collector.New(sources.Nodes, sources.Providers, cacheStore,
		collector.WithLogger(logger),
		collector.WithMetrics(m),
		collector.WithProviderMetadataTTL(cfg.Cache.ProviderMetadataTTL),
		collector.WithFanoutLimit(cfg.Fanout.Limit),
	)
	if err != nil {
		return nil, err
	}

	engine, err := confirmation.New(col, cacheStore, recordStore, sources.Repos, sources.Pages,
		confirmation.WithLogger(logger),
		confirmation.WithMetrics(m),
		confirmation.WithNetwork(cfg.Network.Name),
		confirmation.WithPagesBaseURL(cfg.Keybase.PubURL),
		confirmation.WithConfirmationTTL(cfg.Cache.ConfirmationTTL),
		confirmation.WithConcurrency(cfg.Sweep.Concurrency),
		confirmation.WithRetry(cfg.Sweep.RetryAttempts, cfg.Sweep.RetryStep),
	)
	if err != nil {
		return nil, err
	}

	resolver, err := profile.New(sources.Lookup, sources.Users, cacheStore, col,
		profile.WithLogger(logger),
		profile.WithMetrics(m),
		profile.WithProfileTTL(cfg.Cache.ProfileTTL),
		profile.WithFanoutLimit(cfg.Fanout.Limit),
	)
	if err != nil {
		return nil, err
	}

	rm, err := readmodel.New(cacheStore, engine, col,
		readmodel.WithLogger(logger),
		readmodel.WithAggregateTTL(cfg.Cache.AggregateTTL),
	)
	if err != nil {
		return nil, err
	}

	return &Service{
		Collector: col,
		Engine:    engine,
		Resolver:  resolver,
		ReadModel: rm,
		logger:    logger,
	}, nil
}

func (s Sources) withDefaults(cfg *config.Config) Sources {
	clientOpts := []httpclient.Option{
		httpclient.WithTimeout(cfg.Sources.Timeout),
		httpclient.WithRateLimit(cfg.Sources.RequestsPerSecond, cfg.Sources.Burst),
	}
	if s.Nodes == nil || s.Providers == nil {
		registry := network.New(cfg.Network.GatewayURL, cfg.Network.APIURL, clientOpts...)
		if s.Nodes == nil {
			s.Nodes = registry
		}
		if s.Providers == nil {
			s.Providers = registry
		}
	}
	if s.Repos == nil || s.Users == nil {
		gh := github.New(cfg.Github.APIURL, cfg.Github.Token, clientOpts...)
		if s.Repos == nil {
			s.Repos = gh
		}
		if s.Users == nil {
			s.Users = gh
		}
	}
	if s.Lookup == nil {
		s.Lookup = keybase.NewLookupClient(cfg.Keybase.IOURL, clientOpts...)
	}
	if s.Pages == nil {
		s.Pages = keybase.NewPageClient(clientOpts...)
	}
	return s
}

// Run executes one driver to completion and returns its report. After a
// sweep the cached aggregates are dropped so readers see fresh state.
func (s *Service) Run(ctx context.Context, driver string) (any, error) {
	var report any
	switch driver {
	case DriverStore:
		report = s.Engine.ConfirmAgainstStore(ctx)
	case DriverSources:
		report = s.Engine.ConfirmAgainstSources(ctx)
	case DriverProfiles:
		report = s.Resolver.RefreshProfiles(ctx)
	default:
		return nil, fmt.Errorf("%q: %w", driver, ErrUnknownDriver)
	}
	if err := s.ReadModel.Invalidate(ctx); err != nil {
		s.logger.WarnContext(ctx, "read model not invalidated after sweep", "driver", driver, "error", err)
	}
	return report, nil
}

// ConfirmIdentity runs the full waterfall for one identity.
func (s *Service) ConfirmIdentity(ctx context.Context, identity models.Identity) confirmation.TierResult {
	result := s.Engine.ConfirmIdentity(ctx, identity)
	if result.Confirmed() {
		_ = s.ReadModel.Invalidate(ctx)
	}
	return result
}

func (s *Service) ConfirmationMap(ctx context.Context) (models.ConfirmationMap, error) {
	return s.ReadModel.ConfirmationMap(ctx)
}

func (s *Service) Profiles(ctx context.Context) ([]models.Profile, error) {
	return s.ReadModel.Profiles(ctx)
}
