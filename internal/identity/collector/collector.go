// Package collector gathers the (identity, key) claims made by the node and
// staking provider registries.
package collector

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"keyproof/internal/identity/metrics"
	"keyproof/internal/identity/models"
	"keyproof/internal/identity/ports"
	"keyproof/internal/identity/store/cache"
	pstrings "keyproof/pkg/platform/strings"
)

const (
	defaultProviderMetadataTTL = 15 * time.Minute
	defaultFanoutLimit         = 16
)

// Collector reads candidate pairs. Registry failures never surface as
// errors: the affected subset is empty and a warning is logged.
type Collector struct {
	nodes       ports.NodeSource
	providers   ports.ProviderSource
	cache       ports.CacheStore
	logger      *slog.Logger
	metrics     *metrics.Metrics
	metadataTTL time.Duration
	fanoutLimit int
}

type Option func(*Collector)

func WithLogger(logger *slog.Logger) Option {
	return func(c *Collector) {
		c.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Collector) {
		c.metrics = m
	}
}

// WithProviderMetadataTTL sets how long provider metadata stays cached.
func WithProviderMetadataTTL(ttl time.Duration) Option {
	return func(c *Collector) {
		if ttl > 0 {
			c.metadataTTL = ttl
		}
	}
}

// WithFanoutLimit bounds concurrent provider metadata fetches.
func WithFanoutLimit(limit int) Option {
	return func(c *Collector) {
		if limit > 0 {
			c.fanoutLimit = limit
		}
	}
}

func New(nodes ports.NodeSource, providers ports.ProviderSource, store ports.CacheStore, opts ...Option) (*Collector, error) {
	if nodes == nil {
		return nil, errors.New("node source is required")
	}
	if providers == nil {
		return nil, errors.New("provider source is required")
	}
	if store == nil {
		return nil, errors.New("cache store is required")
	}
	c := &Collector{
		nodes:       nodes,
		providers:   providers,
		cache:       store,
		logger:      slog.Default(),
		metadataTTL: defaultProviderMetadataTTL,
		fanoutLimit: defaultFanoutLimit,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ProviderCandidates pairs each provider address with the identity declared
// in its metadata. Providers without an identity are skipped.
func (c *Collector) ProviderCandidates(ctx context.Context) []models.CandidatePair {
	addresses, err := c.providers.ListAddresses(ctx)
	if err != nil {
		c.warn(ctx, "providers", "failed to list provider addresses", err)
		return nil
	}

	metadata, err := cache.BatchProcess(ctx, c.cache, addresses,
		cache.ProviderMetadataKey,
		c.providers.GetMetadata,
		c.metadataTTL, c.fanoutLimit)
	if err != nil {
		c.warn(ctx, "provider_metadata", "failed to fetch some provider metadata", err)
	}

	pairs := make([]models.CandidatePair, 0, len(addresses))
	for i, address := range addresses {
		meta := metadata[i]
		if meta == nil || meta.Identity == "" {
			continue
		}
		pairs = append(pairs, models.CandidatePair{Identity: meta.Identity, Key: models.Key(address)})
	}
	return pairs
}

// NodeCandidates pairs each heartbeating node's key with its identity.
func (c *Collector) NodeCandidates(ctx context.Context) []models.CandidatePair {
	nodes, err := c.nodes.ListHeartbeats(ctx)
	if err != nil {
		c.warn(ctx, "heartbeats", "failed to list heartbeats", err)
		return nil
	}
	pairs := make([]models.CandidatePair, 0, len(nodes))
	for _, n := range nodes {
		if n.Identity == "" {
			continue
		}
		pairs = append(pairs, models.CandidatePair{Identity: n.Identity, Key: n.Key})
	}
	return pairs
}

// Candidates returns provider pairs followed by node pairs.
func (c *Collector) Candidates(ctx context.Context) []models.CandidatePair {
	return append(c.ProviderCandidates(ctx), c.NodeCandidates(ctx)...)
}

// DistinctIdentities returns the identities of all candidates, trimmed and
// de-duplicated, in a fresh random order on every call.
func (c *Collector) DistinctIdentities(ctx context.Context) []models.Identity {
	pairs := c.Candidates(ctx)
	raw := make([]string, len(pairs))
	for i, p := range pairs {
		raw[i] = string(p.Identity)
	}
	return toIdentities(pstrings.Shuffled(pstrings.DedupeAndTrim(raw)))
}

// NodeIdentities returns the distinct identities of every registered node.
func (c *Collector) NodeIdentities(ctx context.Context) []models.Identity {
	nodes, err := c.nodes.ListAll(ctx)
	if err != nil {
		c.warn(ctx, "nodes", "failed to list nodes", err)
		return nil
	}
	raw := make([]string, len(nodes))
	for i, n := range nodes {
		raw[i] = string(n.Identity)
	}
	return toIdentities(pstrings.DedupeAndTrim(raw))
}

func (c *Collector) warn(ctx context.Context, source, msg string, err error) {
	c.metrics.IncrementCandidateFailure(source)
	c.logger.WarnContext(ctx, msg, "source", source, "error", err)
}

func toIdentities(values []string) []models.Identity {
	out := make([]models.Identity, len(values))
	for i, v := range values {
		out[i] = models.Identity(v)
	}
	return out
}
