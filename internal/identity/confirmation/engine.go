// Package confirmation establishes which keys belong to the identity that
// claims them, by walking a three-tier waterfall per identity: the durable
// confirmation record, the identity's source-hosting keys file, then its
// hosted listing pages.
package confirmation

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"keyproof/internal/identity/metrics"
	"keyproof/internal/identity/models"
	"keyproof/internal/identity/ports"
	"keyproof/pkg/platform/retry"
)

const (
	defaultNetwork         = "mainnet"
	defaultPagesBaseURL    = "https://keybase.pub"
	defaultConfirmationTTL = 6 * 30 * 24 * time.Hour
	defaultRetryAttempts   = 3
	defaultRetryStep       = 5 * time.Second
	tracerName             = "keyproof/confirmation"
)

// CandidateCollector supplies the claims a sweep works on.
type CandidateCollector interface {
	Candidates(ctx context.Context) []models.CandidatePair
	DistinctIdentities(ctx context.Context) []models.Identity
}

// Engine runs the confirmation waterfall and the read-side projection.
type Engine struct {
	collector CandidateCollector
	cache     ports.CacheStore
	store     ports.PersistenceStore
	repos     ports.RepoContentSource
	pages     ports.WebPageSource

	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer

	network         string
	pagesBaseURL    string
	confirmationTTL time.Duration
	concurrency     int
	retry           retry.Linear
}

type Option func(*Engine)

func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(e *Engine) {
		if tracer != nil {
			e.tracer = tracer
		}
	}
}

// WithNetwork sets the chain network; non-default networks get their own
// listing page path segment.
func WithNetwork(network string) Option {
	return func(e *Engine) {
		if network != "" {
			e.network = network
		}
	}
}

// WithPagesBaseURL sets where listing pages are fetched from.
func WithPagesBaseURL(url string) Option {
	return func(e *Engine) {
		if url != "" {
			e.pagesBaseURL = url
		}
	}
}

func WithConfirmationTTL(ttl time.Duration) Option {
	return func(e *Engine) {
		if ttl > 0 {
			e.confirmationTTL = ttl
		}
	}
}

// WithConcurrency bounds how many identities a sweep processes at once.
// 1 keeps sweeps strictly sequential.
func WithConcurrency(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.concurrency = n
		}
	}
}

// WithRetry configures the web-scrape tier's attempts and linear backoff
// step.
func WithRetry(attempts int, step time.Duration) Option {
	return func(e *Engine) {
		if attempts > 0 {
			e.retry.Attempts = attempts
		}
		if step > 0 {
			e.retry.Step = step
		}
	}
}

// WithSleeper replaces the backoff delay.
func WithSleeper(sleep retry.Sleeper) Option {
	return func(e *Engine) {
		if sleep != nil {
			e.retry.Sleep = sleep
		}
	}
}

func New(
	collector CandidateCollector,
	cache ports.CacheStore,
	store ports.PersistenceStore,
	repos ports.RepoContentSource,
	pages ports.WebPageSource,
	opts ...Option,
) (*Engine, error) {
	if collector == nil {
		return nil, errors.New("candidate collector is required")
	}
	if cache == nil {
		return nil, errors.New("cache store is required")
	}
	if store == nil {
		return nil, errors.New("persistence store is required")
	}
	if repos == nil {
		return nil, errors.New("repository content source is required")
	}
	if pages == nil {
		return nil, errors.New("web page source is required")
	}

	e := &Engine{
		collector:       collector,
		cache:           cache,
		store:           store,
		repos:           repos,
		pages:           pages,
		logger:          slog.Default(),
		tracer:          otel.Tracer(tracerName),
		network:         defaultNetwork,
		pagesBaseURL:    defaultPagesBaseURL,
		confirmationTTL: defaultConfirmationTTL,
		concurrency:     1,
		retry: retry.Linear{
			Attempts: defaultRetryAttempts,
			Step:     defaultRetryStep,
		},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}
