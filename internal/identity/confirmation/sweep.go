package confirmation

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"keyproof/internal/identity/models"
	"keyproof/internal/identity/store/cache"
)

// Sweep driver names.
const (
	DriverStore   = "store"
	DriverSources = "sources"
)

// SweepReport summarizes one driver run.
type SweepReport struct {
	ID         string        `json:"id"`
	Driver     string        `json:"driver"`
	Identities int           `json:"identities"`
	Confirmed  int           `json:"confirmed"`
	NoData     int           `json:"no_data"`
	Failed     int           `json:"failed"`
	Skipped    int           `json:"skipped"`
	StartedAt  time.Time     `json:"started_at"`
	Elapsed    time.Duration `json:"elapsed"`
}

type waterfall func(ctx context.Context, identity models.Identity, logger *slog.Logger) TierResult

// ConfirmAgainstStore re-confirms every candidate identity from its durable
// record only. It makes no external calls.
func (e *Engine) ConfirmAgainstStore(ctx context.Context) SweepReport {
	return e.sweep(ctx, DriverStore, e.storeTier)
}

// ConfirmAgainstSources runs the source-hosting tier, then the web-scrape
// tier, for every candidate identity.
func (e *Engine) ConfirmAgainstSources(ctx context.Context) SweepReport {
	return e.sweep(ctx, DriverSources, e.sourcesWaterfall)
}

// ConfirmIdentity runs the full three-tier waterfall for one identity.
func (e *Engine) ConfirmIdentity(ctx context.Context, identity models.Identity) TierResult {
	logger := e.logger.With("identity", string(identity))
	ctx, span := e.tracer.Start(ctx, "confirmation.identity",
		trace.WithAttributes(attribute.String("identity", string(identity))))
	defer span.End()

	result := e.storeTier(ctx, identity, logger)
	if !result.Confirmed() {
		result = e.sourcesWaterfall(ctx, identity, logger)
	}
	recordSpanResult(span, result)
	return result
}

func (e *Engine) sourcesWaterfall(ctx context.Context, identity models.Identity, logger *slog.Logger) TierResult {
	if result := e.sourceHostingTier(ctx, identity, logger); result.Confirmed() {
		return result
	}
	return e.resilientWebScrape(ctx, identity, logger)
}

// sweep applies run to every distinct identity with at most e.concurrency in
// flight. A cancelled context stops scheduling; identities not started are
// counted as skipped.
func (e *Engine) sweep(ctx context.Context, driver string, run waterfall) SweepReport {
	report := SweepReport{
		ID:        uuid.NewString(),
		Driver:    driver,
		StartedAt: time.Now(),
	}
	logger := e.logger.With("sweep_id", report.ID, "driver", driver)

	ctx, span := e.tracer.Start(ctx, "confirmation.sweep", trace.WithAttributes(
		attribute.String("sweep_id", report.ID),
		attribute.String("driver", driver),
	))
	defer span.End()

	identities := e.collector.DistinctIdentities(ctx)
	report.Identities = len(identities)
	logger.InfoContext(ctx, "sweep started", "identities", len(identities))

	var mu sync.Mutex
	g := new(errgroup.Group)
	g.SetLimit(e.concurrency)
	for _, identity := range identities {
		if ctx.Err() != nil {
			mu.Lock()
			report.Skipped++
			mu.Unlock()
			continue
		}
		g.Go(func() error {
			idCtx, idSpan := e.tracer.Start(ctx, "confirmation.identity",
				trace.WithAttributes(attribute.String("identity", string(identity))))
			result := run(idCtx, identity, logger.With("identity", string(identity)))
			recordSpanResult(idSpan, result)
			idSpan.End()

			mu.Lock()
			defer mu.Unlock()
			switch result.Outcome {
			case OutcomeConfirmed:
				report.Confirmed++
			case OutcomeFailed:
				report.Failed++
			default:
				report.NoData++
			}
			return nil
		})
	}
	_ = g.Wait()

	report.Elapsed = time.Since(report.StartedAt)
	e.metrics.ObserveSweep(driver, report.Identities, report.Elapsed)
	span.SetAttributes(
		attribute.Int("identities", report.Identities),
		attribute.Int("confirmed", report.Confirmed),
	)
	logger.InfoContext(ctx, "sweep finished",
		"identities", report.Identities,
		"confirmed", report.Confirmed,
		"no_data", report.NoData,
		"failed", report.Failed,
		"skipped", report.Skipped,
		"elapsed", report.Elapsed,
	)
	return report
}

// ConfirmAgainstCache projects the cached confirmation state of every
// current candidate key. Absent, expired or unreadable entries are
// unconfirmed. It never calls confirmation sources.
func (e *Engine) ConfirmAgainstCache(ctx context.Context) models.ConfirmationMap {
	pairs := e.collector.Candidates(ctx)
	keys := make([]models.Key, len(pairs))
	for i, p := range pairs {
		keys[i] = p.Key
	}

	var raws [][]byte
	if len(keys) > 0 {
		var err error
		raws, err = e.cache.BatchGet(ctx, cache.ConfirmationKeys(keys))
		if err != nil {
			e.logger.WarnContext(ctx, "failed to read confirmation states", "error", err)
			raws = nil
		}
	}

	out := make(models.ConfirmationMap, len(pairs))
	for i, p := range pairs {
		var ok bool
		if i < len(raws) && raws[i] != nil {
			if err := json.Unmarshal(raws[i], &ok); err != nil {
				e.logger.DebugContext(ctx, "undecodable confirmation state", "key", string(p.Key), "error", err)
			}
		}
		out[p.Key] = models.KeyState{Identity: p.Identity, Confirmed: ok}
	}
	return out
}
