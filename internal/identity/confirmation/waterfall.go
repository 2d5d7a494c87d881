package confirmation

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"keyproof/internal/identity/models"
	"keyproof/internal/identity/ports"
	"keyproof/internal/identity/store/cache"
)

// namespaceFetch is what one namespace lookup returned.
type namespaceFetch struct {
	content string
	found   bool
	err     error
}

// preferCurrent picks the current namespace's content over the legacy one.
// An error only fails the pick when it hides content that would have been
// chosen.
func preferCurrent(current, legacy namespaceFetch) (string, bool, error) {
	switch {
	case current.found:
		return current.content, true, nil
	case current.err != nil:
		return "", false, current.err
	case legacy.found:
		return legacy.content, true, nil
	default:
		return "", false, legacy.err
	}
}

// fetchBoth runs fetch for the legacy and current namespaces concurrently.
func fetchBoth(ctx context.Context, fetch func(ctx context.Context, namespace string) namespaceFetch) (current, legacy namespaceFetch) {
	var g errgroup.Group
	g.Go(func() error {
		current = fetch(ctx, namespaceCurrent)
		return nil
	})
	g.Go(func() error {
		legacy = fetch(ctx, namespaceLegacy)
		return nil
	})
	_ = g.Wait()
	return current, legacy
}

// storeTier confirms the keys already recorded for identity.
func (e *Engine) storeTier(ctx context.Context, identity models.Identity, logger *slog.Logger) TierResult {
	keys, err := e.store.GetKeys(ctx, identity)
	if err != nil {
		return e.observe(ctx, logger, failed(TierStore, ports.PersistenceFailure("confirmation store", "get keys", err)))
	}
	if len(keys) == 0 {
		return e.observe(ctx, logger, noData(TierStore))
	}
	if err := e.writeThrough(ctx, keys); err != nil {
		return e.observe(ctx, logger, failed(TierStore, err))
	}
	return e.observe(ctx, logger, confirmed(TierStore, keys))
}

// sourceHostingTier confirms the keys listed in the identity's keys file.
func (e *Engine) sourceHostingTier(ctx context.Context, identity models.Identity, logger *slog.Logger) TierResult {
	current, legacy := fetchBoth(ctx, func(ctx context.Context, namespace string) namespaceFetch {
		content, found, err := e.repos.GetFile(ctx, string(identity), namespace, keysFile)
		return namespaceFetch{content: content, found: found, err: err}
	})
	content, found, err := preferCurrent(current, legacy)
	if err != nil {
		return e.observe(ctx, logger, failed(TierSourceHosting, err))
	}
	if !found {
		return e.observe(ctx, logger, noData(TierSourceHosting))
	}

	keys, err := parseKeysFile(content)
	if err != nil {
		return e.observe(ctx, logger, failed(TierSourceHosting, err))
	}
	if len(keys) == 0 {
		return e.observe(ctx, logger, noData(TierSourceHosting))
	}
	return e.observe(ctx, logger, e.commit(ctx, TierSourceHosting, identity, keys))
}

// webScrapeTier makes one attempt at confirming keys from the listing pages.
func (e *Engine) webScrapeTier(ctx context.Context, identity models.Identity, logger *slog.Logger) TierResult {
	current, legacy := fetchBoth(ctx, func(ctx context.Context, namespace string) namespaceFetch {
		page, err := e.pages.Fetch(ctx, pageURL(e.pagesBaseURL, identity, namespace, e.network))
		if err != nil || page == nil {
			return namespaceFetch{err: err}
		}
		return namespaceFetch{content: page.Body, found: true}
	})
	html, found, err := preferCurrent(current, legacy)
	if err != nil {
		return e.observe(ctx, logger, failed(TierWebScrape, err))
	}
	if !found {
		return e.observe(ctx, logger, noData(TierWebScrape))
	}

	keys := ExtractKeys(html, identity, e.network)
	if len(keys) == 0 {
		return e.observe(ctx, logger, noData(TierWebScrape))
	}
	return e.observe(ctx, logger, e.commit(ctx, TierWebScrape, identity, keys))
}

// resilientWebScrape retries failed web-scrape attempts with linear backoff.
// Exhausted retries yield the last failed result; no error escapes.
func (e *Engine) resilientWebScrape(ctx context.Context, identity models.Identity, logger *slog.Logger) TierResult {
	var result TierResult
	policy := e.retry
	policy.OnRetry = func(attempt int, err error) {
		e.metrics.IncrementScrapeRetries()
		logger.InfoContext(ctx, "web scrape attempt failed", "attempt", attempt, "error", err)
	}
	err := policy.Do(ctx, func(ctx context.Context) error {
		result = e.webScrapeTier(ctx, identity, logger)
		if result.Outcome == OutcomeFailed {
			return result.Err
		}
		return nil
	})
	if err != nil {
		logger.WarnContext(ctx, "web scrape gave up", "error", err)
		if result.Outcome != OutcomeFailed {
			result = failed(TierWebScrape, err)
		}
	}
	return result
}

// commit writes keys through to the cache and records them durably.
func (e *Engine) commit(ctx context.Context, tier Tier, identity models.Identity, keys []models.Key) TierResult {
	if err := e.writeThrough(ctx, keys); err != nil {
		return failed(tier, err)
	}
	if err := e.store.SetKeys(ctx, identity, keys); err != nil {
		return failed(tier, ports.PersistenceFailure("confirmation store", "set keys", err))
	}
	return confirmed(tier, keys)
}

func (e *Engine) writeThrough(ctx context.Context, keys []models.Key) error {
	values := make([]bool, len(keys))
	for i := range values {
		values[i] = true
	}
	if err := cache.BatchSetJSON(ctx, e.cache, cache.ConfirmationKeys(keys), values, e.confirmationTTL); err != nil {
		return ports.PersistenceFailure("cache", "write confirmations", err)
	}
	return nil
}

func (e *Engine) observe(ctx context.Context, logger *slog.Logger, r TierResult) TierResult {
	e.metrics.ObserveTierOutcome(string(r.Tier), r.Outcome.String())
	trace.SpanFromContext(ctx).AddEvent("tier", trace.WithAttributes(
		attribute.String("tier", string(r.Tier)),
		attribute.String("outcome", r.Outcome.String()),
		attribute.Int("keys", len(r.Keys)),
	))

	switch r.Outcome {
	case OutcomeConfirmed:
		logger.InfoContext(ctx, "keys confirmed", "tier", r.Tier, "keys", len(r.Keys))
	case OutcomeFailed:
		logger.WarnContext(ctx, "confirmation tier failed", "tier", r.Tier,
			"category", ports.CategoryOf(r.Err), "error", r.Err)
	default:
		logger.DebugContext(ctx, "confirmation tier found nothing", "tier", r.Tier)
	}
	return r
}

func parseKeysFile(content string) ([]models.Key, error) {
	var raw []string
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return nil, ports.ParseFailure("keys file", "decode keys", err)
	}
	keys := make([]models.Key, 0, len(raw))
	for _, k := range raw {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, models.Key(k))
		}
	}
	return keys, nil
}

func recordSpanResult(span trace.Span, r TierResult) {
	span.SetAttributes(
		attribute.String("tier", string(r.Tier)),
		attribute.String("outcome", r.Outcome.String()),
	)
	if r.Outcome == OutcomeFailed && r.Err != nil {
		span.RecordError(r.Err)
		span.SetStatus(codes.Error, fmt.Sprintf("%s failed", r.Tier))
	}
}
