package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the identity pipeline's Prometheus metrics. A nil *Metrics
// records nothing.
type Metrics struct {
	TierOutcomes      *prometheus.CounterVec
	SweepDuration     *prometheus.HistogramVec
	SweepIdentities   *prometheus.CounterVec
	ScrapeRetries     prometheus.Counter
	ProfileResolution *prometheus.CounterVec
	CandidateFailures *prometheus.CounterVec
	CacheCircuitOpen  prometheus.Gauge
}

// New creates and registers the identity metrics with the default registry.
func New() *Metrics {
	return &Metrics{
		TierOutcomes: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "keyproof_confirmation_tier_outcomes_total",
			Help: "Confirmation tier evaluations by tier and outcome",
		}, []string{"tier", "outcome"}),
		SweepDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "keyproof_sweep_duration_seconds",
			Help:    "Duration of sweep drivers",
			Buckets: []float64{1, 5, 15, 60, 300, 900, 1800, 3600},
		}, []string{"driver"}),
		SweepIdentities: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "keyproof_sweep_identities_total",
			Help: "Identities processed by sweep drivers",
		}, []string{"driver"}),
		ScrapeRetries: promauto.NewCounter(prometheus.CounterOpts{
			Name: "keyproof_scrape_retries_total",
			Help: "Failed web-scrape attempts that were retried or abandoned",
		}),
		ProfileResolution: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "keyproof_profile_resolutions_total",
			Help: "Profile resolutions by the source that answered",
		}, []string{"source"}),
		CandidateFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "keyproof_candidate_source_failures_total",
			Help: "Candidate registry reads that failed and yielded an empty subset",
		}, []string{"source"}),
		CacheCircuitOpen: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "keyproof_cache_circuit_open",
			Help: "1 while the shared cache is bypassed for the in-process fallback",
		}),
	}
}

func (m *Metrics) ObserveTierOutcome(tier, outcome string) {
	if m != nil {
		m.TierOutcomes.WithLabelValues(tier, outcome).Inc()
	}
}

func (m *Metrics) ObserveSweep(driver string, identities int, elapsed time.Duration) {
	if m != nil {
		m.SweepDuration.WithLabelValues(driver).Observe(elapsed.Seconds())
		m.SweepIdentities.WithLabelValues(driver).Add(float64(identities))
	}
}

func (m *Metrics) IncrementScrapeRetries() {
	if m != nil {
		m.ScrapeRetries.Inc()
	}
}

func (m *Metrics) IncrementProfileResolution(source string) {
	if m != nil {
		m.ProfileResolution.WithLabelValues(source).Inc()
	}
}

func (m *Metrics) IncrementCandidateFailure(source string) {
	if m != nil {
		m.CandidateFailures.WithLabelValues(source).Inc()
	}
}

func (m *Metrics) SetCacheCircuitOpen(open bool) {
	if m == nil {
		return
	}
	if open {
		m.CacheCircuitOpen.Set(1)
		return
	}
	m.CacheCircuitOpen.Set(0)
}
