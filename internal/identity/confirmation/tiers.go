package confirmation

import "keyproof/internal/identity/models"

// Tier names one stage of the confirmation waterfall.
type Tier string

const (
	TierStore         Tier = "store"
	TierSourceHosting Tier = "source_hosting"
	TierWebScrape     Tier = "web_scrape"
)

// Outcome is what a tier produced for one identity.
type Outcome int

const (
	// OutcomeNoData means the tier ran cleanly and found nothing.
	OutcomeNoData Outcome = iota
	// OutcomeConfirmed means the tier confirmed at least one key.
	OutcomeConfirmed
	// OutcomeFailed means the tier hit an error; it is treated as no data.
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeConfirmed:
		return "confirmed"
	case OutcomeFailed:
		return "failed"
	default:
		return "no_data"
	}
}

// TierResult is the explicit result of one tier. Only a confirmed result
// stops the waterfall.
type TierResult struct {
	Tier    Tier
	Outcome Outcome
	Keys    []models.Key
	Err     error
}

func (r TierResult) Confirmed() bool {
	return r.Outcome == OutcomeConfirmed
}

func confirmed(tier Tier, keys []models.Key) TierResult {
	return TierResult{Tier: tier, Outcome: OutcomeConfirmed, Keys: keys}
}

func noData(tier Tier) TierResult {
	return TierResult{Tier: tier, Outcome: OutcomeNoData}
}

func failed(tier Tier, err error) TierResult {
	return TierResult{Tier: tier, Outcome: OutcomeFailed, Err: err}
}
