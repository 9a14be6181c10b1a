package services

import (
	"eventrent/internal/core/domain/model/kernel"
	"eventrent/internal/core/domain/model/pricing"

	"github.com/shopspring/decimal"
)

// StandardPricing is the automatic price of an order. When TierFound is false
// Tier is nil and Quote is zero: the order needs a manual adjustment.
type StandardPricing struct {
	TierFound bool
	Tier      *pricing.Tier
	Quote     pricing.Quote
}

// PricingEngine turns volume and venue into a price using the tier table
// and the company margin.
type PricingEngine struct{}

// NewPricingEngine returns the stateless pricing engine.
func NewPricingEngine() PricingEngine {
	return PricingEngine{}
}

// MatchTier picks the active tier of the exact city containing volume, and
// falls back to the country's wildcard tier when the city has none.
func (PricingEngine) MatchTier(tiers []*pricing.Tier, loc kernel.Location, volume decimal.Decimal) (*pricing.Tier, bool) {
	for _, t := range tiers {
		if t.Matches(loc, volume) {
			return t, true
		}
	}
	if loc.IsWildcard() {
		return nil, false
	}
	wildcard := loc.WithWildcardCity()
	for _, t := range tiers {
		if t.Matches(wildcard, volume) {
			return t, true
		}
	}
	return nil, false
}

// Standard prices an order: tier base price plus marginPercent of it.
func (e PricingEngine) Standard(
	tiers []*pricing.Tier,
	loc kernel.Location,
	volume, marginPercent decimal.Decimal,
) StandardPricing {
	tier, ok := e.MatchTier(tiers, loc, volume)
	if !ok {
		return StandardPricing{}
	}
	return StandardPricing{
		TierFound: true,
		Tier:      tier,
		Quote:     pricing.ApplyMargin(tier.BasePrice(), marginPercent),
	}
}

// Estimate is the best-effort client-side price of a cart. A missing venue or
// an unmatched volume yields nil rather than an error.
func (e PricingEngine) Estimate(
	tiers []*pricing.Tier,
	loc *kernel.Location,
	volume, marginPercent decimal.Decimal,
) *pricing.Quote {
	if loc == nil || loc.Validate() != nil {
		return nil
	}
	standard := e.Standard(tiers, *loc, volume, marginPercent)
	if !standard.TierFound {
		return nil
	}
	return &standard.Quote
}
