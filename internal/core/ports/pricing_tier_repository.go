package ports

import (
	"context"

	"eventrent/internal/core/domain/model/kernel"
	"eventrent/internal/core/domain/model/pricing"
)

// PricingTierRepository stores pricing tiers. Get returns ObjectNotFound for
// an unknown id.
type PricingTierRepository interface {
	Add(ctx context.Context, tier *pricing.Tier) error
	Update(ctx context.Context, tier *pricing.Tier) error
	Get(ctx context.Context, id kernel.UUID) (*pricing.Tier, error)

	// LockCountry serializes tier writes for the country, compared
	// case-insensitively, until the caller's transaction ends. Writers take it
	// before reading the tiers they check a change against.
	LockCountry(ctx context.Context, country string) error

	// ListByCountry returns active and inactive tiers of every city of the
	// country, wildcard included. The country is matched case-insensitively.
	ListByCountry(ctx context.Context, country string) ([]*pricing.Tier, error)
}
