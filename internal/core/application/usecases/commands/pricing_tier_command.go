package commands

import (
	"errors"

	"eventrent/internal/core/domain/model/kernel"
	"eventrent/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrCreatePricingTierCommandIsNotConstructed = errors.New(
		"CreatePricingTierCommand must be created via NewCreatePricingTierCommand constructor",
	)
	ErrUpdatePricingTierCommandIsNotConstructed = errors.New(
		"UpdatePricingTierCommand must be created via NewUpdatePricingTierCommand constructor",
	)
)

// CreatePricingTierCommand adds a tier for a location. Use
// kernel.WildcardCity as the city for a country-wide fallback tier.
type CreatePricingTierCommand struct {
	location  kernel.Location
	volumeMin decimal.Decimal
	volumeMax decimal.Decimal
	basePrice decimal.Decimal

	guard guard.ConstructorGuard
}

// NewCreatePricingTierCommand creates a command to add a tier.
// Only the location is checked here; range and price rules are enforced by the
// pricing.Tier constructor inside the handler.
func NewCreatePricingTierCommand(
	location kernel.Location,
	volumeMin, volumeMax, basePrice decimal.Decimal,
) (CreatePricingTierCommand, error) {
	if err := location.Validate(); err != nil {
		return CreatePricingTierCommand{}, err
	}
	return CreatePricingTierCommand{
		location:  location,
		volumeMin: volumeMin,
		volumeMax: volumeMax,
		basePrice: basePrice,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreatePricingTierCommandIsNotConstructed if validation fails.
func (c CreatePricingTierCommand) Validate() error {
	return c.guard.Validate(ErrCreatePricingTierCommandIsNotConstructed)
}

// Location returns the country and city of the new tier.
func (c CreatePricingTierCommand) Location() kernel.Location {
	return c.location
}

// VolumeMin is the inclusive lower bound.
func (c CreatePricingTierCommand) VolumeMin() decimal.Decimal {
	return c.volumeMin
}

// VolumeMax is the exclusive upper bound.
func (c CreatePricingTierCommand) VolumeMax() decimal.Decimal {
	return c.volumeMax
}

// BasePrice returns the price before margin.
func (c CreatePricingTierCommand) BasePrice() decimal.Decimal {
	return c.basePrice
}

// UpdatePricingTierCommand replaces a tier's range, price and active flag.
type UpdatePricingTierCommand struct {
	tierID    kernel.UUID
	volumeMin decimal.Decimal
	volumeMax decimal.Decimal
	basePrice decimal.Decimal
	active    bool

	guard guard.ConstructorGuard
}

// NewUpdatePricingTierCommand creates a command replacing the range, price and
// active flag of an existing tier. Its location cannot change.
func NewUpdatePricingTierCommand(
	tierID kernel.UUID,
	volumeMin, volumeMax, basePrice decimal.Decimal,
	active bool,
) (UpdatePricingTierCommand, error) {
	if err := tierID.Validate(); err != nil {
		return UpdatePricingTierCommand{}, err
	}
	return UpdatePricingTierCommand{
		tierID:    tierID,
		volumeMin: volumeMin,
		volumeMax: volumeMax,
		basePrice: basePrice,
		active:    active,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrUpdatePricingTierCommandIsNotConstructed if validation fails.
func (c UpdatePricingTierCommand) Validate() error {
	return c.guard.Validate(ErrUpdatePricingTierCommandIsNotConstructed)
}

// TierID returns the tier to update.
func (c UpdatePricingTierCommand) TierID() kernel.UUID {
	return c.tierID
}

// VolumeMin is the new inclusive lower bound.
func (c UpdatePricingTierCommand) VolumeMin() decimal.Decimal {
	return c.volumeMin
}

// VolumeMax is the new exclusive upper bound.
func (c UpdatePricingTierCommand) VolumeMax() decimal.Decimal {
	return c.volumeMax
}

// BasePrice returns the new price before margin.
func (c UpdatePricingTierCommand) BasePrice() decimal.Decimal {
	return c.basePrice
}

// Active reports whether the tier stays in matching.
func (c UpdatePricingTierCommand) Active() bool {
	return c.active
}
