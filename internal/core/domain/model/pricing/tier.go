package pricing

import (
	"errors"
	"fmt"

	"eventrent/internal/core/domain/model/kernel"
	"eventrent/internal/pkg/errs"
	"eventrent/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	// ErrTierIsNotConstructed is returned when validating a zero-value Tier.
	ErrTierIsNotConstructed = errors.New("Tier must be created via NewTier or RestoreTier")
	// ErrTierRangeOverlap is the cause reported when two active tiers of one
	// location would claim the same volume.
	ErrTierRangeOverlap = errors.New("volume range overlaps an active tier")
)

// Tier maps a venue location and a half-open volume range [min, max) to a
// base logistics price. A tier whose city is kernel.WildcardCity applies to
// every city of its country that has no tier of its own.
type Tier struct {
	id        kernel.UUID
	location  kernel.Location
	volumeMin decimal.Decimal
	volumeMax decimal.Decimal
	basePrice decimal.Decimal
	active    bool
	guard     guard.ConstructorGuard
}

// NewTier creates an active tier.
func NewTier(id kernel.UUID, location kernel.Location, volumeMin, volumeMax, basePrice decimal.Decimal) (*Tier, error) {
	return RestoreTier(id, location, volumeMin, volumeMax, basePrice, true)
}

// RestoreTier rebuilds a tier from storage.
//
// Parameters:
//   - location: the venue location; the city may be kernel.WildcardCity
//   - volumeMin, volumeMax: the half-open range, 0 <= volumeMin < volumeMax
//   - basePrice: positive price for any volume in range
//   - active: whether the tier takes part in matching
func RestoreTier(
	id kernel.UUID,
	location kernel.Location,
	volumeMin, volumeMax, basePrice decimal.Decimal,
	active bool,
) (*Tier, error) {
	t := &Tier{guard: guard.NewConstructorGuard()}
	if err := errors.Join(
		id.Validate(),
		location.Validate(),
		t.setRange(volumeMin, volumeMax),
		t.setBasePrice(basePrice),
	); err != nil {
		return nil, err
	}
	t.id = id
	t.location = location
	t.active = active
	return t, nil
}

// Validate reports whether t was built through a constructor.
func (t *Tier) Validate() error {
	if t == nil {
		return ErrTierIsNotConstructed
	}
	return t.guard.Validate(ErrTierIsNotConstructed)
}

// ID returns the tier identifier.
func (t *Tier) ID() kernel.UUID {
	return t.id
}

// Location returns the country and city the tier applies to.
func (t *Tier) Location() kernel.Location {
	return t.location
}

// VolumeMin is inclusive.
func (t *Tier) VolumeMin() decimal.Decimal {
	return t.volumeMin
}

// VolumeMax is exclusive.
func (t *Tier) VolumeMax() decimal.Decimal {
	return t.volumeMax
}

// BasePrice is the logistics price before the company margin.
func (t *Tier) BasePrice() decimal.Decimal {
	return t.basePrice
}

// IsActive reports whether the tier is used for matching and overlap checks.
func (t *Tier) IsActive() bool {
	return t.active
}

// ContainsVolume reports volumeMin <= v < volumeMax.
func (t *Tier) ContainsVolume(v decimal.Decimal) bool {
	return v.GreaterThanOrEqual(t.volumeMin) && v.LessThan(t.volumeMax)
}

// Matches reports whether the tier prices an order of volume v at exactly loc.
// Wildcard fallback is the caller's second lookup, not a match here.
func (t *Tier) Matches(loc kernel.Location, v decimal.Decimal) bool {
	return t.active && t.location.IsEqual(loc) && t.ContainsVolume(v)
}

// OverlapsWith reports whether both tiers are active, share a location and
// their half-open ranges intersect. A tier never overlaps itself.
func (t *Tier) OverlapsWith(other *Tier) bool {
	if other == nil || t.id.IsEqual(other.id) || !t.active || !other.active {
		return false
	}
	if !t.location.IsEqual(other.location) {
		return false
	}
	return t.volumeMin.LessThan(other.volumeMax) && other.volumeMin.LessThan(t.volumeMax)
}

// EnsureNoOverlap checks t against the other tiers of its location.
func (t *Tier) EnsureNoOverlap(others []*Tier) error {
	for _, other := range others {
		if t.OverlapsWith(other) {
			return errs.NewValueIsInvalidErrorWithCause("volume range", fmt.Errorf(
				"%w: [%s, %s) intersects tier %s [%s, %s)",
				ErrTierRangeOverlap, t.volumeMin, t.volumeMax, other.id, other.volumeMin, other.volumeMax,
			))
		}
	}
	return nil
}

// Update replaces the range and price; the location is fixed for a tier's life.
func (t *Tier) Update(volumeMin, volumeMax, basePrice decimal.Decimal, active bool) error {
	candidate := *t
	if err := errors.Join(
		candidate.setRange(volumeMin, volumeMax),
		candidate.setBasePrice(basePrice),
	); err != nil {
		return err
	}
	candidate.active = active
	*t = candidate
	return nil
}

// Deactivate removes the tier from matching. The row is kept for orders that reference it.
func (t *Tier) Deactivate() {
	t.active = false
}

func (t *Tier) setRange(volumeMin, volumeMax decimal.Decimal) error {
	if volumeMin.IsNegative() {
		return errs.NewValueIsOutOfRangeError("volumeMin", volumeMin, 0, "unbounded")
	}
	if !volumeMax.GreaterThan(volumeMin) {
		return errs.NewValueIsOutOfRangeError("volumeMax", volumeMax, volumeMin, "unbounded")
	}
	t.volumeMin = volumeMin
	t.volumeMax = volumeMax
	return nil
}

func (t *Tier) setBasePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return errs.NewValueIsOutOfRangeError("basePrice", price, 0, "unbounded")
	}
	t.basePrice = kernel.RoundMoney(price)
	return nil
}
