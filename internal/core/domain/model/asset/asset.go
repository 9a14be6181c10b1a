package asset

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"eventrent/internal/core/domain/model/kernel"
	"eventrent/internal/pkg/errs"
	"eventrent/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	// ErrAssetIsNotConstructed is returned when validating a zero-value Asset.
	ErrAssetIsNotConstructed = errors.New("Asset must be created via NewAsset or RestoreAsset")
	// ErrRefurbDaysRequired is returned when a non-green asset has no refurb estimate.
	ErrRefurbDaysRequired = errs.NewValueIsRequiredError("refurbDaysEstimate")
	// ErrQuantityBelowBooked is the cause attached when a quantity change would
	// leave existing bookings over-committed.
	ErrQuantityBelowBooked = errors.New("total quantity is below the booked quantity")
)

// Asset is a physical item type owned by a company. TotalQuantity is the number
// of interchangeable units; availability is derived from bookings, never stored.
type Asset struct {
	id            kernel.UUID
	companyID     kernel.UUID
	name          string
	totalQuantity int
	condition     Condition
	refurbDays    *int
	volume        decimal.Decimal
	weight        decimal.Decimal
	status        Status
	deletedAt     *time.Time
	guard         guard.ConstructorGuard
}

// NewAsset creates an available asset.
func NewAsset(
	id, companyID kernel.UUID,
	name string,
	totalQuantity int,
	condition Condition,
	refurbDays *int,
	volume, weight decimal.Decimal,
) (*Asset, error) {
	return RestoreAsset(id, companyID, name, totalQuantity, condition, refurbDays, volume, weight, Available, nil)
}

// RestoreAsset rebuilds an asset from storage.
func RestoreAsset(
	id, companyID kernel.UUID,
	name string,
	totalQuantity int,
	condition Condition,
	refurbDays *int,
	volume, weight decimal.Decimal,
	status Status,
	deletedAt *time.Time,
) (*Asset, error) {
	a := &Asset{
		guard:     guard.NewConstructorGuard(),
		deletedAt: deletedAt,
	}
	if err := errors.Join(
		id.Validate(),
		companyID.Validate(),
		a.setName(name),
		a.setTotalQuantity(totalQuantity),
		a.setCondition(condition, refurbDays),
		a.setMeasures(volume, weight),
		status.Validate(),
	); err != nil {
		return nil, err
	}
	a.id = id
	a.companyID = companyID
	a.status = status
	return a, nil
}

// Validate reports whether a was built by NewAsset or RestoreAsset.
func (a *Asset) Validate() error {
	if a == nil {
		return ErrAssetIsNotConstructed
	}
	return a.guard.Validate(ErrAssetIsNotConstructed)
}

// ID returns the asset identifier.
func (a *Asset) ID() kernel.UUID {
	return a.id
}

// CompanyID returns the owning company.
func (a *Asset) CompanyID() kernel.UUID {
	return a.companyID
}

// Name returns the catalogue name.
func (a *Asset) Name() string {
	return a.name
}

// TotalQuantity is the number of interchangeable units owned, booked or not.
func (a *Asset) TotalQuantity() int {
	return a.totalQuantity
}

// Condition returns the current wear grade.
func (a *Asset) Condition() Condition {
	return a.condition
}

// RefurbDaysEstimate returns the days of refurbishment needed before use; nil for GREEN assets.
func (a *Asset) RefurbDaysEstimate() *int {
	return a.refurbDays
}

// Volume is per unit, in cubic metres.
func (a *Asset) Volume() decimal.Decimal {
	return a.volume
}

// Weight is per unit, in kilograms.
func (a *Asset) Weight() decimal.Decimal {
	return a.weight
}

// Status returns the catalogue status.
func (a *Asset) Status() Status {
	return a.status
}

// DeletedAt is set once the asset is soft-deleted.
func (a *Asset) DeletedAt() *time.Time {
	return a.deletedAt
}

// IsDeleted reports whether the asset was soft-deleted. Deleted assets cannot be ordered.
func (a *Asset) IsDeleted() bool {
	return a.deletedAt != nil
}

// BelongsTo reports whether company owns the asset.
func (a *Asset) BelongsTo(company kernel.UUID) bool {
	return a.companyID.IsEqual(company)
}

// RefurbDays is the refurb estimate with nil read as zero.
func (a *Asset) RefurbDays() int {
	if a.refurbDays == nil {
		return 0
	}
	return *a.refurbDays
}

// ChangeTotalQuantity sets a new unit count. peakBooked is the highest number of
// units concurrently claimed by current and future bookings; going below it
// would over-commit those bookings, so it is rejected.
func (a *Asset) ChangeTotalQuantity(quantity, peakBooked int) error {
	if quantity < peakBooked {
		return errs.NewValueIsOutOfRangeErrorWithCause("totalQuantity", quantity, peakBooked, "unbounded", ErrQuantityBelowBooked)
	}
	return a.setTotalQuantity(quantity)
}

func (a *Asset) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	a.name = name
	return nil
}

func (a *Asset) setTotalQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsOutOfRangeError("totalQuantity", quantity, 1, "unbounded")
	}
	a.totalQuantity = quantity
	return nil
}

func (a *Asset) setCondition(condition Condition, refurbDays *int) error {
	if err := condition.Validate(); err != nil {
		return err
	}
	if refurbDays != nil && *refurbDays < 0 {
		return errs.NewValueIsOutOfRangeError("refurbDaysEstimate", *refurbDays, 0, "unbounded")
	}
	if condition.NeedsRefurb() && refurbDays == nil {
		return fmt.Errorf("%w for %s condition", ErrRefurbDaysRequired, condition)
	}
	a.condition = condition
	if refurbDays != nil {
		days := *refurbDays
		a.refurbDays = &days
	}
	return nil
}

func (a *Asset) setMeasures(volume, weight decimal.Decimal) error {
	if volume.IsNegative() {
		return errs.NewValueIsOutOfRangeError("volume", volume, 0, "unbounded")
	}
	if weight.IsNegative() {
		return errs.NewValueIsOutOfRangeError("weight", weight, 0, "unbounded")
	}
	a.volume = volume
	a.weight = weight
	return nil
}
