package queries

import (
	"errors"

	"eventrent/internal/core/domain/model/kernel"
	"eventrent/internal/pkg/errs"
	"eventrent/internal/pkg/guard"
)

var ErrCheckAssetsAvailabilityQueryIsNotConstructed = errors.New(
	"CheckAssetsAvailabilityQuery must be created via NewCheckAssetsAvailabilityQuery constructor",
)

// RequestedItem is one cart line of a read-side query.
type RequestedItem struct {
	AssetID  kernel.UUID
	Quantity int
}

// CheckAssetsAvailabilityQuery asks whether every item can be rented for an
// event. Each asset is checked over its own blocked period, event plus
// buffers plus that asset's refurb days.
type CheckAssetsAvailabilityQuery struct {
	items []RequestedItem
	event kernel.DateRange
	guard guard.ConstructorGuard
}

// NewCheckAssetsAvailabilityQuery needs at least one item, each with a valid
// asset id and quantity >= 1, and a valid event range.
func NewCheckAssetsAvailabilityQuery(items []RequestedItem, event kernel.DateRange) (CheckAssetsAvailabilityQuery, error) {
	var itemsErr error
	if len(items) == 0 {
		itemsErr = errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if err := item.AssetID.Validate(); err != nil {
			itemsErr = errors.Join(itemsErr, err)
		}
		if item.Quantity < 1 {
			itemsErr = errors.Join(itemsErr, errs.NewValueIsOutOfRangeError("quantity", item.Quantity, 1, "unbounded"))
		}
	}
	if err := errors.Join(itemsErr, event.Validate()); err != nil {
		return CheckAssetsAvailabilityQuery{}, err
	}

	return CheckAssetsAvailabilityQuery{
		items: append([]RequestedItem(nil), items...),
		event: event,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrCheckAssetsAvailabilityQueryIsNotConstructed if validation fails.
func (q CheckAssetsAvailabilityQuery) Validate() error {
	return q.guard.Validate(ErrCheckAssetsAvailabilityQueryIsNotConstructed)
}

// Items returns a copy of the requested lines.
func (q CheckAssetsAvailabilityQuery) Items() []RequestedItem {
	return append([]RequestedItem(nil), q.items...)
}

// Event returns the event dates, before buffers.
func (q CheckAssetsAvailabilityQuery) Event() kernel.DateRange {
	return q.event
}

// CheckAssetsAvailabilityQueryResponse lists only the items that fall short.
type CheckAssetsAvailabilityQueryResponse struct {
	AllAvailable     bool
	UnavailableItems []UnavailableItem
}

// UnavailableItem is one asset that cannot cover the requested quantity.
// NextAvailableDate is nil when the request exceeds the asset's total.
type UnavailableItem struct {
	AssetID           kernel.UUID
	AssetName         string
	Requested         int
	Available         int
	BlockedFrom       kernel.Date
	BlockedUntil      kernel.Date
	NextAvailableDate *kernel.Date
}
