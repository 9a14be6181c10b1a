package order

import (
	"errors"

	"eventrent/internal/core/domain/model/asset"
	"eventrent/internal/core/domain/model/kernel"
	"eventrent/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Item is a line of an order: a snapshot of the asset taken at submission plus
// the requested quantity. Totals and bookings read the snapshot, never the
// live asset, so later catalogue edits cannot rewrite history.
type Item struct {
	id            kernel.UUID
	assetID       kernel.UUID
	assetName     string
	quantity      int
	volumePerUnit decimal.Decimal
	weightPerUnit decimal.Decimal
	condition     asset.Condition
	refurbDays    *int
}

// NewItem snapshots a.
func NewItem(a *asset.Asset, quantity int) (*Item, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return RestoreItem(kernel.NewUUID(), a.ID(), a.Name(), quantity, a.Volume(), a.Weight(), a.Condition(), a.RefurbDaysEstimate())
}

// RestoreItem rebuilds an item from its stored snapshot.
func RestoreItem(
	id, assetID kernel.UUID,
	assetName string,
	quantity int,
	volumePerUnit, weightPerUnit decimal.Decimal,
	condition asset.Condition,
	refurbDays *int,
) (*Item, error) {
	var qtyErr, nameErr error
	if quantity < 1 {
		qtyErr = errs.NewValueIsOutOfRangeError("quantity", quantity, 1, "unbounded")
	}
	if assetName == "" {
		nameErr = errs.NewValueIsRequiredError("assetName")
	}
	if err := errors.Join(id.Validate(), assetID.Validate(), qtyErr, nameErr, condition.Validate()); err != nil {
		return nil, err
	}
	item := &Item{
		id:            id,
		assetID:       assetID,
		assetName:     assetName,
		quantity:      quantity,
		volumePerUnit: volumePerUnit,
		weightPerUnit: weightPerUnit,
		condition:     condition,
	}
	if refurbDays != nil {
		days := *refurbDays
		item.refurbDays = &days
	}
	return item, nil
}

// ID returns the item identifier.
func (i *Item) ID() kernel.UUID {
	return i.id
}

// AssetID returns the snapshotted asset.
func (i *Item) AssetID() kernel.UUID {
	return i.assetID
}

// AssetName is the asset name at submission time.
func (i *Item) AssetName() string {
	return i.assetName
}

// Quantity is the number of units requested.
func (i *Item) Quantity() int {
	return i.quantity
}

// VolumePerUnit is the snapshotted unit volume.
func (i *Item) VolumePerUnit() decimal.Decimal {
	return i.volumePerUnit
}

// WeightPerUnit is the snapshotted unit weight.
func (i *Item) WeightPerUnit() decimal.Decimal {
	return i.weightPerUnit
}

// Condition is the asset condition at submission time.
func (i *Item) Condition() asset.Condition {
	return i.condition
}

// RefurbDaysEstimate is the raw snapshot estimate; see RefurbDays.
func (i *Item) RefurbDaysEstimate() *int {
	return i.refurbDays
}

// RefurbDays is the snapshot refurb estimate with nil read as zero.
func (i *Item) RefurbDays() int {
	if i.refurbDays == nil {
		return 0
	}
	return *i.refurbDays
}

// TotalVolume is VolumePerUnit times Quantity.
func (i *Item) TotalVolume() decimal.Decimal {
	return i.volumePerUnit.Mul(decimal.NewFromInt(int64(i.quantity)))
}

// TotalWeight is WeightPerUnit times Quantity.
func (i *Item) TotalWeight() decimal.Decimal {
	return i.weightPerUnit.Mul(decimal.NewFromInt(int64(i.quantity)))
}
