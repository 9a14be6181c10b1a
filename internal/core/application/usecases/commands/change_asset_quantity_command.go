package commands

import (
	"errors"

	"eventrent/internal/core/domain/model/kernel"
	"eventrent/internal/pkg/errs"
	"eventrent/internal/pkg/guard"
)

var ErrChangeAssetQuantityCommandIsNotConstructed = errors.New(
	"ChangeAssetQuantityCommand must be created via NewChangeAssetQuantityCommand constructor",
)

// ChangeAssetQuantityCommand sets the number of units an asset owns.
type ChangeAssetQuantityCommand struct {
	assetID       kernel.UUID
	totalQuantity int

	guard guard.ConstructorGuard
}

// NewChangeAssetQuantityCommand creates a command setting the number of units
// an asset owns. The quantity must be at least 1.
func NewChangeAssetQuantityCommand(assetID kernel.UUID, totalQuantity int) (ChangeAssetQuantityCommand, error) {
	var qtyErr error
	if totalQuantity < 1 {
		qtyErr = errs.NewValueIsOutOfRangeError("totalQuantity", totalQuantity, 1, "unbounded")
	}
	if err := errors.Join(assetID.Validate(), qtyErr); err != nil {
		return ChangeAssetQuantityCommand{}, err
	}
	return ChangeAssetQuantityCommand{
		assetID:       assetID,
		totalQuantity: totalQuantity,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrChangeAssetQuantityCommandIsNotConstructed if validation fails.
func (c ChangeAssetQuantityCommand) Validate() error {
	return c.guard.Validate(ErrChangeAssetQuantityCommandIsNotConstructed)
}

// AssetID returns the asset to change.
func (c ChangeAssetQuantityCommand) AssetID() kernel.UUID {
	return c.assetID
}

// TotalQuantity returns the new unit count.
func (c ChangeAssetQuantityCommand) TotalQuantity() int {
	return c.totalQuantity
}
