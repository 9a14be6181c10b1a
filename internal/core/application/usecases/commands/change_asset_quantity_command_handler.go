package commands

import (
	"context"

	"eventrent/internal/core/domain/model/kernel"
	"eventrent/internal/core/domain/services"
	"eventrent/internal/pkg/clock"
)

// ChangeAssetQuantityCommandHandler resizes an asset. The asset row is locked
// first, so no booking can be created between measuring the peak booked
// quantity and storing the new total. Shrinking below that peak fails with
// a ValueIsOutOfRange error caused by asset.ErrQuantityBelowBooked.
type ChangeAssetQuantityCommandHandler struct {
	uowFactory InventoryUoWFactory
	engine     services.AvailabilityEngine
	clock      clock.Clock
}

// NewChangeAssetQuantityCommandHandler creates the inventory handler.
//
// Parameters:
//   - uowFactory: unit of work exposing assets and bookings
//   - engine: computes the peak booked quantity
//   - clk: defines "today"; bookings that ended earlier are ignored
func NewChangeAssetQuantityCommandHandler(
	uowFactory InventoryUoWFactory,
	engine services.AvailabilityEngine,
	clk clock.Clock,
) ChangeAssetQuantityCommandHandler {
	return ChangeAssetQuantityCommandHandler{
		uowFactory: uowFactory,
		engine:     engine,
		clock:      clk,
	}
}

// Handle locks the asset and sets its total quantity.
// Returns a ValueIsOutOfRangeError caused by asset.ErrQuantityBelowBooked when
// current or future bookings need more units than the new total.
func (h ChangeAssetQuantityCommandHandler) Handle(ctx context.Context, cmd ChangeAssetQuantityCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	assets := uow.AssetRepository()
	a, err := assets.GetForUpdate(ctx, cmd.AssetID())
	if err != nil {
		return err
	}

	ledger := services.NewBookingLedger(h.engine, assets, uow.BookingRepository())
	peak, err := ledger.PeakBookedFrom(ctx, a.ID(), kernel.DateOf(h.clock.Now()))
	if err != nil {
		return err
	}
	if err = a.ChangeTotalQuantity(cmd.TotalQuantity(), peak); err != nil {
		return err
	}

	if err = assets.Update(ctx, a); err != nil {
		return err
	}
	return uow.Commit(ctx)
}
