package commands

import (
	"context"

	"eventrent/internal/core/domain/services"
	"eventrent/internal/pkg/clock"
)

// AdvanceOrderStatusCommandHandler performs fulfillment steps. Closing an
// order releases its bookings in the same transaction.
type AdvanceOrderStatusCommandHandler struct {
	uowFactory UoWFactory
	engine     services.AvailabilityEngine
	clock      clock.Clock
	notifier   Notifier
}

// NewAdvanceOrderStatusCommandHandler creates the fulfillment handler.
//
// Parameters:
//   - uowFactory: creates the unit of work for each call
//   - clk: supplies the timestamp of the history entry
//   - notifier: publishes the recorded notifications after commit
//   - engine: used by the booking ledger when the order closes
func NewAdvanceOrderStatusCommandHandler(
	uowFactory UoWFactory,
	engine services.AvailabilityEngine,
	clk clock.Clock,
	notifier Notifier,
) AdvanceOrderStatusCommandHandler {
	return AdvanceOrderStatusCommandHandler{
		uowFactory: uowFactory,
		engine:     engine,
		clock:      clk,
		notifier:   notifier,
	}
}

// Handle performs one fulfillment step. Moving to CLOSED releases the
// order's bookings in the same transaction.
func (h AdvanceOrderStatusCommandHandler) Handle(ctx context.Context, cmd AdvanceOrderStatusCommand) error {
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

	o, err := uow.OrderRepository().GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if err = o.Advance(cmd.To(), cmd.Notes(), cmd.UserID(), h.clock.Now()); err != nil {
		return err
	}

	if !o.Status().HoldsBookings() {
		ledger := services.NewBookingLedger(h.engine, uow.AssetRepository(), uow.BookingRepository())
		if _, err = ledger.ReleaseBookingsForOrder(ctx, o.ID()); err != nil {
			return err
		}
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.Publish(ctx, o)
	return nil
}

// UpdateFinancialStatusCommandHandler moves the financial machine through
// PENDING_INVOICE, INVOICED and PAID. The fulfillment status is untouched.
type UpdateFinancialStatusCommandHandler struct {
	uowFactory UoWFactory
	clock      clock.Clock
	notifier   Notifier
}

// NewUpdateFinancialStatusCommandHandler creates the invoicing handler.
//
// Parameters:
//   - uowFactory: creates the unit of work for each call
//   - clk: supplies the timestamp of the history entry
//   - notifier: publishes the recorded notifications after commit
func NewUpdateFinancialStatusCommandHandler(
	uowFactory UoWFactory,
	clk clock.Clock,
	notifier Notifier,
) UpdateFinancialStatusCommandHandler {
	return UpdateFinancialStatusCommandHandler{
		uowFactory: uowFactory,
		clock:      clk,
		notifier:   notifier,
	}
}

// Handle performs one invoicing step. Quote states are rejected here; they
// move only with the pricing and client decisions.
func (h UpdateFinancialStatusCommandHandler) Handle(ctx context.Context, cmd UpdateFinancialStatusCommand) error {
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

	o, err := uow.OrderRepository().GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if err = o.ChangeFinancialStatus(cmd.To(), cmd.Notes(), cmd.UserID(), h.clock.Now()); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.Publish(ctx, o)
	return nil
}
