package commands

import (
	"context"

	"eventrent/internal/core/domain/services"
	"eventrent/internal/pkg/clock"
)

// ApproveQuoteCommandHandler confirms a quoted order and books its items in
// one transaction. If any item no longer fits, the whole transaction rolls
// back, the order stays QUOTED and the caller gets a *services.AvailabilityError.
type ApproveQuoteCommandHandler struct {
	uowFactory UoWFactory
	engine     services.AvailabilityEngine
	clock      clock.Clock
	notifier   Notifier
}

// NewApproveQuoteCommandHandler creates the client acceptance handler.
//
// Parameters:
//   - uowFactory: creates the unit of work for each call
//   - clk: supplies the timestamp of the history entry
//   - notifier: publishes the recorded notifications after commit
//   - engine: computes the blocked periods of the bookings
func NewApproveQuoteCommandHandler(
	uowFactory UoWFactory,
	engine services.AvailabilityEngine,
	clk clock.Clock,
	notifier Notifier,
) ApproveQuoteCommandHandler {
	return ApproveQuoteCommandHandler{
		uowFactory: uowFactory,
		engine:     engine,
		clock:      clk,
		notifier:   notifier,
	}
}

// Handle books every item and confirms the order in one transaction.
// Returns a services.AvailabilityError when units were taken since submission;
// the order then stays QUOTED and no booking is written.
func (h ApproveQuoteCommandHandler) Handle(ctx context.Context, cmd ApproveQuoteCommand) error {
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
	if err = o.ConfirmQuote(cmd.UserID(), h.clock.Now()); err != nil {
		return err
	}

	ledger := services.NewBookingLedger(h.engine, uow.AssetRepository(), uow.BookingRepository())
	if _, err = ledger.CreateBookingsForOrder(ctx, o); err != nil {
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

// DeclineQuoteCommandHandler moves a quoted order to DECLINED and releases
// whatever bookings it may hold.
type DeclineQuoteCommandHandler struct {
	uowFactory UoWFactory
	engine     services.AvailabilityEngine
	clock      clock.Clock
	notifier   Notifier
}

// NewDeclineQuoteCommandHandler creates the client rejection handler.
// The engine is only used to build the booking ledger.
func NewDeclineQuoteCommandHandler(
	uowFactory UoWFactory,
	engine services.AvailabilityEngine,
	clk clock.Clock,
	notifier Notifier,
) DeclineQuoteCommandHandler {
	return DeclineQuoteCommandHandler{
		uowFactory: uowFactory,
		engine:     engine,
		clock:      clk,
		notifier:   notifier,
	}
}

// Handle declines the quote, withdraws it and releases any bookings the order holds.
func (h DeclineQuoteCommandHandler) Handle(ctx context.Context, cmd DeclineQuoteCommand) error {
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
	if err = o.Decline(cmd.Reason(), cmd.UserID(), h.clock.Now()); err != nil {
		return err
	}

	ledger := services.NewBookingLedger(h.engine, uow.AssetRepository(), uow.BookingRepository())
	if _, err = ledger.ReleaseBookingsForOrder(ctx, o.ID()); err != nil {
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
