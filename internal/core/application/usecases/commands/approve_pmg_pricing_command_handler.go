package commands

import (
	"context"

	"eventrent/internal/pkg/clock"
)

// ApprovePmgPricingCommandHandler applies the margin to the A2 adjusted price
// and sends the quote: PENDING_APPROVAL -> QUOTED.
type ApprovePmgPricingCommandHandler struct {
	uowFactory UoWFactory
	clock      clock.Clock
	notifier   Notifier
}

// NewApprovePmgPricingCommandHandler creates the PMG approval handler.
//
// Parameters:
//   - uowFactory: creates the unit of work for each call
//   - clk: supplies the timestamp of the history entry
//   - notifier: publishes the recorded notifications after commit
func NewApprovePmgPricingCommandHandler(
	uowFactory UoWFactory,
	clk clock.Clock,
	notifier Notifier,
) ApprovePmgPricingCommandHandler {
	return ApprovePmgPricingCommandHandler{
		uowFactory: uowFactory,
		clock:      clk,
		notifier:   notifier,
	}
}

// Handle applies the company margin, or the command override, to the adjusted
// price and moves the order from PENDING_APPROVAL to QUOTED.
// Returns an InvalidTransitionError caused by order.ErrSameApprover when the
// approver is the user who adjusted the price.
func (h ApprovePmgPricingCommandHandler) Handle(ctx context.Context, cmd ApprovePmgPricingCommand) error {
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

	margin := cmd.MarginPercent()
	if margin == nil {
		company, companyErr := uow.CompanyRepository().Get(ctx, o.CompanyID())
		if companyErr != nil {
			return companyErr
		}
		companyMargin := company.MarginPercent()
		margin = &companyMargin
	}
	if err = o.ApprovePmgPricing(*margin, cmd.UserID(), h.clock.Now()); err != nil {
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
