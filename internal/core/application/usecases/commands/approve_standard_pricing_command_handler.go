package commands

import (
	"context"

	"eventrent/internal/core/domain/model/kernel"
	"eventrent/internal/core/domain/model/order"
	"eventrent/internal/core/domain/services"
	"eventrent/internal/pkg/clock"
	"eventrent/internal/pkg/errs"
)

// ApproveStandardPricingCommandHandler prices an order from the tier table and
// the company margin and sends the quote: PRICING_REVIEW -> QUOTED,
// PENDING_QUOTE -> QUOTE_SENT.
//
// The order snapshot, tiers and margin are read outside the transaction that
// commits the quote. That transaction reloads the order under a row lock and
// re-checks its status, so a concurrent transition makes this fail with an
// InvalidTransitionError instead of overwriting it. An order no tier covers
// fails with an InvalidTransitionError caused by ErrNoMatchingTier.
//
// Example:
//
//	handler := NewApproveStandardPricingCommandHandler(factory, services.NewPricingEngine(), clock.NewSystem(), notifier)
//	cmd, err := NewApproveStandardPricingCommand(orderID, reviewerID)
//	if err != nil {
//	    return err
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return err // ErrNoMatchingTier: the order needs an A2 adjustment instead
//	}
type ApproveStandardPricingCommandHandler struct {
	uowFactory UoWFactory
	pricing    services.PricingEngine
	clock      clock.Clock
	notifier   Notifier
}

// NewApproveStandardPricingCommandHandler creates the A2 approval handler.
//
// Parameters:
//   - uowFactory: creates the unit of work for each call
//   - clk: supplies the timestamp of the history entry
//   - notifier: publishes the recorded notifications after commit
//   - pricing: matches the tier and computes the quote
func NewApproveStandardPricingCommandHandler(
	uowFactory UoWFactory,
	pricing services.PricingEngine,
	clk clock.Clock,
	notifier Notifier,
) ApproveStandardPricingCommandHandler {
	return ApproveStandardPricingCommandHandler{
		uowFactory: uowFactory,
		pricing:    pricing,
		clock:      clk,
		notifier:   notifier,
	}
}

// Handle prices the order outside the transaction, then reloads it under lock
// and moves it from PRICING_REVIEW to QUOTED with the standard quote attached.
// Returns an InvalidTransitionError caused by ErrNoMatchingTier when no tier
// covers the order.
func (h ApproveStandardPricingCommandHandler) Handle(ctx context.Context, cmd ApproveStandardPricingCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	standard, snapshot, err := readStandardPricing(ctx, h.uowFactory, h.pricing, cmd.OrderID())
	if err != nil {
		return err
	}
	if !standard.TierFound {
		return errs.NewInvalidTransitionErrorWithCause(
			"status", snapshot.Status().String(), order.Quoted.String(), ErrNoMatchingTier,
		)
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if err = o.ApproveStandardPricing(standard.Tier.ID(), standard.Quote, cmd.UserID(), h.clock.Now()); err != nil {
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

// readStandardPricing prices the current snapshot of the order through a unit
// of work with no open transaction.
func readStandardPricing(
	ctx context.Context,
	factory UoWFactory,
	engine services.PricingEngine,
	orderID kernel.UUID,
) (services.StandardPricing, *order.Order, error) {
	reader := factory.Create()
	snapshot, err := reader.OrderRepository().Get(ctx, orderID)
	if err != nil {
		return services.StandardPricing{}, nil, err
	}
	standard, err := standardPricingFor(ctx, reader, engine, snapshot)
	if err != nil {
		return services.StandardPricing{}, nil, err
	}
	return standard, snapshot, nil
}

// standardPricingFor looks up the tiers of the order's venue country and the
// ordering company's margin.
func standardPricingFor(
	ctx context.Context,
	uow UoW,
	engine services.PricingEngine,
	o *order.Order,
) (services.StandardPricing, error) {
	company, err := uow.CompanyRepository().Get(ctx, o.CompanyID())
	if err != nil {
		return services.StandardPricing{}, err
	}
	loc := o.Venue().Location()
	tiers, err := uow.PricingTierRepository().ListByCountry(ctx, loc.Country())
	if err != nil {
		return services.StandardPricing{}, err
	}
	return engine.Standard(tiers, loc, o.CalculatedVolume(), company.MarginPercent()), nil
}
