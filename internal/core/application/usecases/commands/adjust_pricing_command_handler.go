package commands

import (
	"context"

	"eventrent/internal/core/domain/model/order"
	"eventrent/internal/core/domain/services"
	"eventrent/internal/pkg/clock"
)

// AdjustPricingCommandHandler records a manual price and moves the order to
// PENDING_APPROVAL. The tier-matched price, when there is one, is kept next
// to the adjustment as the reference the PMG approver sees. It is looked up
// before the transaction that locks and changes the order.
type AdjustPricingCommandHandler struct {
	uowFactory UoWFactory
	pricing    services.PricingEngine
	clock      clock.Clock
	notifier   Notifier
}

// NewAdjustPricingCommandHandler creates the A2 adjustment handler.
//
// Parameters:
//   - uowFactory: creates the unit of work for each call
//   - clk: supplies the timestamp of the history entry
//   - notifier: publishes the recorded notifications after commit
//   - pricing: computes the standard price kept as reference
func NewAdjustPricingCommandHandler(
	uowFactory UoWFactory,
	pricing services.PricingEngine,
	clk clock.Clock,
	notifier Notifier,
) AdjustPricingCommandHandler {
	return AdjustPricingCommandHandler{
		uowFactory: uowFactory,
		pricing:    pricing,
		clock:      clk,
		notifier:   notifier,
	}
}

// Handle records a manual base price and sends the order to PENDING_APPROVAL.
// The standard price is computed before the transaction starts. The adjusting
// user is stored so that a different user has to approve the quote.
func (h AdjustPricingCommandHandler) Handle(ctx context.Context, cmd AdjustPricingCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	standard, _, err := readStandardPricing(ctx, h.uowFactory, h.pricing, cmd.OrderID())
	if err != nil {
		return err
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

	adjustment := order.Adjustment{
		AdjustedPrice: cmd.AdjustedPrice(),
		Reason:        cmd.Reason(),
	}
	if standard.TierFound {
		tierID := standard.Tier.ID()
		base := standard.Tier.BasePrice()
		adjustment.TierID = &tierID
		adjustment.BasePrice = &base
	}
	if err = o.AdjustPricing(adjustment, cmd.UserID(), h.clock.Now()); err != nil {
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
