package commands

import (
	"context"
	"fmt"

	"eventrent/internal/core/domain/model/asset"
	"eventrent/internal/core/domain/model/kernel"
	"eventrent/internal/core/domain/model/order"
	"eventrent/internal/core/domain/services"
	"eventrent/internal/pkg/clock"
	"eventrent/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// SubmitOrderFromCartResult summarizes the created order.
type SubmitOrderFromCartResult struct {
	OrderID          kernel.UUID
	Status           order.Status
	CalculatedVolume decimal.Decimal
	ItemCount        int
}

// SubmitOrderFromCartCommandHandler validates a cart against the company's
// catalogue and current availability, then stores it as an order in
// PRICING_REVIEW. Nothing is booked yet: units are claimed only when the
// client approves the quote.
//
// The order's volume is matched against the tier table of the venue's
// country. A match records the tier and its base price on the order for the
// A2 review; no match leaves both empty and is not an error.
//
// Errors:
//   - ValueIsOutOfRange wrapping ErrEventStartInPast for events starting before today
//   - ObjectNotFound for assets that do not exist or belong to another company
//   - ValueIsInvalid wrapping ErrAssetIsDeleted for soft-deleted assets
//   - *services.AvailabilityError listing every short item
type SubmitOrderFromCartCommandHandler struct {
	uowFactory UoWFactory
	engine     services.AvailabilityEngine
	pricing    services.PricingEngine
	clock      clock.Clock
	notifier   Notifier
}

// NewSubmitOrderFromCartCommandHandler creates the submission handler.
//
// Parameters:
//   - uowFactory: opens the transaction spanning assets, bookings, tiers and orders
//   - engine: checks the cart against the booking ledger
//   - pricing: matches the order volume to a tier
//   - clk: source of "today" for the event start check and of history timestamps
//   - notifier: publishes the order's notifications after commit
//
// Returns:
//   - SubmitOrderFromCartCommandHandler: ready to handle submissions
func NewSubmitOrderFromCartCommandHandler(
	uowFactory UoWFactory,
	engine services.AvailabilityEngine,
	pricing services.PricingEngine,
	clk clock.Clock,
	notifier Notifier,
) SubmitOrderFromCartCommandHandler {
	return SubmitOrderFromCartCommandHandler{
		uowFactory: uowFactory,
		engine:     engine,
		pricing:    pricing,
		clock:      clk,
		notifier:   notifier,
	}
}

// Handle snapshots the cart's assets and checks their availability over each
// blocked period. The order is then stored in PRICING_REVIEW with the best
// tier match attached.
// Returns a services.AvailabilityError listing every shortfall when any item
// cannot be served; nothing is written in that case.
func (h SubmitOrderFromCartCommandHandler) Handle(
	ctx context.Context,
	cmd SubmitOrderFromCartCommand,
) (SubmitOrderFromCartResult, error) {
	if err := cmd.Validate(); err != nil {
		return SubmitOrderFromCartResult{}, err
	}

	now := h.clock.Now()
	today := kernel.DateOf(now)
	if cmd.Event().From().Before(today) {
		return SubmitOrderFromCartResult{}, errs.NewValueIsOutOfRangeErrorWithCause(
			"eventStartDate", cmd.Event().From().String(), today.String(), "unbounded", ErrEventStartInPast,
		)
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return SubmitOrderFromCartResult{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	assets, err := h.loadCatalogue(ctx, uow, cmd)
	if err != nil {
		return SubmitOrderFromCartResult{}, err
	}

	requests := make([]services.ItemRequest, 0, len(cmd.Items()))
	items := make([]*order.Item, 0, len(cmd.Items()))
	for _, line := range cmd.Items() {
		requests = append(requests, services.ItemRequest{AssetID: line.AssetID, Quantity: line.Quantity})
		item, itemErr := order.NewItem(assets[line.AssetID], line.Quantity)
		if itemErr != nil {
			return SubmitOrderFromCartResult{}, itemErr
		}
		items = append(items, item)
	}

	ledger := services.NewBookingLedger(h.engine, uow.AssetRepository(), uow.BookingRepository())
	check, err := ledger.CheckLoaded(ctx, assets, requests, cmd.Event())
	if err != nil {
		return SubmitOrderFromCartResult{}, err
	}
	if !check.AllAvailable {
		return SubmitOrderFromCartResult{}, services.NewAvailabilityError(check.UnavailableItems)
	}

	o, err := order.NewOrder(
		kernel.NewUUID(),
		cmd.CompanyID(),
		cmd.UserID(),
		cmd.Contact(),
		cmd.Venue(),
		cmd.Event(),
		cmd.SpecialInstructions(),
		items,
		now,
	)
	if err != nil {
		return SubmitOrderFromCartResult{}, err
	}
	if err = h.matchTier(ctx, uow, o); err != nil {
		return SubmitOrderFromCartResult{}, err
	}
	if err = o.Submit(cmd.UserID(), now); err != nil {
		return SubmitOrderFromCartResult{}, err
	}

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return SubmitOrderFromCartResult{}, err
	}
	if err = uow.Commit(ctx); err != nil {
		return SubmitOrderFromCartResult{}, err
	}

	h.notifier.Publish(ctx, o)

	return SubmitOrderFromCartResult{
		OrderID:          o.ID(),
		Status:           o.Status(),
		CalculatedVolume: o.CalculatedVolume(),
		ItemCount:        o.ItemCount(),
	}, nil
}

// matchTier attaches the tier covering the order's volume at its venue, if any.
func (h SubmitOrderFromCartCommandHandler) matchTier(ctx context.Context, uow UoW, o *order.Order) error {
	loc := o.Venue().Location()
	tiers, err := uow.PricingTierRepository().ListByCountry(ctx, loc.Country())
	if err != nil {
		return err
	}
	tier, ok := h.pricing.MatchTier(tiers, loc, o.CalculatedVolume())
	if !ok {
		return nil
	}
	return o.AttachTierMatch(tier.ID(), tier.BasePrice())
}

// loadCatalogue returns the cart's assets keyed by id, rejecting unknown,
// foreign and soft-deleted ones.
func (h SubmitOrderFromCartCommandHandler) loadCatalogue(
	ctx context.Context,
	uow UoW,
	cmd SubmitOrderFromCartCommand,
) (map[kernel.UUID]*asset.Asset, error) {
	ids := make([]kernel.UUID, 0, len(cmd.Items()))
	for _, line := range cmd.Items() {
		ids = append(ids, line.AssetID)
	}
	found, err := uow.AssetRepository().GetMany(ctx, ids)
	if err != nil {
		return nil, err
	}

	assets := make(map[kernel.UUID]*asset.Asset, len(found))
	for _, a := range found {
		assets[a.ID()] = a
	}
	for _, id := range ids {
		a, ok := assets[id]
		if !ok || !a.BelongsTo(cmd.CompanyID()) {
			return nil, errs.NewObjectNotFoundError("asset", id.String())
		}
		if a.IsDeleted() {
			return nil, errs.NewValueIsInvalidErrorWithCause("asset", fmt.Errorf("%w: %s", ErrAssetIsDeleted, a.Name()))
		}
	}
	return assets, nil
}
