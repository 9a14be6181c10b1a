package commands

import (
	"context"

	"eventrent/internal/core/domain/model/kernel"
	"eventrent/internal/core/domain/model/pricing"
)

// CreatePricingTierCommandHandler stores a new active tier after checking it
// does not claim volume already covered by an active tier of the same location.
// The country's tier lock is held from the check to the commit, so two
// concurrent writers cannot both pass the check with overlapping ranges.
type CreatePricingTierCommandHandler struct {
	uowFactory PricingUoWFactory
}

// NewCreatePricingTierCommandHandler creates the tier creation handler.
func NewCreatePricingTierCommandHandler(uowFactory PricingUoWFactory) CreatePricingTierCommandHandler {
	return CreatePricingTierCommandHandler{uowFactory: uowFactory}
}

// Handle stores a new active tier and returns its id.
// The country lock is taken before the active tiers are listed, so two writers
// for one country cannot both pass the overlap check. Returns a validation
// error caused by pricing.ErrTierRangeOverlap when the range collides.
func (h CreatePricingTierCommandHandler) Handle(ctx context.Context, cmd CreatePricingTierCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	tier, err := pricing.NewTier(kernel.NewUUID(), cmd.Location(), cmd.VolumeMin(), cmd.VolumeMax(), cmd.BasePrice())
	if err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.PricingTierRepository()
	if err = repo.LockCountry(ctx, tier.Location().Country()); err != nil {
		return kernel.UUID{}, err
	}
	others, err := repo.ListByCountry(ctx, tier.Location().Country())
	if err != nil {
		return kernel.UUID{}, err
	}
	if err = tier.EnsureNoOverlap(others); err != nil {
		return kernel.UUID{}, err
	}
	if err = repo.Add(ctx, tier); err != nil {
		return kernel.UUID{}, err
	}
	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}
	return tier.ID(), nil
}

// UpdatePricingTierCommandHandler edits a tier. Deactivating never conflicts;
// an active tier is checked against its location's other active tiers under
// the country's tier lock. The tier is read again once the lock is held.
type UpdatePricingTierCommandHandler struct {
	uowFactory PricingUoWFactory
}

// NewUpdatePricingTierCommandHandler creates the tier update handler.
func NewUpdatePricingTierCommandHandler(uowFactory PricingUoWFactory) UpdatePricingTierCommandHandler {
	return UpdatePricingTierCommandHandler{uowFactory: uowFactory}
}

// Handle replaces the range, price and active flag of a tier under the same
// country lock as creation. Deactivating never fails the overlap check.
func (h UpdatePricingTierCommandHandler) Handle(ctx context.Context, cmd UpdatePricingTierCommand) error {
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

	repo := uow.PricingTierRepository()
	current, err := repo.Get(ctx, cmd.TierID())
	if err != nil {
		return err
	}
	if err = repo.LockCountry(ctx, current.Location().Country()); err != nil {
		return err
	}
	tier, err := repo.Get(ctx, cmd.TierID())
	if err != nil {
		return err
	}
	if err = tier.Update(cmd.VolumeMin(), cmd.VolumeMax(), cmd.BasePrice(), cmd.Active()); err != nil {
		return err
	}

	others, err := repo.ListByCountry(ctx, tier.Location().Country())
	if err != nil {
		return err
	}
	if err = tier.EnsureNoOverlap(others); err != nil {
		return err
	}
	if err = repo.Update(ctx, tier); err != nil {
		return err
	}
	return uow.Commit(ctx)
}
