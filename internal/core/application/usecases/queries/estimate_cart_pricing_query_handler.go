package queries

import (
	"context"

	"eventrent/internal/core/domain/model/asset"
	"eventrent/internal/core/domain/model/kernel"
	"eventrent/internal/core/domain/services"
	"eventrent/internal/core/ports"

	"github.com/shopspring/decimal"
)

// EstimateCartPricingQueryHandler powers the live price shown in the cart.
// It never fails because of missing data, only on storage errors.
type EstimateCartPricingQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
	pricing    services.PricingEngine
}

// NewEstimateCartPricingQueryHandler creates the estimate handler.
//
// Parameters:
//   - uowFactory: read access to assets, companies and tiers
//   - pricing: matches the tier and applies the margin
func NewEstimateCartPricingQueryHandler(
	uowFactory ports.UnitOfWorkFactory,
	pricing services.PricingEngine,
) EstimateCartPricingQueryHandler {
	return EstimateCartPricingQueryHandler{
		uowFactory: uowFactory,
		pricing:    pricing,
	}
}

// Handle sums live asset measures over the cart. Assets that are unknown,
// deleted or owned by another company are skipped.
func (h EstimateCartPricingQueryHandler) Handle(
	ctx context.Context,
	query EstimateCartPricingQuery,
) (EstimateCartPricingQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return EstimateCartPricingQueryResponse{}, err
	}

	uow := h.uowFactory.Create()
	items := query.Items()
	ids := make([]kernel.UUID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.AssetID)
	}
	found, err := uow.AssetRepository().GetMany(ctx, ids)
	if err != nil {
		return EstimateCartPricingQueryResponse{}, err
	}
	catalogue := make(map[kernel.UUID]*asset.Asset, len(found))
	for _, a := range found {
		if a.IsDeleted() || !a.BelongsTo(query.CompanyID()) {
			continue
		}
		catalogue[a.ID()] = a
	}

	response := EstimateCartPricingQueryResponse{Volume: decimal.Zero, Weight: decimal.Zero}
	for _, item := range items {
		a, ok := catalogue[item.AssetID]
		if !ok {
			continue
		}
		qty := decimal.NewFromInt(int64(item.Quantity))
		response.Volume = response.Volume.Add(a.Volume().Mul(qty))
		response.Weight = response.Weight.Add(a.Weight().Mul(qty))
		response.ItemCount++
	}

	loc := query.Location()
	if loc == nil || response.ItemCount == 0 {
		return response, nil
	}

	company, err := uow.CompanyRepository().Get(ctx, query.CompanyID())
	if err != nil {
		return EstimateCartPricingQueryResponse{}, err
	}
	tiers, err := uow.PricingTierRepository().ListByCountry(ctx, loc.Country())
	if err != nil {
		return EstimateCartPricingQueryResponse{}, err
	}

	if quote := h.pricing.Estimate(tiers, loc, response.Volume, company.MarginPercent()); quote != nil {
		response.Estimate = &Estimate{
			BasePrice:     quote.BasePrice,
			MarginPercent: quote.MarginPercent,
			MarginAmount:  quote.MarginAmount,
			Total:         quote.FinalTotal,
		}
	}
	return response, nil
}
