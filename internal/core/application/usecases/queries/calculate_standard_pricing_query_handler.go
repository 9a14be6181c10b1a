package queries

import (
	"context"

	"eventrent/internal/core/domain/services"
	"eventrent/internal/core/ports"
)

// CalculateStandardPricingQueryHandler prices an order the same way the A2
// approval does, without changing it.
//
// Example:
//
//	handler := NewCalculateStandardPricingQueryHandler(uowFactory, services.NewPricingEngine())
//	query, _ := NewCalculateStandardPricingQuery(orderID)
//	preview, err := handler.Handle(ctx, query)
//	if err == nil && !preview.TierFound {
//	    // the reviewer has to adjust the price
//	}
type CalculateStandardPricingQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
	pricing    services.PricingEngine
}

// NewCalculateStandardPricingQueryHandler creates the preview handler.
//
// Parameters:
//   - uowFactory: read access to orders, companies and tiers; never begun
//   - pricing: the engine shared with the approval handler
func NewCalculateStandardPricingQueryHandler(
	uowFactory ports.UnitOfWorkFactory,
	pricing services.PricingEngine,
) CalculateStandardPricingQueryHandler {
	return CalculateStandardPricingQueryHandler{
		uowFactory: uowFactory,
		pricing:    pricing,
	}
}

// Handle returns ObjectNotFound for an unknown order or company. A missing tier
// is reported through TierFound, not as an error.
func (h CalculateStandardPricingQueryHandler) Handle(
	ctx context.Context,
	query CalculateStandardPricingQuery,
) (CalculateStandardPricingQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return CalculateStandardPricingQueryResponse{}, err
	}

	uow := h.uowFactory.Create()
	o, err := uow.OrderRepository().Get(ctx, query.OrderID())
	if err != nil {
		return CalculateStandardPricingQueryResponse{}, err
	}
	company, err := uow.CompanyRepository().Get(ctx, o.CompanyID())
	if err != nil {
		return CalculateStandardPricingQueryResponse{}, err
	}
	loc := o.Venue().Location()
	tiers, err := uow.PricingTierRepository().ListByCountry(ctx, loc.Country())
	if err != nil {
		return CalculateStandardPricingQueryResponse{}, err
	}

	standard := h.pricing.Standard(tiers, loc, o.CalculatedVolume(), company.MarginPercent())
	response := CalculateStandardPricingQueryResponse{
		OrderID:   o.ID(),
		Volume:    o.CalculatedVolume(),
		TierFound: standard.TierFound,
	}
	if !standard.TierFound {
		return response, nil
	}

	tierID := standard.Tier.ID()
	quote := standard.Quote
	response.PricingTierID = &tierID
	response.A2BasePrice = &quote.BasePrice
	response.PmgMarginPercent = &quote.MarginPercent
	response.PmgMarginAmount = &quote.MarginAmount
	response.FinalTotalPrice = &quote.FinalTotal
	return response, nil
}
