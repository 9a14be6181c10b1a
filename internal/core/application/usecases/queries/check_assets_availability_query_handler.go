package queries

import (
	"context"

	"eventrent/internal/core/domain/services"
	"eventrent/internal/core/ports"
)

// CheckAssetsAvailabilityQueryHandler runs the availability engine over the
// current ledger. It reads without locks; the result can age before the
// caller acts on it, and bookings are re-checked under lock when created.
type CheckAssetsAvailabilityQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
	engine     services.AvailabilityEngine
}

// NewCheckAssetsAvailabilityQueryHandler creates the handler. The engine
// supplies the buffers used for each blocked period.
func NewCheckAssetsAvailabilityQueryHandler(
	uowFactory ports.UnitOfWorkFactory,
	engine services.AvailabilityEngine,
) CheckAssetsAvailabilityQueryHandler {
	return CheckAssetsAvailabilityQueryHandler{
		uowFactory: uowFactory,
		engine:     engine,
	}
}

// Handle returns ObjectNotFound when an asset does not exist.
func (h CheckAssetsAvailabilityQueryHandler) Handle(
	ctx context.Context,
	query CheckAssetsAvailabilityQuery,
) (CheckAssetsAvailabilityQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return CheckAssetsAvailabilityQueryResponse{}, err
	}

	uow := h.uowFactory.Create()
	ledger := services.NewBookingLedger(h.engine, uow.AssetRepository(), uow.BookingRepository())

	items := make([]services.ItemRequest, 0, len(query.Items()))
	for _, item := range query.Items() {
		items = append(items, services.ItemRequest{AssetID: item.AssetID, Quantity: item.Quantity})
	}

	result, err := ledger.CheckItems(ctx, items, query.Event())
	if err != nil {
		return CheckAssetsAvailabilityQueryResponse{}, err
	}

	response := CheckAssetsAvailabilityQueryResponse{
		AllAvailable:     result.AllAvailable,
		UnavailableItems: make([]UnavailableItem, 0, len(result.UnavailableItems)),
	}
	for _, s := range result.UnavailableItems {
		response.UnavailableItems = append(response.UnavailableItems, UnavailableItem{
			AssetID:           s.AssetID,
			AssetName:         s.AssetName,
			Requested:         s.Requested,
			Available:         s.Available,
			BlockedFrom:       s.BlockedPeriod.From(),
			BlockedUntil:      s.BlockedPeriod.Until(),
			NextAvailableDate: s.NextAvailableDate,
		})
	}
	return response, nil
}
