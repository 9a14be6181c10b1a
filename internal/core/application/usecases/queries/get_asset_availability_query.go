package queries

import (
	"errors"
	"time"

	"eventrent/internal/core/domain/model/kernel"
	"eventrent/internal/pkg/guard"
)

var ErrGetAssetAvailabilityQueryIsNotConstructed = errors.New(
	"GetAssetAvailabilityQuery must be created via NewGetAssetAvailabilityQuery constructor",
)

// GetAssetAvailabilityQuery reports how many units of an asset are claimed
// over a date range. The range is taken as given, without buffers: it answers
// "what is booked on these days", not "can I rent for this event".
//
// Example:
//
//	period, _ := kernel.NewDateRange(kernel.NewDate(2025, time.June, 5), kernel.NewDate(2025, time.June, 15))
//	query, err := NewGetAssetAvailabilityQuery(assetID, period)
//	if err != nil {
//	    return err
//	}
//	availability, err := handler.Handle(ctx, query)
type GetAssetAvailabilityQuery struct {
	assetID kernel.UUID
	period  kernel.DateRange
	guard   guard.ConstructorGuard
}

// NewGetAssetAvailabilityQuery returns an error if the id or the range is invalid.
func NewGetAssetAvailabilityQuery(assetID kernel.UUID, period kernel.DateRange) (GetAssetAvailabilityQuery, error) {
	if err := errors.Join(assetID.Validate(), period.Validate()); err != nil {
		return GetAssetAvailabilityQuery{}, err
	}
	return GetAssetAvailabilityQuery{
		assetID: assetID,
		period:  period,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetAssetAvailabilityQueryIsNotConstructed if validation fails.
func (q GetAssetAvailabilityQuery) Validate() error {
	return q.guard.Validate(ErrGetAssetAvailabilityQueryIsNotConstructed)
}

// AssetID returns the asset to inspect.
func (q GetAssetAvailabilityQuery) AssetID() kernel.UUID {
	return q.assetID
}

// Period returns the days to inspect, inclusive.
func (q GetAssetAvailabilityQuery) Period() kernel.DateRange {
	return q.period
}

// GetAssetAvailabilityQueryResponse holds the totals and the overlapping bookings.
type GetAssetAvailabilityQueryResponse struct {
	AssetID           kernel.UUID
	TotalQuantity     int
	BookedQuantity    int
	AvailableQuantity int
	Bookings          []BookingResponse
}

// BookingResponse is one booking row, buffers included in its dates.
type BookingResponse struct {
	ID           kernel.UUID
	OrderID      kernel.UUID
	Quantity     int
	BlockedFrom  kernel.Date
	BlockedUntil kernel.Date
}

// bookingRow is shared by the queries that scan bookings.
type bookingRow struct {
	id, orderID  kernel.UUID
	quantity     int
	blockedFrom  time.Time
	blockedUntil time.Time
}

func (r bookingRow) response() BookingResponse {
	return BookingResponse{
		ID:           r.id,
		OrderID:      r.orderID,
		Quantity:     r.quantity,
		BlockedFrom:  kernel.DateOf(r.blockedFrom),
		BlockedUntil: kernel.DateOf(r.blockedUntil),
	}
}
