package services

import (
	"bytes"
	"context"
	"errors"
	"sort"

	"eventrent/internal/core/domain/model/asset"
	"eventrent/internal/core/domain/model/booking"
	"eventrent/internal/core/domain/model/kernel"
	"eventrent/internal/core/domain/model/order"
	"eventrent/internal/core/ports"
	"eventrent/internal/pkg/errs"
)

// BookingLedger reads and writes bookings through repositories bound to the
// caller's unit of work. It must be created per transaction.
//
// Writers lock the asset row first (GetForUpdate), then re-read the
// overlapping bookings and insert. Under that lock a concurrent writer for the
// same asset waits, so check and insert act as one step.
type BookingLedger struct {
	engine   AvailabilityEngine
	assets   ports.AssetRepository
	bookings ports.BookingRepository
}

// NewBookingLedger binds the engine to the repositories of one unit of work.
//
// Parameters:
//   - engine: the date and quantity arithmetic
//   - assets: used to lock asset rows before writing
//   - bookings: the ledger rows
func NewBookingLedger(
	engine AvailabilityEngine,
	assets ports.AssetRepository,
	bookings ports.BookingRepository,
) *BookingLedger {
	return &BookingLedger{
		engine:   engine,
		assets:   assets,
		bookings: bookings,
	}
}

// AssetAvailability reports the asset's booking picture over period as given,
// without buffers.
func (l *BookingLedger) AssetAvailability(
	ctx context.Context,
	assetID kernel.UUID,
	period kernel.DateRange,
) (AssetAvailability, error) {
	a, err := l.assets.Get(ctx, assetID)
	if err != nil {
		return AssetAvailability{}, err
	}
	overlapping, err := l.bookings.ListOverlapping(ctx, assetID, period)
	if err != nil {
		return AssetAvailability{}, err
	}
	return l.engine.Availability(a, overlapping, period), nil
}

// CheckItems runs the engine's check for a whole request. Every asset is
// checked against its own blocked period.
func (l *BookingLedger) CheckItems(
	ctx context.Context,
	items []ItemRequest,
	event kernel.DateRange,
) (CheckResult, error) {
	assets, err := l.loadAssets(ctx, items)
	if err != nil {
		return CheckResult{}, err
	}
	return l.CheckLoaded(ctx, assets, items, event)
}

// CheckLoaded is CheckItems for callers that already hold the assets.
func (l *BookingLedger) CheckLoaded(
	ctx context.Context,
	assets map[kernel.UUID]*asset.Asset,
	items []ItemRequest,
	event kernel.DateRange,
) (CheckResult, error) {
	bookingsByAsset := make(map[kernel.UUID][]*booking.Booking, len(assets))
	for id, a := range assets {
		period, err := l.engine.BlockedPeriod(event, a.RefurbDays())
		if err != nil {
			return CheckResult{}, err
		}
		overlapping, listErr := l.bookings.ListOverlapping(ctx, id, period)
		if listErr != nil {
			return CheckResult{}, listErr
		}
		bookingsByAsset[id] = overlapping
	}

	return l.engine.CheckItems(items, assets, bookingsByAsset, event)
}

// CreateBooking claims quantity units of the asset for the order over the
// blocked period of event. It fails with an *AvailabilityError when the units
// are no longer free.
func (l *BookingLedger) CreateBooking(
	ctx context.Context,
	assetID, orderID kernel.UUID,
	quantity int,
	event kernel.DateRange,
	refurbDays int,
) (*booking.Booking, error) {
	a, err := l.assets.GetForUpdate(ctx, assetID)
	if err != nil {
		return nil, err
	}
	shortfall, period, err := l.recheck(ctx, a, quantity, event, refurbDays)
	if err != nil {
		return nil, err
	}
	if shortfall != nil {
		return nil, NewAvailabilityError([]Shortfall{*shortfall})
	}

	b, err := booking.NewBooking(assetID, orderID, quantity, period)
	if err != nil {
		return nil, err
	}
	if err = l.bookings.Add(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// CreateBookingsForOrder books every item of the order, using the refurb
// estimate captured in the item snapshot. Asset rows are locked in id order so
// two orders sharing assets cannot deadlock. All shortfalls are collected; on
// any shortfall the caller must roll back the transaction.
func (l *BookingLedger) CreateBookingsForOrder(ctx context.Context, o *order.Order) ([]*booking.Booking, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	items := o.Items()
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].AssetID().Bytes(), items[j].AssetID().Bytes()
		return bytes.Compare(a[:], b[:]) < 0
	})

	created := make([]*booking.Booking, 0, len(items))
	shortfalls := make([]Shortfall, 0)
	for _, item := range items {
		b, err := l.CreateBooking(ctx, item.AssetID(), o.ID(), item.Quantity(), o.Event(), item.RefurbDays())
		var availErr *AvailabilityError
		switch {
		case err == nil:
			created = append(created, b)
		case errors.As(err, &availErr):
			shortfalls = append(shortfalls, availErr.Shortfalls...)
		default:
			return nil, err
		}
	}
	if len(shortfalls) > 0 {
		return nil, NewAvailabilityError(shortfalls)
	}
	return created, nil
}

// ReleaseBookingsForOrder deletes the order's bookings. Releasing an order
// with no bookings succeeds with zero.
func (l *BookingLedger) ReleaseBookingsForOrder(ctx context.Context, orderID kernel.UUID) (int64, error) {
	if err := orderID.Validate(); err != nil {
		return 0, err
	}
	return l.bookings.DeleteByOrder(ctx, orderID)
}

// PeakBookedFrom is the highest number of the asset's units claimed on any day
// from day onwards.
func (l *BookingLedger) PeakBookedFrom(ctx context.Context, assetID kernel.UUID, day kernel.Date) (int, error) {
	active, err := l.bookings.ListEndingOnOrAfter(ctx, assetID, day)
	if err != nil {
		return 0, err
	}
	return l.engine.PeakConcurrentQuantity(active, day), nil
}

func (l *BookingLedger) recheck(
	ctx context.Context,
	a *asset.Asset,
	quantity int,
	event kernel.DateRange,
	refurbDays int,
) (*Shortfall, kernel.DateRange, error) {
	if quantity < 1 {
		return nil, kernel.DateRange{}, errs.NewValueIsOutOfRangeError("quantity", quantity, 1, "unbounded")
	}
	period, err := l.engine.BlockedPeriod(event, refurbDays)
	if err != nil {
		return nil, kernel.DateRange{}, err
	}
	overlapping, err := l.bookings.ListOverlapping(ctx, a.ID(), period)
	if err != nil {
		return nil, kernel.DateRange{}, err
	}
	return l.engine.shortfall(a, quantity, overlapping, period), period, nil
}

func (l *BookingLedger) loadAssets(ctx context.Context, items []ItemRequest) (map[kernel.UUID]*asset.Asset, error) {
	ids := make([]kernel.UUID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.AssetID)
	}
	found, err := l.assets.GetMany(ctx, ids)
	if err != nil {
		return nil, err
	}
	assets := make(map[kernel.UUID]*asset.Asset, len(found))
	for _, a := range found {
		assets[a.ID()] = a
	}
	return assets, nil
}
