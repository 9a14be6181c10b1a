// Package booking holds the ledger entry that claims units of an asset for an
// order over a blocked period. Bookings are the only input to availability math.
package booking

import (
	"errors"

	"eventrent/internal/core/domain/model/kernel"
	"eventrent/internal/pkg/errs"
	"eventrent/internal/pkg/guard"
)

// ErrBookingIsNotConstructed is returned when validating a zero-value Booking.
var ErrBookingIsNotConstructed = errors.New("Booking must be created via NewBooking or RestoreBooking")

// Booking is immutable once created; it is deleted as a whole when released.
type Booking struct {
	id       kernel.UUID
	assetID  kernel.UUID
	orderID  kernel.UUID
	quantity int
	period   kernel.DateRange
	guard    guard.ConstructorGuard
}

// NewBooking claims quantity units of an asset for an order.
//
// Parameters:
//   - assetID, orderID: the asset claimed and the order claiming it
//   - quantity: units claimed, at least 1
//   - period: the blocked period, buffers already applied
//
// Returns the booking with a fresh id, or a joined validation error.
func NewBooking(assetID, orderID kernel.UUID, quantity int, period kernel.DateRange) (*Booking, error) {
	return RestoreBooking(kernel.NewUUID(), assetID, orderID, quantity, period)
}

// RestoreBooking rebuilds a booking from storage with the same checks as NewBooking.
func RestoreBooking(id, assetID, orderID kernel.UUID, quantity int, period kernel.DateRange) (*Booking, error) {
	var qtyErr error
	if quantity < 1 {
		qtyErr = errs.NewValueIsOutOfRangeError("quantity", quantity, 1, "unbounded")
	}
	if err := errors.Join(
		id.Validate(),
		assetID.Validate(),
		orderID.Validate(),
		qtyErr,
		period.Validate(),
	); err != nil {
		return nil, err
	}
	return &Booking{
		id:       id,
		assetID:  assetID,
		orderID:  orderID,
		quantity: quantity,
		period:   period,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate reports whether b was built through a constructor.
func (b *Booking) Validate() error {
	if b == nil {
		return ErrBookingIsNotConstructed
	}
	return b.guard.Validate(ErrBookingIsNotConstructed)
}

// ID returns the booking identifier.
func (b *Booking) ID() kernel.UUID {
	return b.id
}

// AssetID returns the booked asset.
func (b *Booking) AssetID() kernel.UUID {
	return b.assetID
}

// OrderID returns the order holding the booking.
func (b *Booking) OrderID() kernel.UUID {
	return b.orderID
}

// Quantity is the number of units claimed.
func (b *Booking) Quantity() int {
	return b.quantity
}

// Period is the blocked period, buffers included.
func (b *Booking) Period() kernel.DateRange {
	return b.period
}

// BlockedFrom is the first blocked day.
func (b *Booking) BlockedFrom() kernel.Date {
	return b.period.From()
}

// BlockedUntil is the last blocked day, inclusive.
func (b *Booking) BlockedUntil() kernel.Date {
	return b.period.Until()
}

// Overlaps reports whether the booking claims any day of r.
func (b *Booking) Overlaps(r kernel.DateRange) bool {
	return b.period.Overlaps(r)
}
