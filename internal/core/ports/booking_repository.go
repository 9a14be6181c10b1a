package ports

import (
	"context"

	"eventrent/internal/core/domain/model/booking"
	"eventrent/internal/core/domain/model/kernel"
)

// BookingRepository is the booking ledger store.
type BookingRepository interface {
	Add(ctx context.Context, b *booking.Booking) error

	// ListOverlapping returns the asset's bookings whose blocked period shares
	// at least one day with period.
	ListOverlapping(ctx context.Context, assetID kernel.UUID, period kernel.DateRange) ([]*booking.Booking, error)

	// ListEndingOnOrAfter returns the asset's bookings still blocking on or after day.
	ListEndingOnOrAfter(ctx context.Context, assetID kernel.UUID, day kernel.Date) ([]*booking.Booking, error)

	ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*booking.Booking, error)

	// DeleteByOrder removes every booking of the order and reports how many
	// rows went away. Zero is not an error.
	DeleteByOrder(ctx context.Context, orderID kernel.UUID) (int64, error)
}
