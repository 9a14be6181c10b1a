// Package bookingrepo persists the booking ledger. Blocked periods are stored
// as inclusive date columns; overlap reads use the (asset_id, blocked_from,
// blocked_until) index.
package bookingrepo

import (
	"time"

	"eventrent/internal/core/domain/model/booking"
	"eventrent/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// BookingDTO is one row of the bookings table.
type BookingDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	AssetID      uuid.UUID `gorm:"type:uuid;not null;index:idx_bookings_asset_period,priority:1"`
	OrderID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Quantity     int       `gorm:"type:int;not null;check:quantity > 0"`
	BlockedFrom  time.Time `gorm:"type:date;not null;index:idx_bookings_asset_period,priority:2"`
	BlockedUntil time.Time `gorm:"type:date;not null;index:idx_bookings_asset_period,priority:3"`
}

// TableName returns "bookings".
func (BookingDTO) TableName() string {
	return "bookings"
}

func fromDomain(b *booking.Booking) BookingDTO {
	return BookingDTO{
		ID:           b.ID().Bytes(),
		AssetID:      b.AssetID().Bytes(),
		OrderID:      b.OrderID().Bytes(),
		Quantity:     b.Quantity(),
		BlockedFrom:  b.BlockedFrom().Time(),
		BlockedUntil: b.BlockedUntil().Time(),
	}
}

func toDomain(dto BookingDTO) (*booking.Booking, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	assetID, err := kernel.UUIDFromBytes(dto.AssetID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	period, err := kernel.NewDateRange(kernel.DateOf(dto.BlockedFrom), kernel.DateOf(dto.BlockedUntil))
	if err != nil {
		return nil, err
	}

	return booking.RestoreBooking(id, assetID, orderID, dto.Quantity, period)
}
