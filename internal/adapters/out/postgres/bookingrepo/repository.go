package bookingrepo

import (
	"context"

	"eventrent/internal/adapters/out/postgres/pgerr"
	"eventrent/internal/core/domain/model/booking"
	"eventrent/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// GormBookingRepository implements ports.BookingRepository using GORM.
// Bookings are insert-and-delete only; there is no update path.
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a repository over db.
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// Add inserts one booking. Bookings are never updated.
func (r *GormBookingRepository) Add(ctx context.Context, b *booking.Booking) error {
	if err := b.Validate(); err != nil {
		return err
	}

	dto := fromDomain(b)
	return pgerr.Map(r.db.WithContext(ctx).Create(&dto).Error)
}

// ListOverlapping uses the inclusive overlap rule
// blocked_from <= period.until AND blocked_until >= period.from.
func (r *GormBookingRepository) ListOverlapping(
	ctx context.Context,
	assetID kernel.UUID,
	period kernel.DateRange,
) ([]*booking.Booking, error) {
	if err := assetID.Validate(); err != nil {
		return nil, err
	}
	if err := period.Validate(); err != nil {
		return nil, err
	}

	return r.find(r.db.WithContext(ctx).
		Where("asset_id = ?", assetID.Bytes()).
		Where("blocked_from <= ? AND blocked_until >= ?", period.Until().Time(), period.From().Time()))
}

// ListEndingOnOrAfter returns the asset's bookings still blocking day or later,
// ordered by start.
func (r *GormBookingRepository) ListEndingOnOrAfter(
	ctx context.Context,
	assetID kernel.UUID,
	day kernel.Date,
) ([]*booking.Booking, error) {
	if err := assetID.Validate(); err != nil {
		return nil, err
	}

	return r.find(r.db.WithContext(ctx).
		Where("asset_id = ?", assetID.Bytes()).
		Where("blocked_until >= ?", day.Time()))
}

// ListByOrder returns every booking the order holds.
func (r *GormBookingRepository) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*booking.Booking, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	return r.find(r.db.WithContext(ctx).Where("order_id = ?", orderID.Bytes()))
}

// DeleteByOrder removes the order's bookings and returns how many were removed.
// Deleting twice is harmless and reports zero.
func (r *GormBookingRepository) DeleteByOrder(ctx context.Context, orderID kernel.UUID) (int64, error) {
	if err := orderID.Validate(); err != nil {
		return 0, err
	}

	result := r.db.WithContext(ctx).Where("order_id = ?", orderID.Bytes()).Delete(&BookingDTO{})
	if result.Error != nil {
		return 0, pgerr.Map(result.Error)
	}
	return result.RowsAffected, nil
}

func (r *GormBookingRepository) find(query *gorm.DB) ([]*booking.Booking, error) {
	var dtos []BookingDTO
	if err := query.Order("blocked_from, id").Find(&dtos).Error; err != nil {
		return nil, pgerr.Map(err)
	}

	bookings := make([]*booking.Booking, 0, len(dtos))
	for _, dto := range dtos {
		b, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, nil
}
