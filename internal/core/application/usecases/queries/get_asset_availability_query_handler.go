package queries

import (
	"context"
	"database/sql"
	"errors"

	"eventrent/internal/core/domain/model/kernel"
	"eventrent/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAssetAvailabilityQueryHandler reads the booking ledger directly.
type GetAssetAvailabilityQueryHandler struct {
	db *gorm.DB
}

// NewGetAssetAvailabilityQueryHandler creates the handler over a plain connection.
func NewGetAssetAvailabilityQueryHandler(db *gorm.DB) GetAssetAvailabilityQueryHandler {
	return GetAssetAvailabilityQueryHandler{db: db}
}

// Handle sums the bookings whose blocked period shares a day with the query
// range. Available never drops below zero.
func (h GetAssetAvailabilityQueryHandler) Handle(
	ctx context.Context,
	query GetAssetAvailabilityQuery,
) (GetAssetAvailabilityQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetAssetAvailabilityQueryResponse{}, err
	}

	var total int
	err := h.db.WithContext(ctx).
		Raw(`SELECT total_quantity FROM assets WHERE id = ?`, query.AssetID().Bytes()).
		Row().
		Scan(&total)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetAssetAvailabilityQueryResponse{}, errs.NewObjectNotFoundError("asset", query.AssetID().String())
		}
		return GetAssetAvailabilityQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_id,
			quantity,
			blocked_from,
			blocked_until
		FROM bookings
		WHERE asset_id = ?
			AND blocked_from <= ?
			AND blocked_until >= ?
		ORDER BY blocked_from, id
	`, query.AssetID().Bytes(), query.Period().Until().Time(), query.Period().From().Time()).Rows()
	if err != nil {
		return GetAssetAvailabilityQueryResponse{}, err
	}
	defer rows.Close()

	response := GetAssetAvailabilityQueryResponse{
		AssetID:       query.AssetID(),
		TotalQuantity: total,
		Bookings:      make([]BookingResponse, 0),
	}
	for rows.Next() {
		row, scanErr := scanBooking(rows)
		if scanErr != nil {
			return GetAssetAvailabilityQueryResponse{}, scanErr
		}
		response.BookedQuantity += row.quantity
		response.Bookings = append(response.Bookings, row.response())
	}
	if err = rows.Err(); err != nil {
		return GetAssetAvailabilityQueryResponse{}, err
	}

	response.AvailableQuantity = max(0, response.TotalQuantity-response.BookedQuantity)
	return response, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(rows rowScanner) (bookingRow, error) {
	var (
		row         bookingRow
		id, orderID uuid.UUID
	)
	if err := rows.Scan(&id, &orderID, &row.quantity, &row.blockedFrom, &row.blockedUntil); err != nil {
		return bookingRow{}, err
	}

	var err error
	if row.id, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return bookingRow{}, err
	}
	if row.orderID, err = kernel.UUIDFromBytes(orderID[:]); err != nil {
		return bookingRow{}, err
	}
	return row, nil
}
