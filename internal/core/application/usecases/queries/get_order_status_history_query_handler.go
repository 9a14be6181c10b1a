package queries

import (
	"context"

	"eventrent/internal/core/domain/model/kernel"
	"eventrent/internal/core/domain/model/order"
	"eventrent/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderStatusHistoryQueryHandler reads order_status_history with raw SQL.
type GetOrderStatusHistoryQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderStatusHistoryQueryHandler creates the handler over a plain connection.
func NewGetOrderStatusHistoryQueryHandler(db *gorm.DB) GetOrderStatusHistoryQueryHandler {
	return GetOrderStatusHistoryQueryHandler{db: db}
}

// Handle fails with ObjectNotFound for an unknown order; a known order always
// has at least its submission entries.
func (h GetOrderStatusHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetOrderStatusHistoryQuery,
) ([]GetOrderStatusHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var exists bool
	if err := h.db.WithContext(ctx).
		Raw(`SELECT EXISTS (SELECT 1 FROM orders WHERE id = ?)`, query.OrderID().Bytes()).
		Row().
		Scan(&exists); err != nil {
		return nil, err
	}
	if !exists {
		return nil, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status,
			notes,
			updated_by,
			"timestamp"
		FROM order_status_history
		WHERE order_id = ?
		ORDER BY position
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	history := make([]GetOrderStatusHistoryQueryResponse, 0)
	for rows.Next() {
		var (
			entry         GetOrderStatusHistoryQueryResponse
			id, updatedBy uuid.UUID
			status        int
		)
		if err = rows.Scan(&id, &status, &entry.Notes, &updatedBy, &entry.Timestamp); err != nil {
			return nil, err
		}
		if entry.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if entry.UpdatedBy, err = kernel.UUIDFromBytes(updatedBy[:]); err != nil {
			return nil, err
		}
		entry.Status = order.Status(status)
		history = append(history, entry)
	}

	return history, rows.Err()
}
