package queries

import (
	"context"

	"eventrent/internal/core/domain/model/kernel"
	"eventrent/internal/core/domain/model/order"
	"eventrent/internal/pkg/clock"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetStaleQuotesQueryHandler feeds the reminder job and the back-office list.
type GetStaleQuotesQueryHandler struct {
	db    *gorm.DB
	clock clock.Clock
}

// NewGetStaleQuotesQueryHandler creates the handler; clk fixes "now" for the cutoff.
func NewGetStaleQuotesQueryHandler(db *gorm.DB, clk clock.Clock) GetStaleQuotesQueryHandler {
	return GetStaleQuotesQueryHandler{db: db, clock: clk}
}

// Handle returns orders still QUOTED whose quote went out before now - olderThan,
// oldest first.
func (h GetStaleQuotesQueryHandler) Handle(
	ctx context.Context,
	query GetStaleQuotesQuery,
) ([]GetStaleQuotesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	cutoff := h.clock.Now().Add(-query.OlderThan())
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			company_id,
			contact_email,
			quoted_at,
			final_total_price
		FROM orders
		WHERE status = ?
			AND quoted_at < ?
		ORDER BY quoted_at, id
	`, int(order.Quoted), cutoff).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	quotes := make([]GetStaleQuotesQueryResponse, 0)
	for rows.Next() {
		var (
			quote         GetStaleQuotesQueryResponse
			id, companyID uuid.UUID
			total         decimal.NullDecimal
		)
		if err = rows.Scan(&id, &companyID, &quote.ContactEmail, &quote.QuotedAt, &total); err != nil {
			return nil, err
		}
		if quote.OrderID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if quote.CompanyID, err = kernel.UUIDFromBytes(companyID[:]); err != nil {
			return nil, err
		}
		if total.Valid {
			quote.FinalTotalPrice = &total.Decimal
		}
		quotes = append(quotes, quote)
	}

	return quotes, rows.Err()
}
