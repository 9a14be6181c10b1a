package queries

import (
	"errors"
	"time"

	"eventrent/internal/core/domain/model/kernel"
	"eventrent/internal/pkg/errs"
	"eventrent/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetStaleQuotesQueryIsNotConstructed = errors.New(
	"GetStaleQuotesQuery must be created via NewGetStaleQuotesQuery constructor",
)

// GetStaleQuotesQuery lists quotes the client has left unanswered for longer
// than olderThan.
type GetStaleQuotesQuery struct {
	olderThan time.Duration
	guard     guard.ConstructorGuard
}

// NewGetStaleQuotesQuery requires a positive olderThan.
func NewGetStaleQuotesQuery(olderThan time.Duration) (GetStaleQuotesQuery, error) {
	if olderThan <= 0 {
		return GetStaleQuotesQuery{}, errs.NewValueIsOutOfRangeError("olderThan", olderThan, "0 exclusive", "unbounded")
	}
	return GetStaleQuotesQuery{
		olderThan: olderThan,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetStaleQuotesQueryIsNotConstructed if validation fails.
func (q GetStaleQuotesQuery) Validate() error {
	return q.guard.Validate(ErrGetStaleQuotesQueryIsNotConstructed)
}

// OlderThan is the minimum age of a quote to be listed.
func (q GetStaleQuotesQuery) OlderThan() time.Duration {
	return q.olderThan
}

// GetStaleQuotesQueryResponse is one unanswered quote.
type GetStaleQuotesQueryResponse struct {
	OrderID         kernel.UUID
	CompanyID       kernel.UUID
	ContactEmail    string
	QuotedAt        time.Time
	FinalTotalPrice *decimal.Decimal
}
