package queries

import (
	"errors"

	"eventrent/internal/core/domain/model/kernel"
	"eventrent/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrCalculateStandardPricingQueryIsNotConstructed = errors.New(
	"CalculateStandardPricingQuery must be created via NewCalculateStandardPricingQuery constructor",
)

// CalculateStandardPricingQuery previews the tier-matched price of an order
// for the reviewer. Nothing is stored.
type CalculateStandardPricingQuery struct {
	orderID kernel.UUID
	guard   guard.ConstructorGuard
}

// NewCalculateStandardPricingQuery creates a preview query for one order.
func NewCalculateStandardPricingQuery(orderID kernel.UUID) (CalculateStandardPricingQuery, error) {
	if err := orderID.Validate(); err != nil {
		return CalculateStandardPricingQuery{}, err
	}
	return CalculateStandardPricingQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrCalculateStandardPricingQueryIsNotConstructed if validation fails.
func (q CalculateStandardPricingQuery) Validate() error {
	return q.guard.Validate(ErrCalculateStandardPricingQueryIsNotConstructed)
}

// OrderID returns the order to price.
func (q CalculateStandardPricingQuery) OrderID() kernel.UUID {
	return q.orderID
}

// CalculateStandardPricingQueryResponse leaves every price nil when no tier
// matches. That is a normal outcome: the order needs an adjusted price.
type CalculateStandardPricingQueryResponse struct {
	OrderID          kernel.UUID
	Volume           decimal.Decimal
	TierFound        bool
	PricingTierID    *kernel.UUID
	A2BasePrice      *decimal.Decimal
	PmgMarginPercent *decimal.Decimal
	PmgMarginAmount  *decimal.Decimal
	FinalTotalPrice  *decimal.Decimal
}
