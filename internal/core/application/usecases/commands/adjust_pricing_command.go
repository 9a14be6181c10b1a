package commands

import (
	"errors"
	"strings"

	"eventrent/internal/core/domain/model/kernel"
	"eventrent/internal/pkg/errs"
	"eventrent/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrAdjustPricingCommandIsNotConstructed = errors.New(
	"AdjustPricingCommand must be created via NewAdjustPricingCommand constructor",
)

// AdjustPricingCommand is an A2 reviewer overriding the tier price. The
// reason must be at least order.MinAdjustmentReasonLength characters; the
// aggregate enforces that.
type AdjustPricingCommand struct {
	orderID       kernel.UUID
	userID        kernel.UUID
	adjustedPrice decimal.Decimal
	reason        string

	guard guard.ConstructorGuard
}

// NewAdjustPricingCommand creates an A2 manual price adjustment.
// The price must be positive and the reason non-blank; the minimum reason
// length is enforced by the order.
func NewAdjustPricingCommand(
	orderID, userID kernel.UUID,
	adjustedPrice decimal.Decimal,
	reason string,
) (AdjustPricingCommand, error) {
	var priceErr, reasonErr error
	if !adjustedPrice.IsPositive() {
		priceErr = errs.NewValueIsOutOfRangeError("adjustedPrice", adjustedPrice, "0 exclusive", "unbounded")
	}
	if strings.TrimSpace(reason) == "" {
		reasonErr = errs.NewValueIsRequiredError("adjustmentReason")
	}
	if err := errors.Join(orderID.Validate(), userID.Validate(), priceErr, reasonErr); err != nil {
		return AdjustPricingCommand{}, err
	}
	return AdjustPricingCommand{
		orderID:       orderID,
		userID:        userID,
		adjustedPrice: adjustedPrice,
		reason:        reason,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrAdjustPricingCommandIsNotConstructed if validation fails.
func (c AdjustPricingCommand) Validate() error {
	return c.guard.Validate(ErrAdjustPricingCommandIsNotConstructed)
}

// OrderID returns the order under review.
func (c AdjustPricingCommand) OrderID() kernel.UUID {
	return c.orderID
}

// UserID returns the adjusting A2 user.
func (c AdjustPricingCommand) UserID() kernel.UUID {
	return c.userID
}

// AdjustedPrice replaces the tier base price.
func (c AdjustPricingCommand) AdjustedPrice() decimal.Decimal {
	return c.adjustedPrice
}

// Reason returns the justification recorded with the price.
func (c AdjustPricingCommand) Reason() string {
	return c.reason
}
