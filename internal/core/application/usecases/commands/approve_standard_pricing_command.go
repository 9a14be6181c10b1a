package commands

import (
	"errors"

	"eventrent/internal/core/domain/model/kernel"
	"eventrent/internal/pkg/guard"
)

var ErrApproveStandardPricingCommandIsNotConstructed = errors.New(
	"ApproveStandardPricingCommand must be created via NewApproveStandardPricingCommand constructor",
)

// ApproveStandardPricingCommand is an A2 reviewer accepting the tier price of
// an order in PRICING_REVIEW.
type ApproveStandardPricingCommand struct {
	orderID kernel.UUID
	userID  kernel.UUID

	guard guard.ConstructorGuard
}

// NewApproveStandardPricingCommand creates the A2 approval of the automatic price.
// Returns an error if either id is invalid.
func NewApproveStandardPricingCommand(orderID, userID kernel.UUID) (ApproveStandardPricingCommand, error) {
	if err := errors.Join(orderID.Validate(), userID.Validate()); err != nil {
		return ApproveStandardPricingCommand{}, err
	}
	return ApproveStandardPricingCommand{
		orderID: orderID,
		userID:  userID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrApproveStandardPricingCommandIsNotConstructed if validation fails.
func (c ApproveStandardPricingCommand) Validate() error {
	return c.guard.Validate(ErrApproveStandardPricingCommandIsNotConstructed)
}

// OrderID returns the order under review.
func (c ApproveStandardPricingCommand) OrderID() kernel.UUID {
	return c.orderID
}

// UserID returns the approving A2 user.
func (c ApproveStandardPricingCommand) UserID() kernel.UUID {
	return c.userID
}
