package commands

import (
	"errors"

	"eventrent/internal/core/domain/model/kernel"
	"eventrent/internal/pkg/errs"
	"eventrent/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrApprovePmgPricingCommandIsNotConstructed = errors.New(
	"ApprovePmgPricingCommand must be created via NewApprovePmgPricingCommand constructor",
)

// ApprovePmgPricingCommand is the PMG approver releasing an adjusted price.
// A nil margin means the ordering company's default margin.
type ApprovePmgPricingCommand struct {
	orderID       kernel.UUID
	userID        kernel.UUID
	marginPercent *decimal.Decimal

	guard guard.ConstructorGuard
}

// NewApprovePmgPricingCommand creates the PMG approval of an adjusted price.
//
// Parameters:
//   - orderID: the order in PENDING_APPROVAL
//   - userID: the approver, who must not be the user that adjusted the price
//   - marginPercent: optional override in [0, 100]; nil applies the company margin
func NewApprovePmgPricingCommand(
	orderID, userID kernel.UUID,
	marginPercent *decimal.Decimal,
) (ApprovePmgPricingCommand, error) {
	var marginErr error
	if marginPercent != nil && (marginPercent.IsNegative() || marginPercent.GreaterThan(decimal.NewFromInt(100))) {
		marginErr = errs.NewValueIsOutOfRangeError("pmgMarginPercent", *marginPercent, 0, 100)
	}
	if err := errors.Join(orderID.Validate(), userID.Validate(), marginErr); err != nil {
		return ApprovePmgPricingCommand{}, err
	}
	return ApprovePmgPricingCommand{
		orderID:       orderID,
		userID:        userID,
		marginPercent: marginPercent,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrApprovePmgPricingCommandIsNotConstructed if validation fails.
func (c ApprovePmgPricingCommand) Validate() error {
	return c.guard.Validate(ErrApprovePmgPricingCommandIsNotConstructed)
}

// OrderID returns the order awaiting approval.
func (c ApprovePmgPricingCommand) OrderID() kernel.UUID {
	return c.orderID
}

// UserID returns the approving PMG user.
func (c ApprovePmgPricingCommand) UserID() kernel.UUID {
	return c.userID
}

// MarginPercent is the override margin, nil when the company margin applies.
func (c ApprovePmgPricingCommand) MarginPercent() *decimal.Decimal {
	return c.marginPercent
}
