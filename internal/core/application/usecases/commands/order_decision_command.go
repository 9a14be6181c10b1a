package commands

import (
	"errors"

	"eventrent/internal/core/domain/model/kernel"
	"eventrent/internal/pkg/guard"
)

var (
	ErrApproveQuoteCommandIsNotConstructed = errors.New(
		"ApproveQuoteCommand must be created via NewApproveQuoteCommand constructor",
	)
	ErrDeclineQuoteCommandIsNotConstructed = errors.New(
		"DeclineQuoteCommand must be created via NewDeclineQuoteCommand constructor",
	)
)

// ApproveQuoteCommand is the client accepting a quote.
type ApproveQuoteCommand struct {
	orderID kernel.UUID
	userID  kernel.UUID

	guard guard.ConstructorGuard
}

// NewApproveQuoteCommand creates the client acceptance of a quote.
// Returns an error if either id is invalid.
func NewApproveQuoteCommand(orderID, userID kernel.UUID) (ApproveQuoteCommand, error) {
	if err := errors.Join(orderID.Validate(), userID.Validate()); err != nil {
		return ApproveQuoteCommand{}, err
	}
	return ApproveQuoteCommand{
		orderID: orderID,
		userID:  userID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrApproveQuoteCommandIsNotConstructed if validation fails.
func (c ApproveQuoteCommand) Validate() error {
	return c.guard.Validate(ErrApproveQuoteCommandIsNotConstructed)
}

// OrderID returns the quoted order.
func (c ApproveQuoteCommand) OrderID() kernel.UUID {
	return c.orderID
}

// UserID returns the accepting client user.
func (c ApproveQuoteCommand) UserID() kernel.UUID {
	return c.userID
}

// DeclineQuoteCommand is the client rejecting a quote, with an optional reason.
type DeclineQuoteCommand struct {
	orderID kernel.UUID
	userID  kernel.UUID
	reason  string

	guard guard.ConstructorGuard
}

// NewDeclineQuoteCommand creates the client rejection of a quote. The reason
// may be empty.
func NewDeclineQuoteCommand(orderID, userID kernel.UUID, reason string) (DeclineQuoteCommand, error) {
	if err := errors.Join(orderID.Validate(), userID.Validate()); err != nil {
		return DeclineQuoteCommand{}, err
	}
	return DeclineQuoteCommand{
		orderID: orderID,
		userID:  userID,
		reason:  reason,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrDeclineQuoteCommandIsNotConstructed if validation fails.
func (c DeclineQuoteCommand) Validate() error {
	return c.guard.Validate(ErrDeclineQuoteCommandIsNotConstructed)
}

// OrderID returns the quoted order.
func (c DeclineQuoteCommand) OrderID() kernel.UUID {
	return c.orderID
}

// UserID returns the declining client user.
func (c DeclineQuoteCommand) UserID() kernel.UUID {
	return c.userID
}

// Reason is appended to the history note when not blank.
func (c DeclineQuoteCommand) Reason() string {
	return c.reason
}
