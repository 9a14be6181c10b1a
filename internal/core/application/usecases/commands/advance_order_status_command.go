package commands

import (
	"errors"

	"eventrent/internal/core/domain/model/kernel"
	"eventrent/internal/core/domain/model/order"
	"eventrent/internal/pkg/guard"
)

var (
	ErrAdvanceOrderStatusCommandIsNotConstructed = errors.New(
		"AdvanceOrderStatusCommand must be created via NewAdvanceOrderStatusCommand constructor",
	)
	ErrUpdateFinancialStatusCommandIsNotConstructed = errors.New(
		"UpdateFinancialStatusCommand must be created via NewUpdateFinancialStatusCommand constructor",
	)
)

// AdvanceOrderStatusCommand moves an order one fulfillment step forward,
// from IN_PREPARATION through CLOSED.
type AdvanceOrderStatusCommand struct {
	orderID kernel.UUID
	userID  kernel.UUID
	to      order.Status
	notes   string

	guard guard.ConstructorGuard
}

// NewAdvanceOrderStatusCommand creates a command for one fulfillment step.
// Whether the step is legal is decided by the order, not here; the command only
// checks that the ids and the target status are well formed.
func NewAdvanceOrderStatusCommand(
	orderID, userID kernel.UUID,
	to order.Status,
	notes string,
) (AdvanceOrderStatusCommand, error) {
	if err := errors.Join(orderID.Validate(), userID.Validate(), to.Validate()); err != nil {
		return AdvanceOrderStatusCommand{}, err
	}
	return AdvanceOrderStatusCommand{
		orderID: orderID,
		userID:  userID,
		to:      to,
		notes:   notes,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrAdvanceOrderStatusCommandIsNotConstructed if validation fails.
func (c AdvanceOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceOrderStatusCommandIsNotConstructed)
}

// OrderID returns the order to advance.
func (c AdvanceOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// UserID returns the user performing the step.
func (c AdvanceOrderStatusCommand) UserID() kernel.UUID {
	return c.userID
}

// To returns the target fulfillment status.
func (c AdvanceOrderStatusCommand) To() order.Status {
	return c.to
}

// Notes is the optional history note.
func (c AdvanceOrderStatusCommand) Notes() string {
	return c.notes
}

// UpdateFinancialStatusCommand records an invoicing step.
type UpdateFinancialStatusCommand struct {
	orderID kernel.UUID
	userID  kernel.UUID
	to      order.FinancialStatus
	notes   string

	guard guard.ConstructorGuard
}

// NewUpdateFinancialStatusCommand creates a command for one invoicing step.
// Returns an error if an id or the target status is invalid.
func NewUpdateFinancialStatusCommand(
	orderID, userID kernel.UUID,
	to order.FinancialStatus,
	notes string,
) (UpdateFinancialStatusCommand, error) {
	if err := errors.Join(orderID.Validate(), userID.Validate(), to.Validate()); err != nil {
		return UpdateFinancialStatusCommand{}, err
	}
	return UpdateFinancialStatusCommand{
		orderID: orderID,
		userID:  userID,
		to:      to,
		notes:   notes,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrUpdateFinancialStatusCommandIsNotConstructed if validation fails.
func (c UpdateFinancialStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateFinancialStatusCommandIsNotConstructed)
}

// OrderID returns the order to update.
func (c UpdateFinancialStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// UserID returns the user recording the step.
func (c UpdateFinancialStatusCommand) UserID() kernel.UUID {
	return c.userID
}

// To returns the target financial status.
func (c UpdateFinancialStatusCommand) To() order.FinancialStatus {
	return c.to
}

// Notes is the optional history note.
func (c UpdateFinancialStatusCommand) Notes() string {
	return c.notes
}
