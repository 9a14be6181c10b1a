package commands

import (
	"errors"

	"eventrent/internal/core/domain/model/kernel"
	"eventrent/internal/core/domain/model/order"
	"eventrent/internal/pkg/errs"
	"eventrent/internal/pkg/guard"
)

var ErrSubmitOrderFromCartCommandIsNotConstructed = errors.New(
	"SubmitOrderFromCartCommand must be created via NewSubmitOrderFromCartCommand constructor",
)

// CartItem is one line of a client's cart.
type CartItem struct {
	AssetID  kernel.UUID
	Quantity int
}

// SubmitOrderFromCartCommand turns a client's cart into an order awaiting
// pricing review.
//
// Example:
//
//	event, _ := kernel.NewDateRange(kernel.NewDate(2025, 6, 10), kernel.NewDate(2025, 6, 12))
//	cmd, err := NewSubmitOrderFromCartCommand(companyID, userID,
//	    []CartItem{{AssetID: chairID, Quantity: 40}}, event, contact, venue, "")
//	if err != nil {
//	    return err
//	}
//	result, err := handler.Handle(ctx, cmd)
type SubmitOrderFromCartCommand struct {
	companyID           kernel.UUID
	userID              kernel.UUID
	items               []CartItem
	event               kernel.DateRange
	contact             order.Contact
	venue               order.Venue
	specialInstructions string

	guard guard.ConstructorGuard
}

// NewSubmitOrderFromCartCommand creates a command that turns a cart into an order.
//
// Parameters:
//   - companyID: the client company placing the order
//   - userID: the submitting user
//   - items: at least one line, each with a valid asset id and quantity >= 1
//   - event: the event dates; the handler checks the start against today
//   - contact, venue: built with order.NewContact and order.NewVenue
//   - specialInstructions: optional free text
//
// Returns a joined error naming every invalid field.
func NewSubmitOrderFromCartCommand(
	companyID, userID kernel.UUID,
	items []CartItem,
	event kernel.DateRange,
	contact order.Contact,
	venue order.Venue,
	specialInstructions string,
) (SubmitOrderFromCartCommand, error) {
	var itemsErr, contactErr error
	if len(items) == 0 {
		itemsErr = errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if err := item.AssetID.Validate(); err != nil {
			itemsErr = errors.Join(itemsErr, err)
		}
		if item.Quantity < 1 {
			itemsErr = errors.Join(itemsErr, errs.NewValueIsOutOfRangeError("quantity", item.Quantity, 1, "unbounded"))
		}
	}
	if contact.Email() == "" {
		contactErr = errs.NewValueIsRequiredError("contact")
	}
	if err := errors.Join(
		companyID.Validate(),
		userID.Validate(),
		itemsErr,
		event.Validate(),
		contactErr,
		venue.Location().Validate(),
	); err != nil {
		return SubmitOrderFromCartCommand{}, err
	}

	return SubmitOrderFromCartCommand{
		companyID:           companyID,
		userID:              userID,
		items:               append([]CartItem(nil), items...),
		event:               event,
		contact:             contact,
		venue:               venue,
		specialInstructions: specialInstructions,
		guard:               guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrSubmitOrderFromCartCommandIsNotConstructed if validation fails.
func (c SubmitOrderFromCartCommand) Validate() error {
	return c.guard.Validate(ErrSubmitOrderFromCartCommandIsNotConstructed)
}

// CompanyID returns the ordering company.
func (c SubmitOrderFromCartCommand) CompanyID() kernel.UUID {
	return c.companyID
}

// UserID returns the submitting user.
func (c SubmitOrderFromCartCommand) UserID() kernel.UUID {
	return c.userID
}

// Items returns a copy of the cart lines.
func (c SubmitOrderFromCartCommand) Items() []CartItem {
	return append([]CartItem(nil), c.items...)
}

// Event returns the event dates.
func (c SubmitOrderFromCartCommand) Event() kernel.DateRange {
	return c.event
}

// Contact returns the on-site contact.
func (c SubmitOrderFromCartCommand) Contact() order.Contact {
	return c.contact
}

// Venue returns the event venue.
func (c SubmitOrderFromCartCommand) Venue() order.Venue {
	return c.venue
}

// SpecialInstructions returns the optional client notes.
func (c SubmitOrderFromCartCommand) SpecialInstructions() string {
	return c.specialInstructions
}
