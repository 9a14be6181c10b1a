package order

import (
	"errors"
	"net/mail"
	"strings"

	"eventrent/internal/core/domain/model/kernel"
	"eventrent/internal/pkg/errs"
)

// Contact is the on-site person for the order.
type Contact struct {
	name  string
	email string
	phone string
}

// NewContact trims its inputs and validates them.
//
// Parameters:
//   - name: required
//   - email: required, a bare address such as "ops@example.com"
//   - phone: optional
//
// Returns a joined error naming every invalid field.
func NewContact(name, email, phone string) (Contact, error) {
	c := Contact{
		name:  strings.TrimSpace(name),
		email: strings.TrimSpace(email),
		phone: strings.TrimSpace(phone),
	}
	var nameErr, emailErr error
	if c.name == "" {
		nameErr = errs.NewValueIsRequiredError("contactName")
	}
	switch {
	case c.email == "":
		emailErr = errs.NewValueIsRequiredError("contactEmail")
	default:
		if addr, err := mail.ParseAddress(c.email); err != nil || addr.Address != c.email {
			emailErr = errs.NewValueIsInvalidErrorWithCause("contactEmail", errors.New("bad email format"))
		}
	}
	if err := errors.Join(nameErr, emailErr); err != nil {
		return Contact{}, err
	}
	return c, nil
}

// Name returns the contact name.
func (c Contact) Name() string {
	return c.name
}

// Email returns the contact address.
func (c Contact) Email() string {
	return c.email
}

// Phone may be empty.
func (c Contact) Phone() string {
	return c.phone
}

// Venue is where the event takes place. Its location drives tier lookup.
type Venue struct {
	name     string
	location kernel.Location
	address  string
}

// NewVenue requires a name and a valid location; the address is free text.
func NewVenue(name string, location kernel.Location, address string) (Venue, error) {
	v := Venue{
		name:     strings.TrimSpace(name),
		location: location,
		address:  strings.TrimSpace(address),
	}
	var nameErr error
	if v.name == "" {
		nameErr = errs.NewValueIsRequiredError("venueName")
	}
	if err := errors.Join(nameErr, location.Validate()); err != nil {
		return Venue{}, err
	}
	return v, nil
}

// Name returns the venue name.
func (v Venue) Name() string {
	return v.name
}

// Location returns the venue country and city.
func (v Venue) Location() kernel.Location {
	return v.location
}

// Address may be empty.
func (v Venue) Address() string {
	return v.address
}
