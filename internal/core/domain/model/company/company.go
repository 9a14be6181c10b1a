// Package company holds the client company, the owner of assets and orders and
// the source of the platform margin applied to standard pricing.
package company

import (
	"errors"
	"strings"

	"eventrent/internal/core/domain/model/kernel"
	"eventrent/internal/pkg/errs"
	"eventrent/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ErrCompanyIsNotConstructed is returned when validating a zero-value Company.
var ErrCompanyIsNotConstructed = errors.New("Company must be created via NewCompany")

var maxMarginPercent = decimal.NewFromInt(100)

// Company is a client organisation. Its margin is added on top of the tier base price.
type Company struct {
	id            kernel.UUID
	name          string
	marginPercent decimal.Decimal
	guard         guard.ConstructorGuard
}

// NewCompany accepts a margin in [0, 100] percent.
func NewCompany(id kernel.UUID, name string, marginPercent decimal.Decimal) (*Company, error) {
	name = strings.TrimSpace(name)
	var nameErr, marginErr error
	if name == "" {
		nameErr = errs.NewValueIsRequiredError("name")
	}
	if marginPercent.IsNegative() || marginPercent.GreaterThan(maxMarginPercent) {
		marginErr = errs.NewValueIsOutOfRangeError("pmgMarginPercent", marginPercent, 0, 100)
	}
	if err := errors.Join(id.Validate(), nameErr, marginErr); err != nil {
		return nil, err
	}
	return &Company{
		id:            id,
		name:          name,
		marginPercent: marginPercent,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate reports whether c was built by NewCompany.
func (c *Company) Validate() error {
	if c == nil {
		return ErrCompanyIsNotConstructed
	}
	return c.guard.Validate(ErrCompanyIsNotConstructed)
}

// ID returns the company identifier.
func (c *Company) ID() kernel.UUID {
	return c.id
}

// Name returns the trimmed company name.
func (c *Company) Name() string {
	return c.name
}

// MarginPercent is the platform margin in percent, between 0 and 100.
func (c *Company) MarginPercent() decimal.Decimal {
	return c.marginPercent
}
