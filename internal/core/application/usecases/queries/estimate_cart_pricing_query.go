package queries

import (
	"errors"
	"strings"

	"eventrent/internal/core/domain/model/kernel"
	"eventrent/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrEstimateCartPricingQueryIsNotConstructed = errors.New(
	"EstimateCartPricingQuery must be created via NewEstimateCartPricingQuery constructor",
)

// EstimateCartPricingQuery prices a cart before submission. The venue may be
// unknown yet; country and city are then left empty.
type EstimateCartPricingQuery struct {
	companyID kernel.UUID
	items     []RequestedItem
	location  *kernel.Location
	guard     guard.ConstructorGuard
}

// NewEstimateCartPricingQuery tolerates partial input: a blank country or city
// means "no venue", and items with a bad id or quantity are dropped.
func NewEstimateCartPricingQuery(
	companyID kernel.UUID,
	items []RequestedItem,
	country, city string,
) (EstimateCartPricingQuery, error) {
	if err := companyID.Validate(); err != nil {
		return EstimateCartPricingQuery{}, err
	}

	kept := make([]RequestedItem, 0, len(items))
	for _, item := range items {
		if item.AssetID.Validate() != nil || item.Quantity < 1 {
			continue
		}
		kept = append(kept, item)
	}

	var loc *kernel.Location
	if strings.TrimSpace(country) != "" && strings.TrimSpace(city) != "" {
		l, err := kernel.NewLocation(country, city)
		if err == nil {
			loc = &l
		}
	}

	return EstimateCartPricingQuery{
		companyID: companyID,
		items:     kept,
		location:  loc,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrEstimateCartPricingQueryIsNotConstructed if validation fails.
func (q EstimateCartPricingQuery) Validate() error {
	return q.guard.Validate(ErrEstimateCartPricingQueryIsNotConstructed)
}

// CompanyID returns the company whose catalogue and margin apply.
func (q EstimateCartPricingQuery) CompanyID() kernel.UUID {
	return q.companyID
}

// Items returns the lines that survived construction.
func (q EstimateCartPricingQuery) Items() []RequestedItem {
	return append([]RequestedItem(nil), q.items...)
}

// Location is nil when no venue was given.
func (q EstimateCartPricingQuery) Location() *kernel.Location {
	return q.location
}

// EstimateCartPricingQueryResponse always carries the cart totals. Estimate
// is nil when the venue is missing or no tier covers the volume.
type EstimateCartPricingQueryResponse struct {
	Volume    decimal.Decimal
	Weight    decimal.Decimal
	ItemCount int
	Estimate  *Estimate
}

// Estimate is the would-be quote of the cart, rounded to cents.
type Estimate struct {
	BasePrice     decimal.Decimal
	MarginPercent decimal.Decimal
	MarginAmount  decimal.Decimal
	Total         decimal.Decimal
}
