package http

import (
	"eventrent/internal/core/domain/services"

	"github.com/shopspring/decimal"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Details []Shortfall `json:"details,omitempty"`
}

// Shortfall explains why an item cannot be booked.
type Shortfall struct {
	AssetID           string  `json:"assetId"`
	AssetName         string  `json:"assetName"`
	Requested         int     `json:"requested"`
	Available         int     `json:"available"`
	BlockedFrom       string  `json:"blockedFrom"`
	BlockedUntil      string  `json:"blockedUntil"`
	NextAvailableDate *string `json:"nextAvailableDate,omitempty"`
}

func shortfallsFrom(in []services.Shortfall) []Shortfall {
	out := make([]Shortfall, 0, len(in))
	for _, s := range in {
		item := Shortfall{
			AssetID:      s.AssetID.String(),
			AssetName:    s.AssetName,
			Requested:    s.Requested,
			Available:    s.Available,
			BlockedFrom:  s.BlockedPeriod.From().String(),
			BlockedUntil: s.BlockedPeriod.Until().String(),
		}
		if s.NextAvailableDate != nil {
			next := s.NextAvailableDate.String()
			item.NextAvailableDate = &next
		}
		out = append(out, item)
	}
	return out
}

// CartItem is one requested line.
type CartItem struct {
	AssetID  string `json:"assetId"`
	Quantity int    `json:"quantity"`
}

// Contact is the on-site contact of a submission.
type Contact struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Venue is the event location of a submission.
type Venue struct {
	Name    string `json:"name"`
	Country string `json:"country"`
	City    string `json:"city"`
	Address string `json:"address"`
}

// SubmitOrderRequest is the body of POST /orders. Dates use YYYY-MM-DD.
type SubmitOrderRequest struct {
	CompanyID           string     `json:"companyId"`
	Items               []CartItem `json:"items"`
	EventStartDate      string     `json:"eventStartDate"`
	EventEndDate        string     `json:"eventEndDate"`
	Contact             Contact    `json:"contact"`
	Venue               Venue      `json:"venue"`
	SpecialInstructions string     `json:"specialInstructions"`
}

// SubmitOrderResponse is returned with 201 Created.
type SubmitOrderResponse struct {
	OrderID          string          `json:"orderId"`
	Status           string          `json:"status"`
	CalculatedVolume decimal.Decimal `json:"calculatedVolume"`
	ItemCount        int             `json:"itemCount"`
}

// AdjustPricingRequest is the body of POST /orders/:id/pricing/adjust.
type AdjustPricingRequest struct {
	AdjustedPrice decimal.Decimal `json:"adjustedPrice"`
	Reason        string          `json:"reason"`
}

// ApprovePmgPricingRequest is the body of POST /orders/:id/pricing/approve-pmg.
// Omit the margin to apply the company margin.
type ApprovePmgPricingRequest struct {
	PmgMarginPercent *decimal.Decimal `json:"pmgMarginPercent"`
}

// DeclineQuoteRequest is the body of POST /orders/:id/quote/decline.
type DeclineQuoteRequest struct {
	Reason string `json:"reason"`
}

// AdvanceStatusRequest is the body of POST /orders/:id/status.
type AdvanceStatusRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

// UpdateFinancialStatusRequest is the body of POST /orders/:id/financial-status.
type UpdateFinancialStatusRequest struct {
	FinancialStatus string `json:"financialStatus"`
	Notes           string `json:"notes"`
}

// StandardPricingResponse previews the automatic price of an order.
type StandardPricingResponse struct {
	OrderID          string           `json:"orderId"`
	Volume           decimal.Decimal  `json:"volume"`
	TierFound        bool             `json:"tierFound"`
	PricingTierID    *string          `json:"pricingTierId"`
	A2BasePrice      *decimal.Decimal `json:"a2BasePrice"`
	PmgMarginPercent *decimal.Decimal `json:"pmgMarginPercent"`
	PmgMarginAmount  *decimal.Decimal `json:"pmgMarginAmount"`
	FinalTotalPrice  *decimal.Decimal `json:"finalTotalPrice"`
}

// HistoryEntry is one line of GET /orders/:id/history.
type HistoryEntry struct {
	ID        string `json:"id"`
	Status    string `json:"status"`
	Notes     string `json:"notes"`
	UpdatedBy string `json:"updatedBy"`
	Timestamp string `json:"timestamp"`
}

// StaleQuote is one line of GET /orders/stale-quotes.
type StaleQuote struct {
	OrderID         string           `json:"orderId"`
	CompanyID       string           `json:"companyId"`
	ContactEmail    string           `json:"contactEmail"`
	QuotedAt        string           `json:"quotedAt"`
	FinalTotalPrice *decimal.Decimal `json:"finalTotalPrice"`
}

// Booking is one booking overlapping the requested range.
type Booking struct {
	ID           string `json:"id"`
	OrderID      string `json:"orderId"`
	Quantity     int    `json:"quantity"`
	BlockedFrom  string `json:"blockedFrom"`
	BlockedUntil string `json:"blockedUntil"`
}

// AssetAvailabilityResponse is returned by GET /assets/:id/availability.
type AssetAvailabilityResponse struct {
	AssetID           string    `json:"assetId"`
	TotalQuantity     int       `json:"totalQuantity"`
	BookedQuantity    int       `json:"bookedQuantity"`
	AvailableQuantity int       `json:"availableQuantity"`
	Bookings          []Booking `json:"bookings"`
}

// CheckAvailabilityRequest is the body of POST /assets/availability.
type CheckAvailabilityRequest struct {
	Items          []CartItem `json:"items"`
	EventStartDate string     `json:"eventStartDate"`
	EventEndDate   string     `json:"eventEndDate"`
}

// CheckAvailabilityResponse lists the items that cannot be served.
type CheckAvailabilityResponse struct {
	AllAvailable     bool        `json:"allAvailable"`
	UnavailableItems []Shortfall `json:"unavailableItems"`
}

// ChangeAssetQuantityRequest is the body of PUT /assets/:id/quantity.
type ChangeAssetQuantityRequest struct {
	TotalQuantity int `json:"totalQuantity"`
}

// CreatePricingTierRequest is the body of POST /pricing-tiers. Use "*" as city
// for a country-wide tier.
type CreatePricingTierRequest struct {
	Country   string          `json:"country"`
	City      string          `json:"city"`
	VolumeMin decimal.Decimal `json:"volumeMin"`
	VolumeMax decimal.Decimal `json:"volumeMax"`
	BasePrice decimal.Decimal `json:"basePrice"`
}

// UpdatePricingTierRequest is the body of PUT /pricing-tiers/:id.
type UpdatePricingTierRequest struct {
	VolumeMin decimal.Decimal `json:"volumeMin"`
	VolumeMax decimal.Decimal `json:"volumeMax"`
	BasePrice decimal.Decimal `json:"basePrice"`
	IsActive  bool            `json:"isActive"`
}

// CreatedResponse carries the id of a created resource.
type CreatedResponse struct {
	ID string `json:"id"`
}

// EstimateCartRequest is the body of POST /cart/estimate. Country and city may be blank.
type EstimateCartRequest struct {
	CompanyID string     `json:"companyId"`
	Items     []CartItem `json:"items"`
	Country   string     `json:"country"`
	City      string     `json:"city"`
}

// CartEstimate is the would-be quote of a cart.
type CartEstimate struct {
	BasePrice     decimal.Decimal `json:"basePrice"`
	MarginPercent decimal.Decimal `json:"marginPercent"`
	MarginAmount  decimal.Decimal `json:"marginAmount"`
	Total         decimal.Decimal `json:"total"`
}

// EstimateCartResponse always carries totals; estimate is null without a match.
type EstimateCartResponse struct {
	Volume    decimal.Decimal `json:"volume"`
	Weight    decimal.Decimal `json:"weight"`
	ItemCount int             `json:"itemCount"`
	Estimate  *CartEstimate   `json:"estimate"`
}
