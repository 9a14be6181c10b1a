// Package http exposes the rental core over a JSON API served by echo.
// Authentication happens upstream; the gateway passes the acting user in the
// X-User-ID header.
package http

import (
	"context"
	"net/http"
	"time"

	"eventrent/internal/core/application/usecases/commands"
	"eventrent/internal/core/application/usecases/queries"
	"eventrent/internal/core/domain/model/kernel"
	"eventrent/internal/core/domain/model/order"
	"eventrent/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const userHeader = "X-User-ID"

// Handler runs an operation that returns only an error.
type Handler[I any] interface {
	Handle(ctx context.Context, in I) error
}

// ResultHandler runs an operation that returns a value.
type ResultHandler[I, O any] interface {
	Handle(ctx context.Context, in I) (O, error)
}

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	// Commands
	SubmitOrder            ResultHandler[commands.SubmitOrderFromCartCommand, commands.SubmitOrderFromCartResult]
	ApproveStandardPricing Handler[commands.ApproveStandardPricingCommand]
	AdjustPricing          Handler[commands.AdjustPricingCommand]
	ApprovePmgPricing      Handler[commands.ApprovePmgPricingCommand]
	ApproveQuote           Handler[commands.ApproveQuoteCommand]
	DeclineQuote           Handler[commands.DeclineQuoteCommand]
	AdvanceOrderStatus     Handler[commands.AdvanceOrderStatusCommand]
	UpdateFinancialStatus  Handler[commands.UpdateFinancialStatusCommand]
	CreatePricingTier      ResultHandler[commands.CreatePricingTierCommand, kernel.UUID]
	UpdatePricingTier      Handler[commands.UpdatePricingTierCommand]
	ChangeAssetQuantity    Handler[commands.ChangeAssetQuantityCommand]

	// Queries
	GetAssetAvailability     ResultHandler[queries.GetAssetAvailabilityQuery, queries.GetAssetAvailabilityQueryResponse]
	CheckAssetsAvailability  ResultHandler[queries.CheckAssetsAvailabilityQuery, queries.CheckAssetsAvailabilityQueryResponse]
	CalculateStandardPricing ResultHandler[queries.CalculateStandardPricingQuery, queries.CalculateStandardPricingQueryResponse]
	EstimateCartPricing      ResultHandler[queries.EstimateCartPricingQuery, queries.EstimateCartPricingQueryResponse]
	GetOrderStatusHistory    ResultHandler[queries.GetOrderStatusHistoryQuery, []queries.GetOrderStatusHistoryQueryResponse]
	GetStaleQuotes           ResultHandler[queries.GetStaleQuotesQuery, []queries.GetStaleQuotesQueryResponse]
}

// Server translates HTTP requests into commands and queries.
type Server struct {
	h Handlers
}

// NewServer creates a server over the given handlers; call RegisterHandlers to mount it.
func NewServer(h Handlers) *Server {
	return &Server{h: h}
}

// RegisterHandlers mounts every route under /api/v1.
func RegisterHandlers(e *echo.Echo, s *Server) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.SubmitOrder)
	api.GET("/orders/stale-quotes", s.GetStaleQuotes)
	api.GET("/orders/:id/history", s.GetOrderStatusHistory)
	api.GET("/orders/:id/pricing/standard", s.CalculateStandardPricing)
	api.POST("/orders/:id/pricing/approve-standard", s.ApproveStandardPricing)
	api.POST("/orders/:id/pricing/adjust", s.AdjustPricing)
	api.POST("/orders/:id/pricing/approve-pmg", s.ApprovePmgPricing)
	api.POST("/orders/:id/quote/approve", s.ApproveQuote)
	api.POST("/orders/:id/quote/decline", s.DeclineQuote)
	api.POST("/orders/:id/status", s.AdvanceOrderStatus)
	api.POST("/orders/:id/financial-status", s.UpdateFinancialStatus)

	api.POST("/assets/availability", s.CheckAssetsAvailability)
	api.GET("/assets/:id/availability", s.GetAssetAvailability)
	api.PUT("/assets/:id/quantity", s.ChangeAssetQuantity)

	api.POST("/pricing-tiers", s.CreatePricingTier)
	api.PUT("/pricing-tiers/:id", s.UpdatePricingTier)

	api.POST("/cart/estimate", s.EstimateCartPricing)
}

// SubmitOrder handles POST /api/v1/orders - turns a cart into an order.
func (s *Server) SubmitOrder(ctx echo.Context) error {
	userID, err := actingUser(ctx)
	if err != nil {
		return fail(ctx, err)
	}
	var req SubmitOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := newSubmitOrderCommand(userID, req)
	if err != nil {
		return fail(ctx, err)
	}
	result, err := s.h.SubmitOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, SubmitOrderResponse{
		OrderID:          result.OrderID.String(),
		Status:           result.Status.String(),
		CalculatedVolume: result.CalculatedVolume,
		ItemCount:        result.ItemCount,
	})
}

func newSubmitOrderCommand(userID kernel.UUID, req SubmitOrderRequest) (commands.SubmitOrderFromCartCommand, error) {
	companyID, err := kernel.UUIDFromString(req.CompanyID)
	if err != nil {
		return commands.SubmitOrderFromCartCommand{}, err
	}
	requested, err := requestedItems(req.Items)
	if err != nil {
		return commands.SubmitOrderFromCartCommand{}, err
	}
	items := make([]commands.CartItem, 0, len(requested))
	for _, item := range requested {
		items = append(items, commands.CartItem{AssetID: item.AssetID, Quantity: item.Quantity})
	}
	event, err := dateRange(req.EventStartDate, req.EventEndDate)
	if err != nil {
		return commands.SubmitOrderFromCartCommand{}, err
	}
	contact, err := order.NewContact(req.Contact.Name, req.Contact.Email, req.Contact.Phone)
	if err != nil {
		return commands.SubmitOrderFromCartCommand{}, err
	}
	loc, err := kernel.NewLocation(req.Venue.Country, req.Venue.City)
	if err != nil {
		return commands.SubmitOrderFromCartCommand{}, err
	}
	venue, err := order.NewVenue(req.Venue.Name, loc, req.Venue.Address)
	if err != nil {
		return commands.SubmitOrderFromCartCommand{}, err
	}
	return commands.NewSubmitOrderFromCartCommand(companyID, userID, items, event, contact, venue, req.SpecialInstructions)
}

// ApproveStandardPricing handles POST /api/v1/orders/:id/pricing/approve-standard.
func (s *Server) ApproveStandardPricing(ctx echo.Context) error {
	orderID, userID, err := orderAndUser(ctx)
	if err != nil {
		return fail(ctx, err)
	}
	cmd, err := commands.NewApproveStandardPricingCommand(orderID, userID)
	if err != nil {
		return fail(ctx, err)
	}
	return s.run(ctx, s.h.ApproveStandardPricing.Handle(ctx.Request().Context(), cmd))
}

// AdjustPricing handles POST /api/v1/orders/:id/pricing/adjust - a logistics
// price override that needs PMG approval.
func (s *Server) AdjustPricing(ctx echo.Context) error {
	orderID, userID, err := orderAndUser(ctx)
	if err != nil {
		return fail(ctx, err)
	}
	var req AdjustPricingRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	cmd, err := commands.NewAdjustPricingCommand(orderID, userID, req.AdjustedPrice, req.Reason)
	if err != nil {
		return fail(ctx, err)
	}
	return s.run(ctx, s.h.AdjustPricing.Handle(ctx.Request().Context(), cmd))
}

// ApprovePmgPricing handles POST /api/v1/orders/:id/pricing/approve-pmg.
func (s *Server) ApprovePmgPricing(ctx echo.Context) error {
	orderID, userID, err := orderAndUser(ctx)
	if err != nil {
		return fail(ctx, err)
	}
	var req ApprovePmgPricingRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	cmd, err := commands.NewApprovePmgPricingCommand(orderID, userID, req.PmgMarginPercent)
	if err != nil {
		return fail(ctx, err)
	}
	return s.run(ctx, s.h.ApprovePmgPricing.Handle(ctx.Request().Context(), cmd))
}

// ApproveQuote handles POST /api/v1/orders/:id/quote/approve - the client
// accepts; units are booked.
func (s *Server) ApproveQuote(ctx echo.Context) error {
	orderID, userID, err := orderAndUser(ctx)
	if err != nil {
		return fail(ctx, err)
	}
	cmd, err := commands.NewApproveQuoteCommand(orderID, userID)
	if err != nil {
		return fail(ctx, err)
	}
	return s.run(ctx, s.h.ApproveQuote.Handle(ctx.Request().Context(), cmd))
}

// DeclineQuote handles POST /api/v1/orders/:id/quote/decline.
func (s *Server) DeclineQuote(ctx echo.Context) error {
	orderID, userID, err := orderAndUser(ctx)
	if err != nil {
		return fail(ctx, err)
	}
	var req DeclineQuoteRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	cmd, err := commands.NewDeclineQuoteCommand(orderID, userID, req.Reason)
	if err != nil {
		return fail(ctx, err)
	}
	return s.run(ctx, s.h.DeclineQuote.Handle(ctx.Request().Context(), cmd))
}

// AdvanceOrderStatus handles POST /api/v1/orders/:id/status - fulfillment steps.
func (s *Server) AdvanceOrderStatus(ctx echo.Context) error {
	orderID, userID, err := orderAndUser(ctx)
	if err != nil {
		return fail(ctx, err)
	}
	var req AdvanceStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	to, err := order.ParseStatus(req.Status)
	if err != nil {
		return fail(ctx, err)
	}
	cmd, err := commands.NewAdvanceOrderStatusCommand(orderID, userID, to, req.Notes)
	if err != nil {
		return fail(ctx, err)
	}
	return s.run(ctx, s.h.AdvanceOrderStatus.Handle(ctx.Request().Context(), cmd))
}

// UpdateFinancialStatus handles POST /api/v1/orders/:id/financial-status.
func (s *Server) UpdateFinancialStatus(ctx echo.Context) error {
	orderID, userID, err := orderAndUser(ctx)
	if err != nil {
		return fail(ctx, err)
	}
	var req UpdateFinancialStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	to, err := order.ParseFinancialStatus(req.FinancialStatus)
	if err != nil {
		return fail(ctx, err)
	}
	cmd, err := commands.NewUpdateFinancialStatusCommand(orderID, userID, to, req.Notes)
	if err != nil {
		return fail(ctx, err)
	}
	return s.run(ctx, s.h.UpdateFinancialStatus.Handle(ctx.Request().Context(), cmd))
}

// GetOrderStatusHistory handles GET /api/v1/orders/:id/history.
func (s *Server) GetOrderStatusHistory(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return fail(ctx, err)
	}
	query, err := queries.NewGetOrderStatusHistoryQuery(orderID)
	if err != nil {
		return fail(ctx, err)
	}
	history, err := s.h.GetOrderStatusHistory.Handle(ctx.Request().Context(), query)
	if err != nil {
		return fail(ctx, err)
	}

	response := make([]HistoryEntry, len(history))
	for i, entry := range history {
		response[i] = HistoryEntry{
			ID:        entry.ID.String(),
			Status:    entry.Status.String(),
			Notes:     entry.Notes,
			UpdatedBy: entry.UpdatedBy.String(),
			Timestamp: entry.Timestamp.UTC().Format(time.RFC3339),
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

// CalculateStandardPricing handles GET /api/v1/orders/:id/pricing/standard -
// previews the tier price for the reviewer.
func (s *Server) CalculateStandardPricing(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return fail(ctx, err)
	}
	query, err := queries.NewCalculateStandardPricingQuery(orderID)
	if err != nil {
		return fail(ctx, err)
	}
	result, err := s.h.CalculateStandardPricing.Handle(ctx.Request().Context(), query)
	if err != nil {
		return fail(ctx, err)
	}

	response := StandardPricingResponse{
		OrderID:          result.OrderID.String(),
		Volume:           result.Volume,
		TierFound:        result.TierFound,
		A2BasePrice:      result.A2BasePrice,
		PmgMarginPercent: result.PmgMarginPercent,
		PmgMarginAmount:  result.PmgMarginAmount,
		FinalTotalPrice:  result.FinalTotalPrice,
	}
	if result.PricingTierID != nil {
		id := result.PricingTierID.String()
		response.PricingTierID = &id
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetStaleQuotes handles GET /api/v1/orders/stale-quotes?olderThan=72h.
func (s *Server) GetStaleQuotes(ctx echo.Context) error {
	olderThan, err := time.ParseDuration(ctx.QueryParam("olderThan"))
	if err != nil {
		return fail(ctx, errs.NewValueIsInvalidErrorWithCause("olderThan", err))
	}
	query, err := queries.NewGetStaleQuotesQuery(olderThan)
	if err != nil {
		return fail(ctx, err)
	}
	quotes, err := s.h.GetStaleQuotes.Handle(ctx.Request().Context(), query)
	if err != nil {
		return fail(ctx, err)
	}

	response := make([]StaleQuote, len(quotes))
	for i, q := range quotes {
		response[i] = StaleQuote{
			OrderID:         q.OrderID.String(),
			CompanyID:       q.CompanyID.String(),
			ContactEmail:    q.ContactEmail,
			QuotedAt:        q.QuotedAt.UTC().Format(time.RFC3339),
			FinalTotalPrice: q.FinalTotalPrice,
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetAssetAvailability handles GET /api/v1/assets/:id/availability?from=&until=.
func (s *Server) GetAssetAvailability(ctx echo.Context) error {
	assetID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return fail(ctx, err)
	}
	period, err := dateRange(ctx.QueryParam("from"), ctx.QueryParam("until"))
	if err != nil {
		return fail(ctx, err)
	}
	query, err := queries.NewGetAssetAvailabilityQuery(assetID, period)
	if err != nil {
		return fail(ctx, err)
	}
	result, err := s.h.GetAssetAvailability.Handle(ctx.Request().Context(), query)
	if err != nil {
		return fail(ctx, err)
	}

	response := AssetAvailabilityResponse{
		AssetID:           result.AssetID.String(),
		TotalQuantity:     result.TotalQuantity,
		BookedQuantity:    result.BookedQuantity,
		AvailableQuantity: result.AvailableQuantity,
		Bookings:          make([]Booking, len(result.Bookings)),
	}
	for i, b := range result.Bookings {
		response.Bookings[i] = Booking{
			ID:           b.ID.String(),
			OrderID:      b.OrderID.String(),
			Quantity:     b.Quantity,
			BlockedFrom:  b.BlockedFrom.String(),
			BlockedUntil: b.BlockedUntil.String(),
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

// CheckAssetsAvailability handles POST /api/v1/assets/availability.
func (s *Server) CheckAssetsAvailability(ctx echo.Context) error {
	var req CheckAvailabilityRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	items, err := requestedItems(req.Items)
	if err != nil {
		return fail(ctx, err)
	}
	event, err := dateRange(req.EventStartDate, req.EventEndDate)
	if err != nil {
		return fail(ctx, err)
	}
	query, err := queries.NewCheckAssetsAvailabilityQuery(items, event)
	if err != nil {
		return fail(ctx, err)
	}
	result, err := s.h.CheckAssetsAvailability.Handle(ctx.Request().Context(), query)
	if err != nil {
		return fail(ctx, err)
	}

	response := CheckAvailabilityResponse{
		AllAvailable:     result.AllAvailable,
		UnavailableItems: make([]Shortfall, len(result.UnavailableItems)),
	}
	for i, item := range result.UnavailableItems {
		response.UnavailableItems[i] = Shortfall{
			AssetID:      item.AssetID.String(),
			AssetName:    item.AssetName,
			Requested:    item.Requested,
			Available:    item.Available,
			BlockedFrom:  item.BlockedFrom.String(),
			BlockedUntil: item.BlockedUntil.String(),
		}
		if item.NextAvailableDate != nil {
			next := item.NextAvailableDate.String()
			response.UnavailableItems[i].NextAvailableDate = &next
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

// ChangeAssetQuantity handles PUT /api/v1/assets/:id/quantity.
func (s *Server) ChangeAssetQuantity(ctx echo.Context) error {
	assetID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return fail(ctx, err)
	}
	var req ChangeAssetQuantityRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	cmd, err := commands.NewChangeAssetQuantityCommand(assetID, req.TotalQuantity)
	if err != nil {
		return fail(ctx, err)
	}
	return s.run(ctx, s.h.ChangeAssetQuantity.Handle(ctx.Request().Context(), cmd))
}

// CreatePricingTier handles POST /api/v1/pricing-tiers.
func (s *Server) CreatePricingTier(ctx echo.Context) error {
	var req CreatePricingTierRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	loc, err := kernel.NewLocation(req.Country, req.City)
	if err != nil {
		return fail(ctx, err)
	}
	cmd, err := commands.NewCreatePricingTierCommand(loc, req.VolumeMin, req.VolumeMax, req.BasePrice)
	if err != nil {
		return fail(ctx, err)
	}
	id, err := s.h.CreatePricingTier.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: id.String()})
}

// UpdatePricingTier handles PUT /api/v1/pricing-tiers/:id.
func (s *Server) UpdatePricingTier(ctx echo.Context) error {
	tierID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return fail(ctx, err)
	}
	var req UpdatePricingTierRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	cmd, err := commands.NewUpdatePricingTierCommand(tierID, req.VolumeMin, req.VolumeMax, req.BasePrice, req.IsActive)
	if err != nil {
		return fail(ctx, err)
	}
	return s.run(ctx, s.h.UpdatePricingTier.Handle(ctx.Request().Context(), cmd))
}

// EstimateCartPricing handles POST /api/v1/cart/estimate. Partial carts are
// fine: unknown items are skipped and a missing venue yields no estimate.
func (s *Server) EstimateCartPricing(ctx echo.Context) error {
	var req EstimateCartRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	companyID, err := kernel.UUIDFromString(req.CompanyID)
	if err != nil {
		return fail(ctx, err)
	}
	items := make([]queries.RequestedItem, 0, len(req.Items))
	for _, item := range req.Items {
		assetID, parseErr := kernel.UUIDFromString(item.AssetID)
		if parseErr != nil {
			continue
		}
		items = append(items, queries.RequestedItem{AssetID: assetID, Quantity: item.Quantity})
	}
	query, err := queries.NewEstimateCartPricingQuery(companyID, items, req.Country, req.City)
	if err != nil {
		return fail(ctx, err)
	}
	result, err := s.h.EstimateCartPricing.Handle(ctx.Request().Context(), query)
	if err != nil {
		return fail(ctx, err)
	}

	response := EstimateCartResponse{
		Volume:    result.Volume,
		Weight:    result.Weight,
		ItemCount: result.ItemCount,
	}
	if result.Estimate != nil {
		response.Estimate = &CartEstimate{
			BasePrice:     result.Estimate.BasePrice,
			MarginPercent: result.Estimate.MarginPercent,
			MarginAmount:  result.Estimate.MarginAmount,
			Total:         result.Estimate.Total,
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

func (s *Server) run(ctx echo.Context, err error) error {
	if err != nil {
		return fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

func actingUser(ctx echo.Context) (kernel.UUID, error) {
	header := ctx.Request().Header.Get(userHeader)
	if header == "" {
		return kernel.UUID{}, errs.NewValueIsRequiredError(userHeader)
	}
	return kernel.UUIDFromString(header)
}

func orderAndUser(ctx echo.Context) (kernel.UUID, kernel.UUID, error) {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}
	userID, err := actingUser(ctx)
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}
	return orderID, userID, nil
}

func dateRange(from, until string) (kernel.DateRange, error) {
	start, err := kernel.ParseDate(from)
	if err != nil {
		return kernel.DateRange{}, err
	}
	end, err := kernel.ParseDate(until)
	if err != nil {
		return kernel.DateRange{}, err
	}
	return kernel.NewDateRange(start, end)
}

func requestedItems(in []CartItem) ([]queries.RequestedItem, error) {
	items := make([]queries.RequestedItem, 0, len(in))
	for _, item := range in {
		assetID, err := kernel.UUIDFromString(item.AssetID)
		if err != nil {
			return nil, err
		}
		items = append(items, queries.RequestedItem{AssetID: assetID, Quantity: item.Quantity})
	}
	return items, nil
}
