package order

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"eventrent/internal/core/domain/model/kernel"
	"eventrent/internal/core/domain/model/pricing"
	"eventrent/internal/pkg/errs"
	"eventrent/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// MinAdjustmentReasonLength is the shortest accepted justification for a manual price.
const MinAdjustmentReasonLength = 10

var (
	// ErrOrderIsNotConstructed is returned when validating a zero-value Order.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")
	// ErrItemsAreRequired rejects an order without lines.
	ErrItemsAreRequired = errs.NewValueIsRequiredError("items")

	// ErrQuoteNotAccepted is the cause of a rejected move into fulfillment
	// while the financial status has not reached commercial acceptance.
	ErrQuoteNotAccepted = errors.New("quote has not been accepted")
	// ErrDedicatedOperation is the cause of a rejected generic move to a status
	// that has its own operation with side effects (pricing, quote decisions).
	ErrDedicatedOperation = errors.New("status is reached through its dedicated operation")
	// ErrNoAdjustedPrice is the cause of a PMG approval without an A2 adjustment.
	ErrNoAdjustedPrice = errors.New("order has no adjusted price")
	// ErrSameApprover is the cause of a PMG approval by the user who made the
	// A2 adjustment.
	ErrSameApprover = errors.New("adjusted price must be approved by a second user")
	// ErrAlreadySubmitted is the cause of a submission-time change on an order
	// that has left DRAFT.
	ErrAlreadySubmitted = errors.New("order has already been submitted")
)

var maxMarginPercent = decimal.NewFromInt(100)

// Adjustment is an A2 manual price override. TierID and BasePrice carry the
// tier-matched reference price when one existed.
type Adjustment struct {
	TierID        *kernel.UUID
	BasePrice     *decimal.Decimal
	AdjustedPrice decimal.Decimal
	Reason        string
}

// Order is the aggregate root of the rental lifecycle. It composes two state
// machines, Status (fulfillment) and FinancialStatus (commercial), that move
// independently except where fulfillment waits on commercial acceptance.
//
// Every transition appends a HistoryEntry and may record a Notification,
// which the application layer dispatches after the transaction commits.
// Bookings are not part of the aggregate; the handlers that confirm, close or
// decline an order drive the booking ledger in the same transaction.
type Order struct {
	id                  kernel.UUID
	companyID           kernel.UUID
	createdBy           kernel.UUID
	contact             Contact
	venue               Venue
	event               kernel.DateRange
	specialInstructions string
	items               []*Item
	calculatedVolume    decimal.Decimal
	calculatedWeight    decimal.Decimal

	pricingTierID      *kernel.UUID
	a2BasePrice        *decimal.Decimal
	a2AdjustedPrice    *decimal.Decimal
	a2AdjustmentReason string
	a2AdjustedBy       *kernel.UUID
	pmgMarginPercent   *decimal.Decimal
	pmgMarginAmount    *decimal.Decimal
	finalTotalPrice    *decimal.Decimal

	status          Status
	financialStatus FinancialStatus
	quotedAt        *time.Time
	createdAt       time.Time
	updatedAt       time.Time

	history       []HistoryEntry
	notifications []Notification
	guard         guard.ConstructorGuard
}

// NewOrder creates a DRAFT order with its totals computed from the item snapshots.
func NewOrder(
	id, companyID, createdBy kernel.UUID,
	contact Contact,
	venue Venue,
	event kernel.DateRange,
	specialInstructions string,
	items []*Item,
	at time.Time,
) (*Order, error) {
	return RestoreOrder(Snapshot{
		ID:                  id,
		CompanyID:           companyID,
		CreatedBy:           createdBy,
		Contact:             contact,
		Venue:               venue,
		Event:               event,
		SpecialInstructions: specialInstructions,
		Items:               items,
		Status:              Draft,
		FinancialStatus:     PendingQuote,
		CreatedAt:           at,
		UpdatedAt:           at,
	})
}

// Snapshot is the persisted state of an order, used to restore it.
type Snapshot struct {
	ID                  kernel.UUID
	CompanyID           kernel.UUID
	CreatedBy           kernel.UUID
	Contact             Contact
	Venue               Venue
	Event               kernel.DateRange
	SpecialInstructions string
	Items               []*Item

	PricingTierID      *kernel.UUID
	A2BasePrice        *decimal.Decimal
	A2AdjustedPrice    *decimal.Decimal
	A2AdjustmentReason string
	A2AdjustedBy       *kernel.UUID
	PmgMarginPercent   *decimal.Decimal
	PmgMarginAmount    *decimal.Decimal
	FinalTotalPrice    *decimal.Decimal

	Status          Status
	FinancialStatus FinancialStatus
	QuotedAt        *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
	History         []HistoryEntry
}

// RestoreOrder rebuilds an order from storage. Totals are recomputed from items.
func RestoreOrder(s Snapshot) (*Order, error) {
	var itemsErr error
	if len(s.Items) == 0 {
		itemsErr = ErrItemsAreRequired
	}
	if err := errors.Join(
		s.ID.Validate(),
		s.CompanyID.Validate(),
		s.CreatedBy.Validate(),
		s.Venue.Location().Validate(),
		s.Event.Validate(),
		itemsErr,
		s.Status.Validate(),
		s.FinancialStatus.Validate(),
	); err != nil {
		return nil, err
	}
	if s.Contact.Email() == "" {
		return nil, errs.NewValueIsRequiredError("contactEmail")
	}

	o := &Order{
		id:                  s.ID,
		companyID:           s.CompanyID,
		createdBy:           s.CreatedBy,
		contact:             s.Contact,
		venue:               s.Venue,
		event:               s.Event,
		specialInstructions: strings.TrimSpace(s.SpecialInstructions),
		items:               append([]*Item(nil), s.Items...),
		pricingTierID:       s.PricingTierID,
		a2BasePrice:         s.A2BasePrice,
		a2AdjustedPrice:     s.A2AdjustedPrice,
		a2AdjustmentReason:  s.A2AdjustmentReason,
		a2AdjustedBy:        s.A2AdjustedBy,
		pmgMarginPercent:    s.PmgMarginPercent,
		pmgMarginAmount:     s.PmgMarginAmount,
		finalTotalPrice:     s.FinalTotalPrice,
		status:              s.Status,
		financialStatus:     s.FinancialStatus,
		quotedAt:            s.QuotedAt,
		createdAt:           s.CreatedAt,
		updatedAt:           s.UpdatedAt,
		history:             append([]HistoryEntry(nil), s.History...),
		guard:               guard.NewConstructorGuard(),
	}
	o.calculatedVolume, o.calculatedWeight = decimal.Zero, decimal.Zero
	for _, item := range o.items {
		o.calculatedVolume = o.calculatedVolume.Add(item.TotalVolume())
		o.calculatedWeight = o.calculatedWeight.Add(item.TotalWeight())
	}
	return o, nil
}

// Validate reports whether o was built by NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// ID returns the order identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CompanyID returns the client company that owns the order.
func (o *Order) CompanyID() kernel.UUID {
	return o.companyID
}

// CreatedBy is the user who submitted the cart.
func (o *Order) CreatedBy() kernel.UUID {
	return o.createdBy
}

// Contact returns the on-site contact.
func (o *Order) Contact() Contact {
	return o.contact
}

// Venue returns where the event takes place.
func (o *Order) Venue() Venue {
	return o.venue
}

// Event returns the event dates, without buffers.
func (o *Order) Event() kernel.DateRange {
	return o.event
}

// SpecialInstructions returns the free-text notes from the client.
func (o *Order) SpecialInstructions() string {
	return o.specialInstructions
}

// Items returns a copy of the order lines.
func (o *Order) Items() []*Item {
	return append([]*Item(nil), o.items...)
}

// ItemCount is the number of order lines.
func (o *Order) ItemCount() int {
	return len(o.items)
}

// TotalQuantity sums the requested units over all lines.
func (o *Order) TotalQuantity() int {
	total := 0
	for _, item := range o.items {
		total += item.Quantity()
	}
	return total
}

// CalculatedVolume is the sum of the item volumes. It selects the pricing tier.
func (o *Order) CalculatedVolume() decimal.Decimal {
	return o.calculatedVolume
}

// CalculatedWeight is the sum of the item weights.
func (o *Order) CalculatedWeight() decimal.Decimal {
	return o.calculatedWeight
}

// PricingTierID is the matched tier, nil until one is found.
func (o *Order) PricingTierID() *kernel.UUID {
	return o.pricingTierID
}

// A2BasePrice is the base price of the matched tier, nil until one is found.
func (o *Order) A2BasePrice() *decimal.Decimal {
	return o.a2BasePrice
}

// A2AdjustedPrice is the manual base price set by AdjustPricing, if any.
func (o *Order) A2AdjustedPrice() *decimal.Decimal {
	return o.a2AdjustedPrice
}

// A2AdjustmentReason is the justification given with the adjusted price.
func (o *Order) A2AdjustmentReason() string {
	return o.a2AdjustmentReason
}

// A2AdjustedBy is the user who made the pending A2 adjustment, nil when the
// price was not adjusted.
func (o *Order) A2AdjustedBy() *kernel.UUID {
	return o.a2AdjustedBy
}

// PmgMarginPercent is the margin applied to the quote.
func (o *Order) PmgMarginPercent() *decimal.Decimal {
	return o.pmgMarginPercent
}

// PmgMarginAmount is the margin in money, rounded to cents.
func (o *Order) PmgMarginAmount() *decimal.Decimal {
	return o.pmgMarginAmount
}

// FinalTotalPrice is the quoted total, nil until a quote is attached.
func (o *Order) FinalTotalPrice() *decimal.Decimal {
	return o.finalTotalPrice
}

// Status returns the fulfillment status.
func (o *Order) Status() Status {
	return o.status
}

// FinancialStatus returns the commercial status.
func (o *Order) FinancialStatus() FinancialStatus {
	return o.financialStatus
}

// QuotedAt is when the order last entered QUOTED.
func (o *Order) QuotedAt() *time.Time {
	return o.quotedAt
}

// CreatedAt is when the order was submitted.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt is the time of the latest transition.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// History returns the audit trail, oldest first.
func (o *Order) History() []HistoryEntry {
	return append([]HistoryEntry(nil), o.history...)
}

// Notifications returns the intents recorded since the order was loaded.
func (o *Order) Notifications() []Notification {
	return append([]Notification(nil), o.notifications...)
}

// ClearNotifications drops the recorded intents once they have been handed to the notifier.
func (o *Order) ClearNotifications() {
	o.notifications = nil
}

// AttachTierMatch records the tier matched when the cart was submitted and its
// base price as the reference for the A2 review. Only a DRAFT accepts it; the
// quote itself is attached later by one of the pricing approvals.
func (o *Order) AttachTierMatch(tierID kernel.UUID, basePrice decimal.Decimal) error {
	if err := tierID.Validate(); err != nil {
		return err
	}
	if o.status != Draft {
		return errs.NewInvalidTransitionErrorWithCause(
			"status", o.status.String(), Submitted.String(), ErrAlreadySubmitted,
		)
	}
	o.pricingTierID = &tierID
	o.a2BasePrice = decimalPtr(kernel.RoundMoney(basePrice))
	return nil
}

// Submit moves a draft through SUBMITTED into PRICING_REVIEW.
func (o *Order) Submit(by kernel.UUID, at time.Time) error {
	if err := errors.Join(by.Validate(), o.status.transitionTo(Submitted)); err != nil {
		return err
	}
	o.moveTo(Submitted, "Order submitted", by, at)
	o.moveTo(PricingReview, "Awaiting pricing review", by, at)
	return nil
}

// ApproveStandardPricing attaches a tier-matched quote and sends it to the client.
func (o *Order) ApproveStandardPricing(tierID kernel.UUID, quote pricing.Quote, by kernel.UUID, at time.Time) error {
	if err := errors.Join(
		by.Validate(),
		tierID.Validate(),
		o.status.transitionTo(Quoted),
		o.financialStatus.transitionTo(QuoteSent),
	); err != nil {
		return err
	}
	if o.status != PricingReview {
		return errs.NewInvalidTransitionErrorWithCause("status", o.status.String(), Quoted.String(), ErrDedicatedOperation)
	}

	o.pricingTierID = &tierID
	o.a2BasePrice = decimalPtr(quote.BasePrice)
	o.a2AdjustedPrice = nil
	o.a2AdjustmentReason = ""
	o.a2AdjustedBy = nil
	o.attachQuote(quote)

	o.moveTo(Quoted, fmt.Sprintf("Standard pricing approved: %s", quote.FinalTotal.StringFixed(2)), by, at)
	o.moveFinancial(QuoteSent, "Quote sent to client", by, at)
	return nil
}

// AdjustPricing records an A2 override and hands the order to a second approver.
func (o *Order) AdjustPricing(adj Adjustment, by kernel.UUID, at time.Time) error {
	reason := strings.TrimSpace(adj.Reason)
	var priceErr, reasonErr error
	if !adj.AdjustedPrice.IsPositive() {
		priceErr = errs.NewValueIsOutOfRangeError("adjustedPrice", adj.AdjustedPrice, "0 exclusive", "unbounded")
	}
	if utf8.RuneCountInString(reason) < MinAdjustmentReasonLength {
		reasonErr = errs.NewValueIsInvalidErrorWithCause(
			"adjustmentReason",
			fmt.Errorf("must be at least %d characters", MinAdjustmentReasonLength),
		)
	}
	if err := errors.Join(by.Validate(), priceErr, reasonErr, o.status.transitionTo(PendingApproval)); err != nil {
		return err
	}

	o.pricingTierID = adj.TierID
	o.a2BasePrice = nil
	if adj.BasePrice != nil {
		o.a2BasePrice = decimalPtr(kernel.RoundMoney(*adj.BasePrice))
	}
	o.a2AdjustedPrice = decimalPtr(kernel.RoundMoney(adj.AdjustedPrice))
	o.a2AdjustmentReason = reason
	adjustedBy := by
	o.a2AdjustedBy = &adjustedBy
	o.pmgMarginPercent, o.pmgMarginAmount, o.finalTotalPrice = nil, nil, nil

	o.moveTo(PendingApproval, "Price adjusted: "+reason, by, at)
	return nil
}

// ApprovePmgPricing layers the PMG margin on the adjusted price and sends the
// quote. The approver must differ from the user who made the adjustment.
func (o *Order) ApprovePmgPricing(marginPercent decimal.Decimal, by kernel.UUID, at time.Time) error {
	var marginErr error
	if marginPercent.IsNegative() || marginPercent.GreaterThan(maxMarginPercent) {
		marginErr = errs.NewValueIsOutOfRangeError("pmgMarginPercent", marginPercent, 0, 100)
	}
	if err := errors.Join(by.Validate(), marginErr); err != nil {
		return err
	}
	if o.status != PendingApproval {
		return errs.NewInvalidTransitionError("status", o.status.String(), Quoted.String())
	}
	if o.a2AdjustedPrice == nil {
		return errs.NewInvalidTransitionErrorWithCause("status", o.status.String(), Quoted.String(), ErrNoAdjustedPrice)
	}
	if o.a2AdjustedBy != nil && o.a2AdjustedBy.IsEqual(by) {
		return errs.NewInvalidTransitionErrorWithCause("status", o.status.String(), Quoted.String(), ErrSameApprover)
	}
	if err := o.financialStatus.transitionTo(QuoteSent); err != nil {
		return err
	}

	quote := pricing.ApplyMargin(*o.a2AdjustedPrice, marginPercent)
	o.attachQuote(quote)

	o.moveTo(Quoted, fmt.Sprintf("PMG pricing approved: %s", quote.FinalTotal.StringFixed(2)), by, at)
	o.moveFinancial(QuoteSent, "Quote sent to client", by, at)
	return nil
}

// ConfirmQuote records the client's acceptance. The caller must create the
// bookings in the same transaction that persists this change.
func (o *Order) ConfirmQuote(by kernel.UUID, at time.Time) error {
	if err := errors.Join(
		by.Validate(),
		o.status.transitionTo(Confirmed),
		o.financialStatus.transitionTo(QuoteAccepted),
	); err != nil {
		return err
	}
	o.moveTo(Confirmed, "Quote approved by client", by, at)
	o.moveFinancial(QuoteAccepted, "Quote accepted", by, at)
	return nil
}

// Decline records the client's rejection of the quote and withdraws it, so
// the financial status falls back to PENDING_QUOTE. DECLINED is terminal.
func (o *Order) Decline(reason string, by kernel.UUID, at time.Time) error {
	if err := errors.Join(
		by.Validate(),
		o.status.transitionTo(Declined),
		o.financialStatus.transitionTo(PendingQuote),
	); err != nil {
		return err
	}
	notes := "Quote declined by client"
	if reason = strings.TrimSpace(reason); reason != "" {
		notes += ": " + reason
	}
	o.moveTo(Declined, notes, by, at)
	o.moveFinancial(PendingQuote, "Quote withdrawn", by, at)
	return nil
}

// Advance performs one fulfillment step (IN_PREPARATION through CLOSED).
// Steps into fulfillment require the quote to have been accepted.
func (o *Order) Advance(to Status, notes string, by kernel.UUID, at time.Time) error {
	if err := by.Validate(); err != nil {
		return err
	}
	if !to.IsFulfillment() {
		return errs.NewInvalidTransitionErrorWithCause("status", o.status.String(), to.String(), ErrDedicatedOperation)
	}
	if err := o.status.transitionTo(to); err != nil {
		return err
	}
	if !o.financialStatus.IsCommerciallyAccepted() {
		return errs.NewInvalidTransitionErrorWithCause("status", o.status.String(), to.String(), ErrQuoteNotAccepted)
	}
	if notes = strings.TrimSpace(notes); notes == "" {
		notes = "Status changed to " + to.String()
	}
	o.moveTo(to, notes, by, at)
	return nil
}

// ChangeFinancialStatus performs an invoicing step. Quote-driven financial
// states are only reached through the pricing and quote operations.
func (o *Order) ChangeFinancialStatus(to FinancialStatus, notes string, by kernel.UUID, at time.Time) error {
	if err := by.Validate(); err != nil {
		return err
	}
	if to != PendingInvoice && to != Invoiced && to != Paid {
		return errs.NewInvalidTransitionErrorWithCause(
			"financialStatus", o.financialStatus.String(), to.String(), ErrDedicatedOperation,
		)
	}
	if err := o.financialStatus.transitionTo(to); err != nil {
		return err
	}
	o.moveFinancial(to, strings.TrimSpace(notes), by, at)
	return nil
}

func (o *Order) attachQuote(q pricing.Quote) {
	o.pmgMarginPercent = decimalPtr(q.MarginPercent)
	o.pmgMarginAmount = decimalPtr(q.MarginAmount)
	o.finalTotalPrice = decimalPtr(q.FinalTotal)
}

// moveTo applies an already validated status edge.
func (o *Order) moveTo(to Status, notes string, by kernel.UUID, at time.Time) {
	from := o.status
	o.status = to
	if to == Quoted {
		quotedAt := at
		o.quotedAt = &quotedAt
	}
	o.record(notes, by, at)
	if n, ok := NotificationFor(from, to); ok {
		o.notifications = append(o.notifications, Notification{Type: n, OrderID: o.id})
	}
}

// moveFinancial applies an already validated financial edge. The history
// entry carries the unchanged fulfillment status.
func (o *Order) moveFinancial(to FinancialStatus, notes string, by kernel.UUID, at time.Time) {
	from := o.financialStatus
	o.financialStatus = to
	line := fmt.Sprintf("Financial status %s -> %s", from, to)
	if notes != "" {
		line += ": " + notes
	}
	o.record(line, by, at)
	if n, ok := FinancialNotificationFor(from, to); ok {
		o.notifications = append(o.notifications, Notification{Type: n, OrderID: o.id})
	}
}

func (o *Order) record(notes string, by kernel.UUID, at time.Time) {
	o.updatedAt = at
	o.history = append(o.history, HistoryEntry{
		id:        kernel.NewUUID(),
		orderID:   o.id,
		status:    o.status,
		notes:     notes,
		updatedBy: by,
		timestamp: at,
	})
}

func decimalPtr(d decimal.Decimal) *decimal.Decimal {
	return &d
}
