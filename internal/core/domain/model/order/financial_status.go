package order

import (
	"fmt"

	"eventrent/internal/pkg/errs"
)

// FinancialStatus is the commercial side of an order, moving independently of Status.
//
//	PENDING_QUOTE ─> QUOTE_SENT ─┬─> QUOTE_ACCEPTED ─> PENDING_INVOICE ─> INVOICED ─> PAID
//	      ^                      │
//	      └──────────────────────┘
type FinancialStatus int

const (
	UnknownFinancialStatus FinancialStatus = iota
	PendingQuote
	QuoteSent
	QuoteAccepted
	PendingInvoice
	Invoiced
	Paid
)

func getFinancialStatusStrings() map[FinancialStatus]string {
	return map[FinancialStatus]string{
		UnknownFinancialStatus: "UNKNOWN",
		PendingQuote:           "PENDING_QUOTE",
		QuoteSent:              "QUOTE_SENT",
		QuoteAccepted:          "QUOTE_ACCEPTED",
		PendingInvoice:         "PENDING_INVOICE",
		Invoiced:               "INVOICED",
		Paid:                   "PAID",
	}
}

//nolint:gochecknoglobals // read-only lookup table
var financialTransitions = map[FinancialStatus][]FinancialStatus{
	PendingQuote:   {QuoteSent},
	QuoteSent:      {QuoteAccepted, PendingQuote},
	QuoteAccepted:  {PendingInvoice},
	PendingInvoice: {Invoiced},
	Invoiced:       {Paid},
	Paid:           nil,
}

// IsValidFinancialTransition reports whether from -> to is an edge of the financial machine.
func IsValidFinancialTransition(from, to FinancialStatus) bool {
	for _, next := range financialTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ParseFinancialStatus maps a persisted name such as "QUOTE_SENT" back to its value.
func ParseFinancialStatus(s string) (FinancialStatus, error) {
	for st, name := range getFinancialStatusStrings() {
		if st != UnknownFinancialStatus && name == s {
			return st, nil
		}
	}
	return UnknownFinancialStatus, errs.NewValueIsInvalidErrorWithCause(
		"financialStatus", fmt.Errorf("%q is not a valid financial status", s),
	)
}

// Validate rejects values that are not states of the financial machine.
func (s FinancialStatus) Validate() error {
	if _, ok := financialTransitions[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("financialStatus", fmt.Errorf("%d is not a valid financial status", s))
	}
	return nil
}

// String returns the persisted name, or "UNKNOWN".
func (s FinancialStatus) String() string {
	if str, ok := getFinancialStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether s has no outgoing edge. Only PAID is terminal.
func (s FinancialStatus) IsTerminal() bool {
	return s.Validate() == nil && len(financialTransitions[s]) == 0
}

// IsCommerciallyAccepted reports whether the client has accepted a quote.
// Fulfillment may only start from one of these.
func (s FinancialStatus) IsCommerciallyAccepted() bool {
	return s >= QuoteAccepted && s <= Paid
}

func (s FinancialStatus) transitionTo(to FinancialStatus) error {
	if !IsValidFinancialTransition(s, to) {
		return errs.NewInvalidTransitionError("financialStatus", s.String(), to.String())
	}
	return nil
}
