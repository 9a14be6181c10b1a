package order

import (
	"fmt"

	"eventrent/internal/pkg/errs"
)

// Status is the fulfillment lifecycle of an order.
//
//	DRAFT ─> SUBMITTED ─> PRICING_REVIEW ─┬─────────────────────> QUOTED ─┬─> CONFIRMED ─> IN_PREPARATION ─> ...
//	                                      └─> PENDING_APPROVAL ─────┘      └─> DECLINED
//
//	... ─> READY_FOR_DELIVERY ─> IN_TRANSIT ─> DELIVERED ─> IN_USE ─> AWAITING_RETURN ─> CLOSED
//
// DECLINED and CLOSED are terminal.
type Status int

const (
	UnknownStatus Status = iota
	Draft
	Submitted
	PricingReview
	PendingApproval
	Quoted
	Confirmed
	Declined
	InPreparation
	ReadyForDelivery
	InTransit
	Delivered
	InUse
	AwaitingReturn
	Closed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		UnknownStatus:    "UNKNOWN",
		Draft:            "DRAFT",
		Submitted:        "SUBMITTED",
		PricingReview:    "PRICING_REVIEW",
		PendingApproval:  "PENDING_APPROVAL",
		Quoted:           "QUOTED",
		Confirmed:        "CONFIRMED",
		Declined:         "DECLINED",
		InPreparation:    "IN_PREPARATION",
		ReadyForDelivery: "READY_FOR_DELIVERY",
		InTransit:        "IN_TRANSIT",
		Delivered:        "DELIVERED",
		InUse:            "IN_USE",
		AwaitingReturn:   "AWAITING_RETURN",
		Closed:           "CLOSED",
	}
}

// statusTransitions is the complete adjacency list. Terminal states map to nil.
//
//nolint:gochecknoglobals // read-only lookup table
var statusTransitions = map[Status][]Status{
	Draft:            {Submitted},
	Submitted:        {PricingReview},
	PricingReview:    {Quoted, PendingApproval},
	PendingApproval:  {Quoted},
	Quoted:           {Confirmed, Declined},
	Confirmed:        {InPreparation},
	Declined:         nil,
	InPreparation:    {ReadyForDelivery},
	ReadyForDelivery: {InTransit},
	InTransit:        {Delivered},
	Delivered:        {InUse},
	InUse:            {AwaitingReturn},
	AwaitingReturn:   {Closed},
	Closed:           nil,
}

// IsValidTransition reports whether from -> to is an edge of the status machine.
func IsValidTransition(from, to Status) bool {
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ParseStatus maps the wire name to a Status.
func ParseStatus(s string) (Status, error) {
	for st, name := range getStatusStrings() {
		if st != UnknownStatus && name == s {
			return st, nil
		}
	}
	return UnknownStatus, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate rejects values that are not states of the fulfillment machine.
func (s Status) Validate() error {
	if _, ok := statusTransitions[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the persisted name, or "UNKNOWN".
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether no transition leaves s.
func (s Status) IsTerminal() bool {
	return s.Validate() == nil && len(statusTransitions[s]) == 0
}

// IsFulfillment reports whether s belongs to the physical fulfillment stretch
// that starts after confirmation. Entering any of these needs commercial acceptance.
func (s Status) IsFulfillment() bool {
	return s >= InPreparation && s <= Closed
}

// HoldsBookings reports whether an order in s owns ledger bookings.
func (s Status) HoldsBookings() bool {
	return s == Confirmed || (s.IsFulfillment() && s != Closed)
}

func (s Status) transitionTo(to Status) error {
	if !IsValidTransition(s, to) {
		return errs.NewInvalidTransitionError("status", s.String(), to.String())
	}
	return nil
}
