package asset

import (
	"fmt"

	"eventrent/internal/pkg/errs"
)

// Status is informational only; bookings are never gated on it.
type Status int

const (
	UnknownStatus Status = iota
	Available
	Booked
	Out
	InMaintenance
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		UnknownStatus: "UNKNOWN",
		Available:     "AVAILABLE",
		Booked:        "BOOKED",
		Out:           "OUT",
		InMaintenance: "IN_MAINTENANCE",
	}
}

// Validate rejects values outside AVAILABLE..IN_MAINTENANCE.
func (s Status) Validate() error {
	if s < Available || s > InMaintenance {
		return errs.NewValueIsInvalidErrorWithCause("asset status", fmt.Errorf("%d is not a valid status", s))
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
