package asset

import (
	"fmt"

	"eventrent/internal/pkg/errs"
)

// Condition is the inspection grade of an asset type. Anything below Green
// needs refurbishment time before it can go out again.
type Condition int

const (
	UnknownCondition Condition = iota
	Green
	Orange
	Red
)

func getConditionStrings() map[Condition]string {
	return map[Condition]string{
		UnknownCondition: "UNKNOWN",
		Green:            "GREEN",
		Orange:           "ORANGE",
		Red:              "RED",
	}
}

// ParseCondition maps the wire name to a Condition.
func ParseCondition(s string) (Condition, error) {
	for c, name := range getConditionStrings() {
		if c != UnknownCondition && name == s {
			return c, nil
		}
	}
	return UnknownCondition, errs.NewValueIsInvalidErrorWithCause("condition", fmt.Errorf("%q is not a valid condition", s))
}

// Validate rejects values outside GREEN..RED.
func (c Condition) Validate() error {
	if c < Green || c > Red {
		return errs.NewValueIsInvalidErrorWithCause("condition", fmt.Errorf("%d is not a valid condition", c))
	}
	return nil
}

// NeedsRefurb reports whether a refurb estimate must accompany the condition.
func (c Condition) NeedsRefurb() bool {
	return c == Orange || c == Red
}

// String returns the persisted name, or "UNKNOWN".
func (c Condition) String() string {
	if s, ok := getConditionStrings()[c]; ok {
		return s
	}
	return "UNKNOWN"
}
