// Package guard lets value objects and aggregates detect that they were
// created as a zero value instead of through their constructor.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded as a private field. Its zero value reports
// "not constructed"; only NewConstructorGuard produces a passing guard.
//
// Example:
//
//	type Tier struct {
//	    basePrice decimal.Decimal
//	    guard     guard.ConstructorGuard
//	}
//
//	func (t *Tier) Validate() error {
//	    return t.guard.Validate(ErrTierIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marking its owner as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the owner was not built by its constructor.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
