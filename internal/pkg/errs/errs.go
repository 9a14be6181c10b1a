package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors. Every typed error below unwraps to exactly one of them,
// so callers classify failures with errors.Is.
var (
	// ErrObjectNotFound maps to HTTP 404.
	ErrObjectNotFound = errors.New("object not found")
	// ErrValueIsInvalid, ErrValueIsOutOfRange and ErrValueIsRequired form the
	// validation family checked by IsValidation (HTTP 400).
	ErrValueIsInvalid    = errors.New("value is invalid")
	ErrValueIsOutOfRange = errors.New("value is out of range")
	ErrValueIsRequired   = errors.New("value is required")
	// ErrInvalidTransition means a state machine rejected the requested edge (HTTP 409).
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrConcurrentModification means the store aborted the transaction because
	// another one touched the same rows. The operation may be retried as a whole.
	ErrConcurrentModification = errors.New("concurrent modification")
)

// ObjectNotFoundError reports a missing aggregate or reference.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewObjectNotFoundError reports that the object named paramName with the given id does not exist.
func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{
		ParamName: paramName,
		ID:        id,
	}
}

// NewObjectNotFoundErrorWithCause is NewObjectNotFoundError carrying the underlying failure.
func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{
		ParamName: paramName,
		ID:        id,
		Cause:     cause,
	}
}

// Error formats the id, plus the parameter name and cause when a cause is set.
func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %v)",
			ErrObjectNotFound, sanitize(e.ParamName), sanitize(fmt.Sprintf("%s", e.ID)), e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, sanitize(fmt.Sprintf("%s", e.ID)))
}

// Unwrap returns ErrObjectNotFound.
func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// Is matches the cause chain as well as the sentinel.
func (e *ObjectNotFoundError) Is(target error) bool {
	return e.Cause != nil && errors.Is(e.Cause, target)
}

// ValueIsInvalidError reports a value with a bad shape or format.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewValueIsInvalidError reports a malformed value for paramName.
func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

// NewValueIsInvalidErrorWithCause is NewValueIsInvalidError carrying the reason.
func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{
		ParamName: paramName,
		Cause:     cause,
	}
}

// Error formats the parameter name and, when set, the cause.
func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrValueIsInvalid, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName)
}

// Unwrap returns ErrValueIsInvalid.
func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// Is matches the cause chain as well as the sentinel.
func (e *ValueIsInvalidError) Is(target error) bool {
	return e.Cause != nil && errors.Is(e.Cause, target)
}

// ValueIsOutOfRangeError reports a value outside [Min, Max].
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

// NewValueIsOutOfRangeError reports value outside [minValue, maxValue].
//
// Parameters:
//   - paramName: name of the offending field
//   - value: the rejected value
//   - minValue, maxValue: the accepted bounds; pass nil for an open side
func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{
		ParamName: paramName,
		Value:     value,
		Min:       minValue,
		Max:       maxValue,
	}
}

// NewValueIsOutOfRangeErrorWithCause is NewValueIsOutOfRangeError carrying a domain sentinel as cause.
func NewValueIsOutOfRangeErrorWithCause(
	paramName string,
	value, minValue, maxValue any,
	cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{
		ParamName: paramName,
		Value:     value,
		Min:       minValue,
		Max:       maxValue,
		Cause:     cause,
	}
}

// Error formats the value against its bounds.
func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %s is %s, min value is %s, max value is %s",
		ErrValueIsInvalid, sanitize(fmt.Sprint(e.Value)), e.ParamName,
		sanitize(fmt.Sprint(e.Min)), sanitize(fmt.Sprint(e.Max)))
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %v)", msg, e.Cause)
	}
	return msg
}

// Unwrap returns ErrValueIsOutOfRange.
func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// Is matches the cause chain as well as the sentinel.
func (e *ValueIsOutOfRangeError) Is(target error) bool {
	return e.Cause != nil && errors.Is(e.Cause, target)
}

// ValueIsRequiredError reports a missing mandatory value.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

// NewValueIsRequiredError reports that paramName is missing or blank.
func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

// NewValueIsRequiredErrorWithCause is NewValueIsRequiredError carrying the underlying failure.
func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{
		ParamName: paramName,
		Cause:     cause,
	}
}

// Error formats the parameter name and, when set, the cause.
func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrValueIsRequired, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName)
}

// Unwrap returns ErrValueIsRequired.
func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// Is matches the cause chain as well as the sentinel.
func (e *ValueIsRequiredError) Is(target error) bool {
	return e.Cause != nil && errors.Is(e.Cause, target)
}

// InvalidTransitionError reports a state machine edge that is not in the
// adjacency table, or a precondition on another machine that is not met.
type InvalidTransitionError struct {
	Machine string
	From    string
	To      string
	Cause   error
}

// NewInvalidTransitionError reports that machine cannot move from -> to.
//
// Parameters:
//   - machine: the state machine name, "status" or "financialStatus"
//   - from, to: state names as rendered by their String methods
func NewInvalidTransitionError(machine, from, to string) *InvalidTransitionError {
	return &InvalidTransitionError{
		Machine: machine,
		From:    from,
		To:      to,
	}
}

// NewInvalidTransitionErrorWithCause is NewInvalidTransitionError carrying the failed precondition, such as a domain sentinel.
func NewInvalidTransitionErrorWithCause(machine, from, to string, cause error) *InvalidTransitionError {
	return &InvalidTransitionError{
		Machine: machine,
		From:    from,
		To:      to,
		Cause:   cause,
	}
}

// Error formats the machine and edge, plus the cause when set.
func (e *InvalidTransitionError) Error() string {
	msg := fmt.Sprintf("%s: %s %s -> %s", ErrInvalidTransition, e.Machine, e.From, e.To)
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %v)", msg, e.Cause)
	}
	return msg
}

// Unwrap returns ErrInvalidTransition.
func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// Is matches the cause chain as well as the sentinel.
func (e *InvalidTransitionError) Is(target error) bool {
	return e.Cause != nil && errors.Is(e.Cause, target)
}

// ConcurrentModificationError wraps a store failure caused by a competing
// transaction (serialization failure, deadlock, lock timeout).
type ConcurrentModificationError struct {
	Cause error
}

// NewConcurrentModificationError wraps the driver error that aborted the transaction.
func NewConcurrentModificationError(cause error) *ConcurrentModificationError {
	return &ConcurrentModificationError{Cause: cause}
}

// Error formats the sentinel and the driver error.
func (e *ConcurrentModificationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %v)", ErrConcurrentModification, e.Cause)
	}
	return ErrConcurrentModification.Error()
}

// Unwrap returns ErrConcurrentModification.
func (e *ConcurrentModificationError) Unwrap() error {
	return ErrConcurrentModification
}

// Is matches the cause chain as well as the sentinel.
func (e *ConcurrentModificationError) Is(target error) bool {
	return e.Cause != nil && errors.Is(e.Cause, target)
}

// IsValidation reports whether err belongs to the caller-fixable input family.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValueIsInvalid) ||
		errors.Is(err, ErrValueIsRequired) ||
		errors.Is(err, ErrValueIsOutOfRange)
}

func sanitize(s string) string {
	return strings.ReplaceAll(s, "\n", " ")
}
