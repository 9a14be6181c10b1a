package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"eventrent/internal/core/domain/model/asset"
	"eventrent/internal/core/domain/model/booking"
	"eventrent/internal/core/domain/model/kernel"
	"eventrent/internal/pkg/errs"
)

// Buffer defaults, in days.
const (
	DefaultPrepBufferDays   = 5
	DefaultReturnBufferDays = 3
)

// ErrInsufficientAvailability is the sentinel behind every AvailabilityError.
var ErrInsufficientAvailability = errors.New("insufficient availability")

// BufferPolicy is the number of days reserved around an event: prep and
// delivery before it, return and inspection after it.
type BufferPolicy struct {
	PrepBufferDays   int
	ReturnBufferDays int
}

// DefaultBufferPolicy returns 5 prep days and 3 return days.
func DefaultBufferPolicy() BufferPolicy {
	return BufferPolicy{
		PrepBufferDays:   DefaultPrepBufferDays,
		ReturnBufferDays: DefaultReturnBufferDays,
	}
}

// Validate rejects negative buffers.
func (p BufferPolicy) Validate() error {
	return errors.Join(
		nonNegative("prepBufferDays", p.PrepBufferDays),
		nonNegative("returnBufferDays", p.ReturnBufferDays),
	)
}

// ItemRequest asks for quantity units of one asset.
type ItemRequest struct {
	AssetID  kernel.UUID
	Quantity int
}

// AssetAvailability is the booking picture of one asset over one period.
type AssetAvailability struct {
	AssetID           kernel.UUID
	TotalQuantity     int
	BookedQuantity    int
	AvailableQuantity int
	Bookings          []*booking.Booking
}

// Shortfall describes an item that cannot be served. NextAvailableDate is
// the day after the latest overlapping booking ends, or nil when the request
// exceeds the asset's total quantity regardless of bookings.
type Shortfall struct {
	AssetID           kernel.UUID
	AssetName         string
	Requested         int
	Available         int
	BlockedPeriod     kernel.DateRange
	NextAvailableDate *kernel.Date
}

// CheckResult is the outcome of checking a whole request.
type CheckResult struct {
	AllAvailable     bool
	UnavailableItems []Shortfall
}

// AvailabilityError carries the per-asset shortfalls of a failed check or booking.
type AvailabilityError struct {
	Shortfalls []Shortfall
}

// NewAvailabilityError wraps the shortfalls of a failed check.
func NewAvailabilityError(shortfalls []Shortfall) *AvailabilityError {
	return &AvailabilityError{Shortfalls: shortfalls}
}

// Error lists every shortfall on one line.
func (e *AvailabilityError) Error() string {
	parts := make([]string, 0, len(e.Shortfalls))
	for _, s := range e.Shortfalls {
		parts = append(parts, fmt.Sprintf("%s (%s): requested %d, available %d for %s",
			s.AssetName, s.AssetID, s.Requested, s.Available, s.BlockedPeriod))
	}
	return fmt.Sprintf("%s: %s", ErrInsufficientAvailability, strings.Join(parts, "; "))
}

// Unwrap returns ErrInsufficientAvailability.
func (e *AvailabilityError) Unwrap() error {
	return ErrInsufficientAvailability
}

// AvailabilityEngine is the pure date and quantity arithmetic of the booking
// ledger. It never touches storage; callers hand it the bookings to consider.
type AvailabilityEngine struct {
	policy BufferPolicy
}

// NewAvailabilityEngine creates an engine for the given buffers.
//
// Parameters:
//   - policy: prep and return buffers in days, both non-negative
//
// Returns:
//   - AvailabilityEngine: ready to use, safe to copy
//   - error: a validation error when a buffer is negative
//
// Example:
//
//	engine, err := services.NewAvailabilityEngine(services.DefaultBufferPolicy())
//	if err != nil {
//	    return err
//	}
//	blocked, err := engine.BlockedPeriod(event, 0)
func NewAvailabilityEngine(policy BufferPolicy) (AvailabilityEngine, error) {
	if err := policy.Validate(); err != nil {
		return AvailabilityEngine{}, err
	}
	return AvailabilityEngine{policy: policy}, nil
}

// Policy returns the buffers the engine was created with.
func (e AvailabilityEngine) Policy() BufferPolicy {
	return e.policy
}

// BlockedPeriod widens an event to the days its units are unavailable:
// [start - (prep + refurb), end + return]. Refurb time lands on the prep side only.
func (e AvailabilityEngine) BlockedPeriod(event kernel.DateRange, refurbDays int) (kernel.DateRange, error) {
	if err := errors.Join(event.Validate(), nonNegative("refurbDays", refurbDays)); err != nil {
		return kernel.DateRange{}, err
	}
	return kernel.NewDateRange(
		event.From().AddDays(-(e.policy.PrepBufferDays + refurbDays)),
		event.Until().AddDays(e.policy.ReturnBufferDays),
	)
}

// Availability sums the asset's bookings overlapping period. Bookings of other
// assets or outside period are ignored. Available never drops below zero even
// if the asset was shrunk under existing bookings.
func (e AvailabilityEngine) Availability(
	a *asset.Asset,
	bookings []*booking.Booking,
	period kernel.DateRange,
) AssetAvailability {
	result := AssetAvailability{
		AssetID:       a.ID(),
		TotalQuantity: a.TotalQuantity(),
		Bookings:      make([]*booking.Booking, 0),
	}
	for _, b := range bookings {
		if !b.AssetID().IsEqual(a.ID()) || !b.Overlaps(period) {
			continue
		}
		result.BookedQuantity += b.Quantity()
		result.Bookings = append(result.Bookings, b)
	}
	result.AvailableQuantity = max(0, result.TotalQuantity-result.BookedQuantity)
	return result
}

// CheckItems checks every requested asset over its own blocked period, built
// from the event and that asset's refurb estimate. Requests for the same asset
// are summed first. bookingsByAsset must hold at least the bookings
// overlapping each asset's blocked period.
func (e AvailabilityEngine) CheckItems(
	items []ItemRequest,
	assets map[kernel.UUID]*asset.Asset,
	bookingsByAsset map[kernel.UUID][]*booking.Booking,
	event kernel.DateRange,
) (CheckResult, error) {
	requested, ordered, err := aggregateRequests(items)
	if err != nil {
		return CheckResult{}, err
	}

	result := CheckResult{AllAvailable: true, UnavailableItems: make([]Shortfall, 0)}
	for _, assetID := range ordered {
		a, ok := assets[assetID]
		if !ok {
			return CheckResult{}, errs.NewObjectNotFoundError("asset", assetID.String())
		}
		period, err := e.BlockedPeriod(event, a.RefurbDays())
		if err != nil {
			return CheckResult{}, err
		}
		if shortfall := e.shortfall(a, requested[assetID], bookingsByAsset[assetID], period); shortfall != nil {
			result.AllAvailable = false
			result.UnavailableItems = append(result.UnavailableItems, *shortfall)
		}
	}
	return result, nil
}

// shortfall returns nil when quantity fits into the asset over period.
func (e AvailabilityEngine) shortfall(
	a *asset.Asset,
	quantity int,
	bookings []*booking.Booking,
	period kernel.DateRange,
) *Shortfall {
	availability := e.Availability(a, bookings, period)
	if quantity <= availability.AvailableQuantity {
		return nil
	}
	return &Shortfall{
		AssetID:           a.ID(),
		AssetName:         a.Name(),
		Requested:         quantity,
		Available:         availability.AvailableQuantity,
		BlockedPeriod:     period,
		NextAvailableDate: nextAvailableDate(availability.Bookings),
	}
}

// PeakConcurrentQuantity is the highest number of units claimed on any single
// day on or after from. Days before from are ignored.
func (e AvailabilityEngine) PeakConcurrentQuantity(bookings []*booking.Booking, from kernel.Date) int {
	type event struct {
		day   kernel.Date
		delta int
	}
	events := make([]event, 0, 2*len(bookings))
	for _, b := range bookings {
		if b.BlockedUntil().Before(from) {
			continue
		}
		start := kernel.MaxDate(b.BlockedFrom(), from)
		events = append(events,
			event{day: start, delta: b.Quantity()},
			event{day: b.BlockedUntil().AddDays(1), delta: -b.Quantity()},
		)
	}
	// Releases sort before claims on the same day: a booking ending yesterday
	// frees its units before today's booking takes them.
	sort.Slice(events, func(i, j int) bool {
		if !events[i].day.Equal(events[j].day) {
			return events[i].day.Before(events[j].day)
		}
		return events[i].delta < events[j].delta
	})

	peak, current := 0, 0
	for _, ev := range events {
		current += ev.delta
		peak = max(peak, current)
	}
	return peak
}

func aggregateRequests(items []ItemRequest) (map[kernel.UUID]int, []kernel.UUID, error) {
	if len(items) == 0 {
		return nil, nil, errs.NewValueIsRequiredError("items")
	}
	requested := make(map[kernel.UUID]int, len(items))
	ordered := make([]kernel.UUID, 0, len(items))
	for _, item := range items {
		if err := item.AssetID.Validate(); err != nil {
			return nil, nil, err
		}
		if item.Quantity < 1 {
			return nil, nil, errs.NewValueIsOutOfRangeError("quantity", item.Quantity, 1, "unbounded")
		}
		if _, seen := requested[item.AssetID]; !seen {
			ordered = append(ordered, item.AssetID)
		}
		requested[item.AssetID] += item.Quantity
	}
	return requested, ordered, nil
}

func nextAvailableDate(overlapping []*booking.Booking) *kernel.Date {
	if len(overlapping) == 0 {
		return nil
	}
	latest := overlapping[0].BlockedUntil()
	for _, b := range overlapping[1:] {
		latest = kernel.MaxDate(latest, b.BlockedUntil())
	}
	next := latest.AddDays(1)
	return &next
}

func nonNegative(name string, v int) error {
	if v < 0 {
		return errs.NewValueIsOutOfRangeError(name, v, 0, "unbounded")
	}
	return nil
}
