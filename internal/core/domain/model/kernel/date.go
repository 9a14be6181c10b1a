package kernel

import (
	"errors"
	"fmt"
	"time"

	"eventrent/internal/pkg/errs"
)

// DateLayout is the wire and storage layout of a calendar date.
const DateLayout = "2006-01-02"

// ErrDateIsNotConstructed is returned when validating a zero-value Date.
var ErrDateIsNotConstructed = errs.NewValueIsRequiredError("date must be created via NewDate, DateOf or ParseDate")

// Date is a calendar day with no time-of-day or zone. All booking arithmetic
// runs on whole days, so every Date is normalized to UTC midnight.
type Date struct {
	t time.Time
}

// NewDate builds a Date from its calendar components. Out-of-range components
// are normalized the way time.Date normalizes them.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf returns the calendar day of t as observed in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	if s == "" {
		return Date{}, ErrDateIsNotConstructed
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, errs.NewValueIsInvalidErrorWithCause("date", err)
	}
	return DateOf(t), nil
}

// AddDays returns the date n days later (earlier for negative n).
func (d Date) AddDays(n int) Date {
	return Date{t: d.t.AddDate(0, 0, n)}
}

// Before reports whether d is an earlier day than other.
func (d Date) Before(other Date) bool {
	return d.t.Before(other.t)
}

// After reports whether d is a later day than other.
func (d Date) After(other Date) bool {
	return d.t.After(other.t)
}

// Equal reports whether both dates name the same day.
func (d Date) Equal(other Date) bool {
	return d.t.Equal(other.t)
}

// DaysUntil returns the signed number of days from d to other.
func (d Date) DaysUntil(other Date) int {
	return int(other.t.Sub(d.t).Round(time.Hour).Hours() / 24)
}

// Time returns UTC midnight of the day.
func (d Date) Time() time.Time {
	return d.t
}

// IsZero reports whether d was never constructed.
func (d Date) IsZero() bool {
	return d.t.IsZero()
}

// String formats d with DateLayout.
func (d Date) String() string {
	return d.t.Format(DateLayout)
}

// Validate rejects the zero Date.
func (d Date) Validate() error {
	if d.IsZero() {
		return ErrDateIsNotConstructed
	}
	return nil
}

// MinDate returns the earlier of a and b.
func MinDate(a, b Date) Date {
	if b.Before(a) {
		return b
	}
	return a
}

// MaxDate returns the later of a and b.
func MaxDate(a, b Date) Date {
	if b.After(a) {
		return b
	}
	return a
}

// ErrDateRangeIsNotConstructed is returned when validating a zero-value DateRange.
var ErrDateRangeIsNotConstructed = errors.New("DateRange must be created via NewDateRange constructor")

// DateRange is an inclusive span of days: both From and Until belong to it.
type DateRange struct {
	from  Date
	until Date
}

// NewDateRange builds [from, until]; until may equal from but not precede it.
func NewDateRange(from, until Date) (DateRange, error) {
	if err := errors.Join(from.Validate(), until.Validate()); err != nil {
		return DateRange{}, err
	}
	if until.Before(from) {
		return DateRange{}, errs.NewValueIsInvalidErrorWithCause(
			"date range",
			fmt.Errorf("end date %s is before start date %s", until, from),
		)
	}
	return DateRange{from: from, until: until}, nil
}

// From returns the first day of the range.
func (r DateRange) From() Date {
	return r.from
}

// Until returns the last day of the range, inclusive.
func (r DateRange) Until() Date {
	return r.until
}

// Days returns the number of calendar days covered, counting both ends.
func (r DateRange) Days() int {
	return r.from.DaysUntil(r.until) + 1
}

// Overlaps reports whether the two ranges share at least one day.
func (r DateRange) Overlaps(other DateRange) bool {
	return RangesOverlap(r.from, r.until, other.from, other.until)
}

// Validate rejects a zero-value DateRange.
func (r DateRange) Validate() error {
	if r.from.IsZero() || r.until.IsZero() {
		return ErrDateRangeIsNotConstructed
	}
	return nil
}

// String renders the range as "[from, until]".
func (r DateRange) String() string {
	return fmt.Sprintf("[%s, %s]", r.from, r.until)
}

// RangesOverlap is the inclusive overlap test s1 <= e2 && e1 >= s2.
func RangesOverlap(s1, e1, s2, e2 Date) bool {
	return !s1.After(e2) && !e1.Before(s2)
}
