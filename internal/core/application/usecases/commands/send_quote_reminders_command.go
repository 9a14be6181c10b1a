package commands

import (
	"errors"
	"time"

	"eventrent/internal/pkg/errs"
	"eventrent/internal/pkg/guard"
)

var ErrSendQuoteRemindersCommandIsNotConstructed = errors.New(
	"SendQuoteRemindersCommand must be created via NewSendQuoteRemindersCommand constructor",
)

// SendQuoteRemindersCommand nudges clients whose quote has been waiting for
// longer than staleAfter. Each order is reminded at most once per interval.
type SendQuoteRemindersCommand struct {
	staleAfter time.Duration
	interval   time.Duration

	guard guard.ConstructorGuard
}

// NewSendQuoteRemindersCommand creates a reminder sweep. Both durations must be
// positive.
func NewSendQuoteRemindersCommand(staleAfter, interval time.Duration) (SendQuoteRemindersCommand, error) {
	var staleErr, intervalErr error
	if staleAfter <= 0 {
		staleErr = errs.NewValueIsOutOfRangeError("staleAfter", staleAfter, "0 exclusive", "unbounded")
	}
	if interval <= 0 {
		intervalErr = errs.NewValueIsOutOfRangeError("interval", interval, "0 exclusive", "unbounded")
	}
	if err := errors.Join(staleErr, intervalErr); err != nil {
		return SendQuoteRemindersCommand{}, err
	}
	return SendQuoteRemindersCommand{
		staleAfter: staleAfter,
		interval:   interval,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrSendQuoteRemindersCommandIsNotConstructed if validation fails.
func (c SendQuoteRemindersCommand) Validate() error {
	return c.guard.Validate(ErrSendQuoteRemindersCommandIsNotConstructed)
}

// StaleAfter is how long a quote waits before a reminder is due.
func (c SendQuoteRemindersCommand) StaleAfter() time.Duration {
	return c.staleAfter
}

// Interval is the minimum gap between two reminders for one order.
func (c SendQuoteRemindersCommand) Interval() time.Duration {
	return c.interval
}
