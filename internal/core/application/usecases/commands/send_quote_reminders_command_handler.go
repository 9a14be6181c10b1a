package commands

import (
	"context"
	"errors"
	"fmt"

	"eventrent/internal/core/domain/model/order"
	"eventrent/internal/core/ports"
	"eventrent/internal/pkg/clock"
)

// SendQuoteRemindersCommandHandler dispatches QUOTE_REMINDER for stale quotes.
// It changes no order state; the reminder guard keeps several running
// instances from reminding the same client twice.
//
// A failed dispatch releases the order's slot so the next run retries it. A
// guard failure for one order does not stop the batch: the remaining orders
// are still reminded and the failures are returned joined.
type SendQuoteRemindersCommandHandler struct {
	uowFactory OrderUoWFactory
	guard      ports.ReminderGuard
	clock      clock.Clock
	notifier   Notifier
}

// NewSendQuoteRemindersCommandHandler creates the reminder sweep handler.
//
// Parameters:
//   - uowFactory: reads the stale quotes; nothing is written
//   - guard: claims one reminder slot per order and interval
//   - clk: the reference time for staleness
//   - notifier: sends QUOTE_REMINDER
func NewSendQuoteRemindersCommandHandler(
	uowFactory OrderUoWFactory,
	guard ports.ReminderGuard,
	clk clock.Clock,
	notifier Notifier,
) SendQuoteRemindersCommandHandler {
	return SendQuoteRemindersCommandHandler{
		uowFactory: uowFactory,
		guard:      guard,
		clock:      clk,
		notifier:   notifier,
	}
}

// Handle returns the number of reminders sent.
func (h SendQuoteRemindersCommandHandler) Handle(ctx context.Context, cmd SendQuoteRemindersCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	stale, err := uow.OrderRepository().ListQuotedBefore(ctx, h.clock.Now().Add(-cmd.StaleAfter()))
	if err != nil {
		return 0, err
	}
	// Read-only: release the snapshot before talking to Redis and Kafka.
	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	sent := 0
	var failures []error
	for _, o := range stale {
		acquired, acquireErr := h.guard.Acquire(ctx, o.ID(), cmd.Interval())
		if acquireErr != nil {
			failures = append(failures, acquireErr)
			continue
		}
		if !acquired {
			continue
		}
		if h.notifier.Send(ctx, order.Notification{Type: order.NotificationQuoteReminder, OrderID: o.ID()}) {
			sent++
			continue
		}
		if releaseErr := h.guard.Release(ctx, o.ID()); releaseErr != nil {
			failures = append(failures, fmt.Errorf("release reminder slot: %w", releaseErr))
		}
	}
	return sent, errors.Join(failures...)
}
