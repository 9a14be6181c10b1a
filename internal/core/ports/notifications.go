package ports

import (
	"context"
	"time"

	"eventrent/internal/core/domain/model/kernel"
	"eventrent/internal/core/domain/model/order"
)

// NotificationDispatcher hands a notification intent to the delivery side.
// It is fire-and-forget for the core: callers log failures and move on.
type NotificationDispatcher interface {
	Dispatch(ctx context.Context, n order.Notification) error
}

// ReminderGuard lets a reminder go out at most once per order within ttl.
type ReminderGuard interface {
	// Acquire reports true when the caller won the right to send the reminder.
	Acquire(ctx context.Context, orderID kernel.UUID, ttl time.Duration) (bool, error)
	// Release gives a claimed slot back so the next run may try again.
	Release(ctx context.Context, orderID kernel.UUID) error
}
