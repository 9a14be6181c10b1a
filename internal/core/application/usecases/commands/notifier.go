package commands

import (
	"context"
	"log/slog"

	"eventrent/internal/core/domain/model/order"
	"eventrent/internal/core/ports"
)

// Notifier hands committed notification intents to the dispatcher. A failed
// dispatch is logged and dropped; the state change it describes is already
// durable.
type Notifier struct {
	dispatcher ports.NotificationDispatcher
	logger     *slog.Logger
}

// NewNotifier wraps dispatcher; delivery failures are logged through logger and never returned.
func NewNotifier(dispatcher ports.NotificationDispatcher, logger *slog.Logger) Notifier {
	return Notifier{
		dispatcher: dispatcher,
		logger:     logger.With("component", "notifier"),
	}
}

// Publish dispatches the order's recorded notifications and clears them.
func (n Notifier) Publish(ctx context.Context, o *order.Order) {
	for _, notification := range o.Notifications() {
		n.Send(ctx, notification)
	}
	o.ClearNotifications()
}

// Send dispatches one notification and reports whether it went out.
func (n Notifier) Send(ctx context.Context, notification order.Notification) bool {
	if err := n.dispatcher.Dispatch(ctx, notification); err != nil {
		n.logger.WarnContext(ctx, "Notification dispatch failed",
			"type", string(notification.Type),
			"order_id", notification.OrderID.String(),
			"error", err,
		)
		return false
	}
	return true
}
