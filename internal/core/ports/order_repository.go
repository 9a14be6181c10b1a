package ports

import (
	"context"
	"time"

	"eventrent/internal/core/domain/model/kernel"
	"eventrent/internal/core/domain/model/order"
)

// OrderRepository persists order aggregates with their items and history.
type OrderRepository interface {
	// Add stores a new order together with its items and history.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update stores status and pricing changes and appends history entries
	// that are not stored yet. Items are immutable and never rewritten.
	Update(ctx context.Context, aggregate *order.Order) error

	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate loads the order and locks its row until the transaction ends,
	// so two concurrent transitions on one order serialize.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// ListQuotedBefore returns orders still in QUOTED whose quote was sent
	// before the given instant, oldest first.
	ListQuotedBefore(ctx context.Context, before time.Time) ([]*order.Order, error)
}
