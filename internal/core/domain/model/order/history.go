package order

import (
	"time"

	"eventrent/internal/core/domain/model/kernel"
)

// HistoryEntry is one line of the append-only audit trail. Entries are never
// changed or removed once recorded.
type HistoryEntry struct {
	id        kernel.UUID
	orderID   kernel.UUID
	status    Status
	notes     string
	updatedBy kernel.UUID
	timestamp time.Time
}

// RestoreHistoryEntry rebuilds an entry from storage. New entries are only created by the Order.
func RestoreHistoryEntry(id, orderID kernel.UUID, status Status, notes string, updatedBy kernel.UUID, at time.Time) HistoryEntry {
	return HistoryEntry{
		id:        id,
		orderID:   orderID,
		status:    status,
		notes:     notes,
		updatedBy: updatedBy,
		timestamp: at,
	}
}

// ID returns the entry identifier.
func (h HistoryEntry) ID() kernel.UUID {
	return h.id
}

// OrderID returns the order the entry belongs to.
func (h HistoryEntry) OrderID() kernel.UUID {
	return h.orderID
}

// Status is the fulfillment status after the change.
func (h HistoryEntry) Status() Status {
	return h.status
}

// Notes describes the change in plain text.
func (h HistoryEntry) Notes() string {
	return h.notes
}

// UpdatedBy is the user who made the change.
func (h HistoryEntry) UpdatedBy() kernel.UUID {
	return h.updatedBy
}

// Timestamp is when the change was recorded.
func (h HistoryEntry) Timestamp() time.Time {
	return h.timestamp
}
