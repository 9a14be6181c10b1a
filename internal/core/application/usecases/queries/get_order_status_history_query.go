package queries

import (
	"errors"
	"time"

	"eventrent/internal/core/domain/model/kernel"
	"eventrent/internal/core/domain/model/order"
	"eventrent/internal/pkg/guard"
)

var ErrGetOrderStatusHistoryQueryIsNotConstructed = errors.New(
	"GetOrderStatusHistoryQuery must be created via NewGetOrderStatusHistoryQuery constructor",
)

// GetOrderStatusHistoryQuery reads an order's audit trail, oldest first.
type GetOrderStatusHistoryQuery struct {
	orderID kernel.UUID
	guard   guard.ConstructorGuard
}

// NewGetOrderStatusHistoryQuery returns an error if orderID is invalid.
func NewGetOrderStatusHistoryQuery(orderID kernel.UUID) (GetOrderStatusHistoryQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderStatusHistoryQuery{}, err
	}
	return GetOrderStatusHistoryQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrderStatusHistoryQueryIsNotConstructed if validation fails.
func (q GetOrderStatusHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderStatusHistoryQueryIsNotConstructed)
}

// OrderID returns the order whose trail is read.
func (q GetOrderStatusHistoryQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetOrderStatusHistoryQueryResponse is one history entry.
type GetOrderStatusHistoryQueryResponse struct {
	ID        kernel.UUID
	Status    order.Status
	Notes     string
	UpdatedBy kernel.UUID
	Timestamp time.Time
}
