package commands_test

import (
	"testing"

	"eventrent/internal/core/application/usecases/commands"
	"eventrent/internal/core/domain/model/order"
	"eventrent/internal/core/domain/services"
	"eventrent/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApproveQuote_CreatesBookingsMatchingItems(t *testing.T) {
	f := newFixture(t)
	chair := f.addAsset("Chair", 10)
	table := f.addAsset("Table", 4)
	orderID := f.submit(
		commands.CartItem{AssetID: chair.ID(), Quantity: 6},
		commands.CartItem{AssetID: table.ID(), Quantity: 2},
	)
	f.quote(orderID)

	require.NoError(t, f.confirm(orderID))

	o := f.order(orderID)
	assert.Equal(t, order.Confirmed, o.Status())
	assert.Equal(t, order.QuoteAccepted, o.FinancialStatus())

	bookings, err := f.uow.bookings.ListByOrder(f.ctx, orderID)
	require.NoError(t, err)
	require.Len(t, bookings, len(o.Items()))
	booked := 0
	for _, b := range bookings {
		booked += b.Quantity()
		assert.Equal(t, "2025-06-05", b.BlockedFrom().String())
		assert.Equal(t, "2025-06-15", b.BlockedUntil().String())
	}
	assert.Equal(t, o.TotalQuantity(), booked)
	assert.Contains(t, f.dispatcher.Types(), order.NotificationQuoteApproved)
}

func TestApproveQuote_ShortfallKeepsOrderQuoted(t *testing.T) {
	f := newFixture(t)
	chair := f.addAsset("Chair", 5)
	first := f.submit(commands.CartItem{AssetID: chair.ID(), Quantity: 4})
	second := f.submit(commands.CartItem{AssetID: chair.ID(), Quantity: 4})
	f.quote(first)
	f.quote(second)
	require.NoError(t, f.confirm(first))
	updates := f.uow.orders.updates
	commits := f.uow.commits

	err := f.confirm(second)

	var availErr *services.AvailabilityError
	require.ErrorAs(t, err, &availErr)
	assert.Equal(t, 1, availErr.Shortfalls[0].Available)
	assert.Equal(t, updates, f.uow.orders.updates, "the order must not be stored")
	assert.Equal(t, commits, f.uow.commits, "the transaction must not commit")
}

func TestApproveQuote_RejectsUnquotedOrder(t *testing.T) {
	f := newFixture(t)
	chair := f.addAsset("Chair", 5)
	orderID := f.submit(commands.CartItem{AssetID: chair.ID(), Quantity: 1})

	err := f.confirm(orderID)

	assert.ErrorIs(t, err, errs.ErrInvalidTransition)
	assert.Empty(t, f.uow.bookings.rows)
}

func TestDeclineQuote(t *testing.T) {
	f := newFixture(t)
	chair := f.addAsset("Chair", 5)
	orderID := f.submit(commands.CartItem{AssetID: chair.ID(), Quantity: 1})
	f.quote(orderID)

	cmd, err := commands.NewDeclineQuoteCommand(orderID, f.userID, "Budget cut")
	require.NoError(t, err)
	require.NoError(t,
		commands.NewDeclineQuoteCommandHandler(uowFactory{f.uow}, f.engine, f.clock, f.notifier).Handle(f.ctx, cmd))

	o := f.order(orderID)
	assert.Equal(t, order.Declined, o.Status())
	assert.Equal(t, order.PendingQuote, o.FinancialStatus())
	assert.Contains(t, f.dispatcher.Types(), order.NotificationQuoteDeclined)

	err = f.advance(orderID, order.InPreparation)
	assert.ErrorIs(t, err, errs.ErrInvalidTransition)
}

func TestAdvance_FullFulfillmentReleasesBookingsOnClose(t *testing.T) {
	f := newFixture(t)
	chair := f.addAsset("Chair", 5)
	orderID := f.submit(commands.CartItem{AssetID: chair.ID(), Quantity: 5})
	f.quote(orderID)
	require.NoError(t, f.confirm(orderID))

	steps := []order.Status{
		order.InPreparation,
		order.ReadyForDelivery,
		order.InTransit,
		order.Delivered,
		order.InUse,
		order.AwaitingReturn,
	}
	for _, step := range steps {
		require.NoError(t, f.advance(orderID, step), "advance to %s", step)
		assert.Len(t, f.uow.bookings.rows, 1, "bookings held while %s", step)
	}

	require.NoError(t, f.advance(orderID, order.Closed))

	assert.Equal(t, order.Closed, f.order(orderID).Status())
	assert.Empty(t, f.uow.bookings.rows)
	assert.ErrorIs(t, f.advance(orderID, order.InPreparation), errs.ErrInvalidTransition)

	types := f.dispatcher.Types()
	for _, want := range []order.NotificationType{
		order.NotificationReadyForDelivery,
		order.NotificationInTransit,
		order.NotificationDelivered,
		order.NotificationOrderClosed,
	} {
		assert.Contains(t, types, want)
	}
}

func TestAdvance_SkippingAStepIsRejected(t *testing.T) {
	f := newFixture(t)
	chair := f.addAsset("Chair", 5)
	orderID := f.submit(commands.CartItem{AssetID: chair.ID(), Quantity: 1})
	f.quote(orderID)
	require.NoError(t, f.confirm(orderID))

	err := f.advance(orderID, order.InTransit)

	assert.ErrorIs(t, err, errs.ErrInvalidTransition)
	assert.Equal(t, order.Confirmed, f.order(orderID).Status())
}

func TestAdvance_DedicatedStatusesAreRejected(t *testing.T) {
	f := newFixture(t)
	chair := f.addAsset("Chair", 5)
	orderID := f.submit(commands.CartItem{AssetID: chair.ID(), Quantity: 1})
	f.quote(orderID)

	err := f.advance(orderID, order.Confirmed)

	assert.ErrorIs(t, err, order.ErrDedicatedOperation)
	assert.Empty(t, f.uow.bookings.rows)
}

func TestUpdateFinancialStatus_InvoicingFlow(t *testing.T) {
	f := newFixture(t)
	chair := f.addAsset("Chair", 5)
	orderID := f.submit(commands.CartItem{AssetID: chair.ID(), Quantity: 1})
	f.quote(orderID)
	require.NoError(t, f.confirm(orderID))
	handler := commands.NewUpdateFinancialStatusCommandHandler(uowFactory{f.uow}, f.clock, f.notifier)

	for _, to := range []order.FinancialStatus{order.PendingInvoice, order.Invoiced, order.Paid} {
		cmd, err := commands.NewUpdateFinancialStatusCommand(orderID, f.userID, to, "")
		require.NoError(t, err)
		require.NoError(t, handler.Handle(f.ctx, cmd), "move to %s", to)
	}

	o := f.order(orderID)
	assert.Equal(t, order.Paid, o.FinancialStatus())
	assert.Equal(t, order.Confirmed, o.Status())
	history := o.History()
	assert.Equal(t, "Financial status INVOICED -> PAID", history[len(history)-1].Notes())
	assert.Equal(t, order.Confirmed, history[len(history)-1].Status())
	types := f.dispatcher.Types()
	assert.Contains(t, types, order.NotificationInvoiceGenerated)
	assert.Contains(t, types, order.NotificationPaymentConfirmed)

	cmd, err := commands.NewUpdateFinancialStatusCommand(orderID, f.userID, order.Invoiced, "")
	require.NoError(t, err)
	assert.ErrorIs(t, handler.Handle(f.ctx, cmd), errs.ErrInvalidTransition)
}
