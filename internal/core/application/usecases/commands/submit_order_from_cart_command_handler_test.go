package commands_test

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"eventrent/internal/core/application/usecases/commands"
	"eventrent/internal/core/domain/model/asset"
	"eventrent/internal/core/domain/model/kernel"
	"eventrent/internal/core/domain/model/order"
	"eventrent/internal/core/domain/services"
	"eventrent/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSubmitOrderFromCart_Success(t *testing.T) {
	f := newFixture(t)
	chair := f.addAsset("Chair", 5)
	table := f.addAsset("Table", 2)
	handler := commands.NewSubmitOrderFromCartCommandHandler(uowFactory{f.uow}, f.engine, f.pricing, f.clock, f.notifier)

	result, err := handler.Handle(f.ctx, f.submitCommand(f.event(),
		commands.CartItem{AssetID: chair.ID(), Quantity: 5},
		commands.CartItem{AssetID: table.ID(), Quantity: 1},
	))

	require.NoError(t, err)
	assert.Equal(t, order.PricingReview, result.Status)
	assert.Equal(t, 2, result.ItemCount)
	assert.True(t, decimal.NewFromInt(3).Equal(result.CalculatedVolume))
	assert.Equal(t, 1, f.uow.commits)
	assert.Empty(t, f.uow.bookings.rows, "submission must not book")

	stored := f.order(result.OrderID)
	assert.Equal(t, order.PendingQuote, stored.FinancialStatus())
	assert.Len(t, stored.History(), 2)
	assert.Equal(t, []order.NotificationType{order.NotificationOrderSubmitted}, f.dispatcher.Types())
}

func TestSubmitOrderFromCart_AttachesMatchedTier(t *testing.T) {
	f := newFixture(t)
	chair := f.addAsset("Chair", 5)
	handler := commands.NewSubmitOrderFromCartCommandHandler(uowFactory{f.uow}, f.engine, f.pricing, f.clock, f.notifier)

	result, err := handler.Handle(f.ctx, f.submitCommand(f.event(), commands.CartItem{AssetID: chair.ID(), Quantity: 2}))

	require.NoError(t, err)
	stored := f.order(result.OrderID)
	require.NotNil(t, stored.PricingTierID())
	assert.True(t, stored.PricingTierID().IsEqual(f.uow.tiers.rows[0].ID()))
	require.NotNil(t, stored.A2BasePrice())
	assert.Equal(t, "1000.00", stored.A2BasePrice().StringFixed(2))
	assert.Nil(t, stored.FinalTotalPrice(), "the quote is attached by a pricing approval")
	assert.Equal(t, order.PricingReview, stored.Status())
}

func TestSubmitOrderFromCart_NoMatchingTierIsNotAnError(t *testing.T) {
	f := newFixture(t)
	// 250 x 0.5 m3 is beyond the fixture's [0,100) tier.
	deck := f.addAsset("Stage deck", 250)
	handler := commands.NewSubmitOrderFromCartCommandHandler(uowFactory{f.uow}, f.engine, f.pricing, f.clock, f.notifier)

	result, err := handler.Handle(f.ctx, f.submitCommand(f.event(), commands.CartItem{AssetID: deck.ID(), Quantity: 250}))

	require.NoError(t, err)
	stored := f.order(result.OrderID)
	assert.Nil(t, stored.PricingTierID())
	assert.Nil(t, stored.A2BasePrice())
	assert.Equal(t, order.PricingReview, stored.Status())
}

func TestSubmitOrderFromCart_EventStartInPast(t *testing.T) {
	f := newFixture(t)
	chair := f.addAsset("Chair", 5)
	past, err := kernel.NewDateRange(kernel.NewDate(2025, 4, 30), kernel.NewDate(2025, 5, 2))
	require.NoError(t, err)
	handler := commands.NewSubmitOrderFromCartCommandHandler(uowFactory{f.uow}, f.engine, f.pricing, f.clock, f.notifier)

	_, err = handler.Handle(f.ctx, f.submitCommand(past, commands.CartItem{AssetID: chair.ID(), Quantity: 1}))

	assert.ErrorIs(t, err, commands.ErrEventStartInPast)
	assert.True(t, errs.IsValidation(err))
	assert.Zero(t, f.uow.begins)
}

func TestSubmitOrderFromCart_StartingTodayIsAccepted(t *testing.T) {
	f := newFixture(t)
	chair := f.addAsset("Chair", 5)
	event, err := kernel.NewDateRange(kernel.DateOf(now), kernel.DateOf(now))
	require.NoError(t, err)
	handler := commands.NewSubmitOrderFromCartCommandHandler(uowFactory{f.uow}, f.engine, f.pricing, f.clock, f.notifier)

	_, err = handler.Handle(f.ctx, f.submitCommand(event, commands.CartItem{AssetID: chair.ID(), Quantity: 1}))

	require.NoError(t, err)
}

func TestSubmitOrderFromCart_ForeignAsset(t *testing.T) {
	f := newFixture(t)
	foreign, err := asset.NewAsset(kernel.NewUUID(), kernel.NewUUID(), "Stage", 1, asset.Green, nil, decimal.NewFromInt(1), decimal.NewFromInt(1))
	require.NoError(t, err)
	require.NoError(t, f.uow.assets.Add(f.ctx, foreign))
	handler := commands.NewSubmitOrderFromCartCommandHandler(uowFactory{f.uow}, f.engine, f.pricing, f.clock, f.notifier)

	_, err = handler.Handle(f.ctx, f.submitCommand(f.event(), commands.CartItem{AssetID: foreign.ID(), Quantity: 1}))

	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	assert.Zero(t, f.uow.commits)
}

func TestSubmitOrderFromCart_DeletedAsset(t *testing.T) {
	f := newFixture(t)
	deletedAt := now.Add(-time.Hour)
	gone, err := asset.RestoreAsset(kernel.NewUUID(), f.companyID, "Old Sofa", 3, asset.Green, nil,
		decimal.NewFromInt(1), decimal.NewFromInt(1), asset.Available, &deletedAt)
	require.NoError(t, err)
	require.NoError(t, f.uow.assets.Add(f.ctx, gone))
	handler := commands.NewSubmitOrderFromCartCommandHandler(uowFactory{f.uow}, f.engine, f.pricing, f.clock, f.notifier)

	_, err = handler.Handle(f.ctx, f.submitCommand(f.event(), commands.CartItem{AssetID: gone.ID(), Quantity: 1}))

	assert.ErrorIs(t, err, commands.ErrAssetIsDeleted)
}

func TestSubmitOrderFromCart_InsufficientAvailability(t *testing.T) {
	f := newFixture(t)
	chair := f.addAsset("Chair", 5)
	first := f.submit(commands.CartItem{AssetID: chair.ID(), Quantity: 3})
	f.quote(first)
	require.NoError(t, f.confirm(first))
	handler := commands.NewSubmitOrderFromCartCommandHandler(uowFactory{f.uow}, f.engine, f.pricing, f.clock, f.notifier)

	_, err := handler.Handle(f.ctx, f.submitCommand(f.event(), commands.CartItem{AssetID: chair.ID(), Quantity: 3}))

	var availErr *services.AvailabilityError
	require.ErrorAs(t, err, &availErr)
	require.Len(t, availErr.Shortfalls, 1)
	assert.Equal(t, 3, availErr.Shortfalls[0].Requested)
	assert.Equal(t, 2, availErr.Shortfalls[0].Available)
	assert.Equal(t, "Chair", availErr.Shortfalls[0].AssetName)
}

func TestSubmitOrderFromCart_DispatchFailureDoesNotFailTheCommand(t *testing.T) {
	f := newFixture(t)
	chair := f.addAsset("Chair", 5)
	failing := new(MockDispatcher)
	failing.On("Dispatch", mock.Anything, mock.Anything).Return(errors.New("broker down")).Once()
	notifier := commands.NewNotifier(failing, slog.New(slog.NewTextHandler(io.Discard, nil)))
	handler := commands.NewSubmitOrderFromCartCommandHandler(uowFactory{f.uow}, f.engine, f.pricing, f.clock, notifier)

	result, err := handler.Handle(f.ctx, f.submitCommand(f.event(), commands.CartItem{AssetID: chair.ID(), Quantity: 1}))

	require.NoError(t, err)
	assert.Equal(t, order.PricingReview, f.order(result.OrderID).Status())
	failing.AssertExpectations(t)
}

func TestNewSubmitOrderFromCartCommand_InvalidInput(t *testing.T) {
	f := newFixture(t)
	contact, err := order.NewContact("Jane", "jane@example.com", "")
	require.NoError(t, err)
	venue, err := order.NewVenue("Hall", f.dubai, "")
	require.NoError(t, err)

	_, err = commands.NewSubmitOrderFromCartCommand(f.companyID, f.userID, nil, f.event(), contact, venue, "")
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = commands.NewSubmitOrderFromCartCommand(f.companyID, f.userID,
		[]commands.CartItem{{AssetID: kernel.NewUUID(), Quantity: 0}}, f.event(), contact, venue, "")
	assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	_, err = commands.NewSubmitOrderFromCartCommand(f.companyID, f.userID,
		[]commands.CartItem{{AssetID: kernel.NewUUID(), Quantity: 1}}, f.event(), order.Contact{}, venue, "")
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = commands.NewSubmitOrderFromCartCommand(kernel.UUID{}, f.userID,
		[]commands.CartItem{{AssetID: kernel.NewUUID(), Quantity: 1}}, f.event(), contact, venue, "")
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)

	cmd := commands.SubmitOrderFromCartCommand{}
	assert.ErrorIs(t, cmd.Validate(), commands.ErrSubmitOrderFromCartCommandIsNotConstructed)
}
