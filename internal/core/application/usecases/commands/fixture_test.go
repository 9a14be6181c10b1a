package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"eventrent/internal/core/application/usecases/commands"
	"eventrent/internal/core/domain/model/asset"
	"eventrent/internal/core/domain/model/company"
	"eventrent/internal/core/domain/model/kernel"
	"eventrent/internal/core/domain/model/order"
	"eventrent/internal/core/domain/model/pricing"
	"eventrent/internal/core/domain/services"
	"eventrent/internal/pkg/clock"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)

type fixture struct {
	t          *testing.T
	ctx        context.Context
	uow        *fakeUoW
	dispatcher *MockDispatcher
	notifier   commands.Notifier
	clock      clock.Clock
	engine     services.AvailabilityEngine
	pricing    services.PricingEngine
	companyID  kernel.UUID
	userID     kernel.UUID
	dubai      kernel.Location
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	engine, err := services.NewAvailabilityEngine(services.DefaultBufferPolicy())
	require.NoError(t, err)
	dubai, err := kernel.NewLocation("UAE", "Dubai")
	require.NoError(t, err)

	dispatcher := new(MockDispatcher)
	dispatcher.On("Dispatch", mock.Anything, mock.Anything).Return(nil)

	f := &fixture{
		t:          t,
		ctx:        context.Background(),
		uow:        newFakeUoW(),
		dispatcher: dispatcher,
		notifier:   commands.NewNotifier(dispatcher, slog.New(slog.NewTextHandler(io.Discard, nil))),
		clock:      clock.NewFixed(now),
		engine:     engine,
		pricing:    services.NewPricingEngine(),
		companyID:  kernel.NewUUID(),
		userID:     kernel.NewUUID(),
		dubai:      dubai,
	}

	c, err := company.NewCompany(f.companyID, "Acme Events", decimal.NewFromInt(25))
	require.NoError(t, err)
	require.NoError(t, f.uow.companies.Add(f.ctx, c))
	f.addTier(dubai, 0, 100, "1000.00")
	return f
}

func (f *fixture) addTier(loc kernel.Location, lo, hi int64, price string) *pricing.Tier {
	f.t.Helper()
	tier, err := pricing.NewTier(kernel.NewUUID(), loc, decimal.NewFromInt(lo), decimal.NewFromInt(hi), decimal.RequireFromString(price))
	require.NoError(f.t, err)
	require.NoError(f.t, f.uow.tiers.Add(f.ctx, tier))
	return tier
}

func (f *fixture) addAsset(name string, qty int) *asset.Asset {
	f.t.Helper()
	a, err := asset.NewAsset(kernel.NewUUID(), f.companyID, name, qty, asset.Green, nil,
		decimal.RequireFromString("0.5"), decimal.NewFromInt(4))
	require.NoError(f.t, err)
	require.NoError(f.t, f.uow.assets.Add(f.ctx, a))
	return a
}

func (f *fixture) event() kernel.DateRange {
	f.t.Helper()
	r, err := kernel.NewDateRange(kernel.NewDate(2025, 6, 10), kernel.NewDate(2025, 6, 12))
	require.NoError(f.t, err)
	return r
}

func (f *fixture) submitCommand(event kernel.DateRange, items ...commands.CartItem) commands.SubmitOrderFromCartCommand {
	f.t.Helper()
	contact, err := order.NewContact("Jane Planner", "jane@example.com", "+971 50 000 0000")
	require.NoError(f.t, err)
	venue, err := order.NewVenue("Expo Hall", f.dubai, "Sheikh Zayed Rd")
	require.NoError(f.t, err)
	cmd, err := commands.NewSubmitOrderFromCartCommand(f.companyID, f.userID, items, event, contact, venue, "Loading dock B")
	require.NoError(f.t, err)
	return cmd
}

func (f *fixture) submit(items ...commands.CartItem) kernel.UUID {
	f.t.Helper()
	handler := commands.NewSubmitOrderFromCartCommandHandler(uowFactory{f.uow}, f.engine, f.pricing, f.clock, f.notifier)
	result, err := handler.Handle(f.ctx, f.submitCommand(f.event(), items...))
	require.NoError(f.t, err)
	return result.OrderID
}

func (f *fixture) quote(orderID kernel.UUID) {
	f.t.Helper()
	cmd, err := commands.NewApproveStandardPricingCommand(orderID, f.userID)
	require.NoError(f.t, err)
	handler := commands.NewApproveStandardPricingCommandHandler(uowFactory{f.uow}, f.pricing, f.clock, f.notifier)
	require.NoError(f.t, handler.Handle(f.ctx, cmd))
}

func (f *fixture) confirm(orderID kernel.UUID) error {
	f.t.Helper()
	cmd, err := commands.NewApproveQuoteCommand(orderID, f.userID)
	require.NoError(f.t, err)
	return commands.NewApproveQuoteCommandHandler(uowFactory{f.uow}, f.engine, f.clock, f.notifier).Handle(f.ctx, cmd)
}

func (f *fixture) advance(orderID kernel.UUID, to order.Status) error {
	f.t.Helper()
	cmd, err := commands.NewAdvanceOrderStatusCommand(orderID, f.userID, to, "")
	require.NoError(f.t, err)
	return commands.NewAdvanceOrderStatusCommandHandler(uowFactory{f.uow}, f.engine, f.clock, f.notifier).Handle(f.ctx, cmd)
}

func (f *fixture) order(id kernel.UUID) *order.Order {
	f.t.Helper()
	o, err := f.uow.orders.Get(f.ctx, id)
	require.NoError(f.t, err)
	return o
}
