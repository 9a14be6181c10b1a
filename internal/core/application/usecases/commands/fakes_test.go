package commands_test

import (
	"context"
	"sort"
	"strings"
	"time"

	"eventrent/internal/core/application/usecases/commands"
	"eventrent/internal/core/domain/model/asset"
	"eventrent/internal/core/domain/model/booking"
	"eventrent/internal/core/domain/model/company"
	"eventrent/internal/core/domain/model/kernel"
	"eventrent/internal/core/domain/model/order"
	"eventrent/internal/core/domain/model/pricing"
	"eventrent/internal/core/ports"
	"eventrent/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
)

// fakeUoW keeps every aggregate in memory. It does not undo writes on
// rollback; tests assert on commits instead.
type fakeUoW struct {
	assets    *memoryAssets
	bookings  *memoryBookings
	orders    *memoryOrders
	tiers     *memoryTiers
	companies *memoryCompanies

	begins  int
	commits int
	open    bool
}

func newFakeUoW() *fakeUoW {
	u := &fakeUoW{
		assets:    &memoryAssets{byID: map[kernel.UUID]*asset.Asset{}},
		bookings:  &memoryBookings{},
		orders:    &memoryOrders{byID: map[kernel.UUID]*order.Order{}},
		companies: &memoryCompanies{byID: map[kernel.UUID]*company.Company{}},
	}
	u.tiers = &memoryTiers{owner: u}
	return u
}

func (u *fakeUoW) Begin(context.Context) error {
	u.begins++
	u.open = true
	return nil
}

func (u *fakeUoW) Commit(context.Context) error {
	u.commits++
	u.open = false
	return nil
}

func (u *fakeUoW) Rollback(context.Context) error {
	u.open = false
	return nil
}

func (u *fakeUoW) AssetRepository() ports.AssetRepository {
	return u.assets
}

func (u *fakeUoW) BookingRepository() ports.BookingRepository {
	return u.bookings
}

func (u *fakeUoW) OrderRepository() ports.OrderRepository {
	return u.orders
}

func (u *fakeUoW) PricingTierRepository() ports.PricingTierRepository {
	return u.tiers
}

func (u *fakeUoW) CompanyRepository() ports.CompanyRepository {
	return u.companies
}

type uowFactory struct{ uow *fakeUoW }

func (f uowFactory) Create() commands.UoW {
	return f.uow
}

type inventoryFactory struct{ uow *fakeUoW }

func (f inventoryFactory) Create() commands.InventoryUoW {
	return f.uow
}

type pricingFactory struct{ uow *fakeUoW }

func (f pricingFactory) Create() commands.PricingUoW {
	return f.uow
}

type orderFactory struct{ uow *fakeUoW }

func (f orderFactory) Create() commands.OrderUoW {
	return f.uow
}

type memoryAssets struct {
	byID map[kernel.UUID]*asset.Asset
}

func (m *memoryAssets) Add(_ context.Context, a *asset.Asset) error {
	m.byID[a.ID()] = a
	return nil
}

func (m *memoryAssets) Update(_ context.Context, a *asset.Asset) error {
	m.byID[a.ID()] = a
	return nil
}

func (m *memoryAssets) Get(_ context.Context, id kernel.UUID) (*asset.Asset, error) {
	if a, ok := m.byID[id]; ok {
		return a, nil
	}
	return nil, errs.NewObjectNotFoundError("asset", id.String())
}

func (m *memoryAssets) GetForUpdate(ctx context.Context, id kernel.UUID) (*asset.Asset, error) {
	return m.Get(ctx, id)
}

func (m *memoryAssets) GetMany(_ context.Context, ids []kernel.UUID) ([]*asset.Asset, error) {
	out := make([]*asset.Asset, 0, len(ids))
	for _, id := range ids {
		if a, ok := m.byID[id]; ok {
			out = append(out, a)
		}
	}
	return out, nil
}

type memoryBookings struct {
	rows []*booking.Booking
}

func (m *memoryBookings) Add(_ context.Context, b *booking.Booking) error {
	m.rows = append(m.rows, b)
	return nil
}

func (m *memoryBookings) ListOverlapping(
	_ context.Context,
	assetID kernel.UUID,
	period kernel.DateRange,
) ([]*booking.Booking, error) {
	var out []*booking.Booking
	for _, b := range m.rows {
		if b.AssetID().IsEqual(assetID) && b.Overlaps(period) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *memoryBookings) ListEndingOnOrAfter(
	_ context.Context,
	assetID kernel.UUID,
	day kernel.Date,
) ([]*booking.Booking, error) {
	var out []*booking.Booking
	for _, b := range m.rows {
		if b.AssetID().IsEqual(assetID) && !b.BlockedUntil().Before(day) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *memoryBookings) ListByOrder(_ context.Context, orderID kernel.UUID) ([]*booking.Booking, error) {
	var out []*booking.Booking
	for _, b := range m.rows {
		if b.OrderID().IsEqual(orderID) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *memoryBookings) DeleteByOrder(_ context.Context, orderID kernel.UUID) (int64, error) {
	var kept []*booking.Booking
	var deleted int64
	for _, b := range m.rows {
		if b.OrderID().IsEqual(orderID) {
			deleted++
			continue
		}
		kept = append(kept, b)
	}
	m.rows = kept
	return deleted, nil
}

type memoryOrders struct {
	byID    map[kernel.UUID]*order.Order
	updates int
}

func (m *memoryOrders) Add(_ context.Context, o *order.Order) error {
	m.byID[o.ID()] = o
	return nil
}

func (m *memoryOrders) Update(_ context.Context, o *order.Order) error {
	m.updates++
	m.byID[o.ID()] = o
	return nil
}

func (m *memoryOrders) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	if o, ok := m.byID[id]; ok {
		return o, nil
	}
	return nil, errs.NewObjectNotFoundError("order", id.String())
}

func (m *memoryOrders) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return m.Get(ctx, id)
}

func (m *memoryOrders) ListQuotedBefore(_ context.Context, before time.Time) ([]*order.Order, error) {
	var out []*order.Order
	for _, o := range m.byID {
		if o.Status() == order.Quoted && o.QuotedAt() != nil && o.QuotedAt().Before(before) {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].QuotedAt().Before(*out[j].QuotedAt()) })
	return out, nil
}

type memoryTiers struct {
	rows   []*pricing.Tier
	locked []string
	owner  *fakeUoW
	// listedInTx records, per ListByCountry call, whether a transaction was open.
	listedInTx []bool
}

func (m *memoryTiers) LockCountry(_ context.Context, country string) error {
	m.locked = append(m.locked, country)
	return nil
}

func (m *memoryTiers) Add(_ context.Context, t *pricing.Tier) error {
	m.rows = append(m.rows, t)
	return nil
}

func (m *memoryTiers) Update(_ context.Context, t *pricing.Tier) error {
	for i, row := range m.rows {
		if row.ID().IsEqual(t.ID()) {
			m.rows[i] = t
			return nil
		}
	}
	return errs.NewObjectNotFoundError("pricing tier", t.ID().String())
}

func (m *memoryTiers) Get(_ context.Context, id kernel.UUID) (*pricing.Tier, error) {
	for _, row := range m.rows {
		if row.ID().IsEqual(id) {
			return row, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("pricing tier", id.String())
}

func (m *memoryTiers) ListByCountry(_ context.Context, country string) ([]*pricing.Tier, error) {
	m.listedInTx = append(m.listedInTx, m.owner.open)
	var out []*pricing.Tier
	for _, row := range m.rows {
		if strings.EqualFold(row.Location().Country(), country) {
			out = append(out, row)
		}
	}
	return out, nil
}

type memoryCompanies struct {
	byID map[kernel.UUID]*company.Company
}

func (m *memoryCompanies) Add(_ context.Context, c *company.Company) error {
	m.byID[c.ID()] = c
	return nil
}

func (m *memoryCompanies) Get(_ context.Context, id kernel.UUID) (*company.Company, error) {
	if c, ok := m.byID[id]; ok {
		return c, nil
	}
	return nil, errs.NewObjectNotFoundError("company", id.String())
}

type MockDispatcher struct{ mock.Mock }

func (m *MockDispatcher) Dispatch(ctx context.Context, n order.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

// Types lists the dispatched notification types in call order.
func (m *MockDispatcher) Types() []order.NotificationType {
	var types []order.NotificationType
	for _, call := range m.Calls {
		if call.Method == "Dispatch" {
			types = append(types, call.Arguments.Get(1).(order.Notification).Type)
		}
	}
	return types
}

type MockReminderGuard struct{ mock.Mock }

func (m *MockReminderGuard) Acquire(ctx context.Context, orderID kernel.UUID, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, orderID, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *MockReminderGuard) Release(ctx context.Context, orderID kernel.UUID) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}
