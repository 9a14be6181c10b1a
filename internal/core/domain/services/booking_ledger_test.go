package services_test

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"eventrent/internal/core/domain/model/asset"
	"eventrent/internal/core/domain/model/kernel"
	"eventrent/internal/core/domain/model/order"
	"eventrent/internal/core/domain/services"
	"eventrent/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrderFor(t *testing.T, event kernel.DateRange, lines map[*asset.Asset]int) *order.Order {
	t.Helper()
	items := make([]*order.Item, 0, len(lines))
	for a, qty := range lines {
		item, err := order.NewItem(a, qty)
		require.NoError(t, err)
		items = append(items, item)
	}
	contact, err := order.NewContact("Jane Planner", "jane@example.com", "")
	require.NoError(t, err)
	venue, err := order.NewVenue("Expo Hall", location(t, "UAE", "Dubai"), "Sheikh Zayed Rd")
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), contact, venue, event, "", items, time.Now())
	require.NoError(t, err)
	return o
}

func newLedger(t *testing.T, assets *memoryAssets, bookings *memoryBookings) *services.BookingLedger {
	t.Helper()
	return services.NewBookingLedger(newEngine(t), assets, bookings)
}

func TestBookingLedger_CreateBookingsForOrder(t *testing.T) {
	ctx := context.Background()
	chair := newAsset(t, "Chair", 5, nil)
	sofa := newAsset(t, "Sofa", 2, intPtr(2))
	assets := newMemoryAssets(chair, sofa)
	bookings := &memoryBookings{}
	ledger := newLedger(t, assets, bookings)
	o := newOrderFor(t, dateRange(t, june(10), june(12)), map[*asset.Asset]int{chair: 3, sofa: 1})

	created, err := ledger.CreateBookingsForOrder(ctx, o)

	require.NoError(t, err)
	require.Len(t, created, 2)
	for _, item := range o.Items() {
		own, err := bookings.ListByOrder(ctx, o.ID())
		require.NoError(t, err)
		var found bool
		for _, b := range own {
			if b.AssetID().IsEqual(item.AssetID()) {
				found = true
				assert.Equal(t, item.Quantity(), b.Quantity())
			}
		}
		assert.True(t, found, "item %s has no booking", item.AssetName())
	}
	assert.Len(t, assets.locked, 2)
	assert.True(t, bytesLess(assets.locked[0], assets.locked[1]), "assets must be locked in id order")
}

func TestBookingLedger_BookingPeriodIncludesBuffersAndRefurb(t *testing.T) {
	ctx := context.Background()
	sofa := newAsset(t, "Sofa", 2, intPtr(2))
	bookings := &memoryBookings{}
	ledger := newLedger(t, newMemoryAssets(sofa), bookings)

	b, err := ledger.CreateBooking(ctx, sofa.ID(), kernel.NewUUID(), 1, dateRange(t, june(10), june(12)), sofa.RefurbDays())

	require.NoError(t, err)
	assert.Equal(t, "2025-06-03", b.BlockedFrom().String())
	assert.Equal(t, "2025-06-15", b.BlockedUntil().String())
}

func TestBookingLedger_CreateBookingsForOrder_CollectsShortfalls(t *testing.T) {
	ctx := context.Background()
	chair := newAsset(t, "Chair", 5, nil)
	sofa := newAsset(t, "Sofa", 1, nil)
	table := newAsset(t, "Table", 4, nil)
	bookings := &memoryBookings{}
	ledger := newLedger(t, newMemoryAssets(chair, sofa, table), bookings)
	event := dateRange(t, june(10), june(12))

	_, err := ledger.CreateBooking(ctx, chair.ID(), kernel.NewUUID(), 4, event, 0)
	require.NoError(t, err)
	_, err = ledger.CreateBooking(ctx, sofa.ID(), kernel.NewUUID(), 1, event, 0)
	require.NoError(t, err)

	o := newOrderFor(t, event, map[*asset.Asset]int{chair: 2, sofa: 1, table: 1})
	_, err = ledger.CreateBookingsForOrder(ctx, o)

	var availErr *services.AvailabilityError
	require.ErrorAs(t, err, &availErr)
	assert.ErrorIs(t, err, services.ErrInsufficientAvailability)
	assert.Len(t, availErr.Shortfalls, 2)
}

func TestBookingLedger_ReleaseIsIdempotent(t *testing.T) {
	ctx := context.Background()
	chair := newAsset(t, "Chair", 5, nil)
	bookings := &memoryBookings{}
	ledger := newLedger(t, newMemoryAssets(chair), bookings)
	event := dateRange(t, june(10), june(12))
	o := newOrderFor(t, event, map[*asset.Asset]int{chair: 5})

	_, err := ledger.CreateBookingsForOrder(ctx, o)
	require.NoError(t, err)

	released, err := ledger.ReleaseBookingsForOrder(ctx, o.ID())
	require.NoError(t, err)
	assert.EqualValues(t, 1, released)

	released, err = ledger.ReleaseBookingsForOrder(ctx, o.ID())
	require.NoError(t, err)
	assert.EqualValues(t, 0, released)

	got, err := ledger.AssetAvailability(ctx, chair.ID(), event)
	require.NoError(t, err)
	assert.Equal(t, 5, got.AvailableQuantity)
}

func TestBookingLedger_CheckItems(t *testing.T) {
	ctx := context.Background()
	chair := newAsset(t, "Chair", 5, nil)
	bookings := &memoryBookings{}
	ledger := newLedger(t, newMemoryAssets(chair), bookings)
	event := dateRange(t, june(10), june(12))

	_, err := ledger.CreateBooking(ctx, chair.ID(), kernel.NewUUID(), 3, event, 0)
	require.NoError(t, err)

	result, err := ledger.CheckItems(ctx, []services.ItemRequest{{AssetID: chair.ID(), Quantity: 3}}, event)

	require.NoError(t, err)
	assert.False(t, result.AllAvailable)
	require.Len(t, result.UnavailableItems, 1)
	assert.Equal(t, 2, result.UnavailableItems[0].Available)

	_, err = ledger.CheckItems(ctx, []services.ItemRequest{{AssetID: kernel.NewUUID(), Quantity: 1}}, event)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestBookingLedger_PeakBookedFrom(t *testing.T) {
	ctx := context.Background()
	chair := newAsset(t, "Chair", 10, nil)
	bookings := &memoryBookings{}
	ledger := newLedger(t, newMemoryAssets(chair), bookings)

	_, err := ledger.CreateBooking(ctx, chair.ID(), kernel.NewUUID(), 4, dateRange(t, june(10), june(12)), 0)
	require.NoError(t, err)
	_, err = ledger.CreateBooking(ctx, chair.ID(), kernel.NewUUID(), 3, dateRange(t, june(14), june(16)), 0)
	require.NoError(t, err)

	peak, err := ledger.PeakBookedFrom(ctx, chair.ID(), june(1))
	require.NoError(t, err)
	assert.Equal(t, 7, peak)

	peak, err = ledger.PeakBookedFrom(ctx, chair.ID(), june(16))
	require.NoError(t, err)
	assert.Equal(t, 3, peak)
}

func TestBookingLedger_NeverOverbooks(t *testing.T) {
	ctx := context.Background()
	rnd := rand.New(rand.NewSource(42))
	chair := newAsset(t, "Chair", 6, nil)
	bookings := &memoryBookings{}
	ledger := newLedger(t, newMemoryAssets(chair), bookings)

	for i := 0; i < 300; i++ {
		start := june(1).AddDays(rnd.Intn(40))
		event := dateRange(t, start, start.AddDays(rnd.Intn(5)))
		_, err := ledger.CreateBooking(ctx, chair.ID(), kernel.NewUUID(), 1+rnd.Intn(4), event, rnd.Intn(3))
		if err != nil {
			require.ErrorIs(t, err, services.ErrInsufficientAvailability)
		}
		if rnd.Intn(10) == 0 && len(bookings.rows) > 0 {
			victim := bookings.rows[rnd.Intn(len(bookings.rows))]
			_, err = ledger.ReleaseBookingsForOrder(ctx, victim.OrderID())
			require.NoError(t, err)
		}
	}

	for day := june(1).AddDays(-10); day.Before(june(1).AddDays(60)); day = day.AddDays(1) {
		claimed := 0
		for _, b := range bookings.rows {
			if !day.Before(b.BlockedFrom()) && !day.After(b.BlockedUntil()) {
				claimed += b.Quantity()
			}
		}
		require.LessOrEqual(t, claimed, chair.TotalQuantity(), "overbooked on %s", day)
	}
}

func bytesLess(a, b kernel.UUID) bool {
	ab, bb := a.Bytes(), b.Bytes()
	for i := range ab {
		if ab[i] != bb[i] {
			return ab[i] < bb[i]
		}
	}
	return false
}
