package services_test

import (
	"context"
	"sort"

	"eventrent/internal/core/domain/model/asset"
	"eventrent/internal/core/domain/model/booking"
	"eventrent/internal/core/domain/model/kernel"
	"eventrent/internal/pkg/errs"
)

type memoryAssets struct {
	byID   map[kernel.UUID]*asset.Asset
	locked []kernel.UUID
}

func newMemoryAssets(assets ...*asset.Asset) *memoryAssets {
	m := &memoryAssets{byID: make(map[kernel.UUID]*asset.Asset)}
	for _, a := range assets {
		m.byID[a.ID()] = a
	}
	return m
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
	a, ok := m.byID[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("asset", id.String())
	}
	return a, nil
}

func (m *memoryAssets) GetForUpdate(ctx context.Context, id kernel.UUID) (*asset.Asset, error) {
	m.locked = append(m.locked, id)
	return m.Get(ctx, id)
}

func (m *memoryAssets) GetMany(_ context.Context, ids []kernel.UUID) ([]*asset.Asset, error) {
	found := make([]*asset.Asset, 0, len(ids))
	for _, id := range ids {
		if a, ok := m.byID[id]; ok {
			found = append(found, a)
		}
	}
	return found, nil
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
	sort.Slice(out, func(i, j int) bool { return out[i].AssetID().String() < out[j].AssetID().String() })
	return out, nil
}

func (m *memoryBookings) DeleteByOrder(_ context.Context, orderID kernel.UUID) (int64, error) {
	kept := m.rows[:0]
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
