package ports

import (
	"context"

	"eventrent/internal/core/domain/model/asset"
	"eventrent/internal/core/domain/model/kernel"
)

// AssetRepository persists asset aggregates. Soft-deleted assets are still
// returned; callers decide whether a deleted asset is acceptable.
type AssetRepository interface {
	Add(ctx context.Context, a *asset.Asset) error
	Update(ctx context.Context, a *asset.Asset) error
	Get(ctx context.Context, id kernel.UUID) (*asset.Asset, error)

	// GetForUpdate locks the asset row until the surrounding transaction ends.
	// Booking writers take this lock so check-then-insert cannot interleave.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*asset.Asset, error)

	// GetMany returns the assets that exist among ids, in no particular order.
	GetMany(ctx context.Context, ids []kernel.UUID) ([]*asset.Asset, error)
}
