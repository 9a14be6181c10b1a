package assetrepo

import (
	"context"
	"errors"

	"eventrent/internal/adapters/out/postgres/pgerr"
	"eventrent/internal/core/domain/model/asset"
	"eventrent/internal/core/domain/model/kernel"
	"eventrent/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormAssetRepository implements ports.AssetRepository using GORM.
type GormAssetRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormAssetRepository creates a repository over db. Written assets are
// reported to tracker.
func NewGormAssetRepository(db *gorm.DB, tracker aggregateTracker) *GormAssetRepository {
	return &GormAssetRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts an asset and tracks it.
func (r *GormAssetRepository) Add(ctx context.Context, a *asset.Asset) error {
	if err := a.Validate(); err != nil {
		return err
	}

	dto := fromDomain(a)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Map(err)
	}

	r.tracker.TrackAggregate(a.ID(), a)
	return nil
}

// Update writes every column, zero values included, so a cleared refurb
// estimate is stored as NULL.
func (r *GormAssetRepository) Update(ctx context.Context, a *asset.Asset) error {
	if err := a.Validate(); err != nil {
		return err
	}

	dto := fromDomain(a)
	result := r.db.WithContext(ctx).
		Model(&AssetDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("id").
		Updates(&dto)
	if result.Error != nil {
		return pgerr.Map(result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("asset", a.ID().String())
	}

	r.tracker.TrackAggregate(a.ID(), a)
	return nil
}

// Get reads an asset without locking. Soft-deleted assets are returned too.
func (r *GormAssetRepository) Get(ctx context.Context, id kernel.UUID) (*asset.Asset, error) {
	return r.get(r.db.WithContext(ctx), id)
}

// GetForUpdate takes a row lock (SELECT ... FOR UPDATE) held until the
// surrounding transaction ends.
func (r *GormAssetRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*asset.Asset, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

// GetMany returns the assets found among ids, in no particular order.
// Unknown ids are left out rather than reported.
func (r *GormAssetRepository) GetMany(ctx context.Context, ids []kernel.UUID) ([]*asset.Asset, error) {
	if len(ids) == 0 {
		return []*asset.Asset{}, nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		raw = append(raw, id.Bytes())
	}

	var dtos []AssetDTO
	if err := r.db.WithContext(ctx).Find(&dtos, "id IN ?", raw).Error; err != nil {
		return nil, pgerr.Map(err)
	}

	assets := make([]*asset.Asset, 0, len(dtos))
	for _, dto := range dtos {
		a, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		assets = append(assets, a)
	}
	return assets, nil
}

func (r *GormAssetRepository) get(db *gorm.DB, id kernel.UUID) (*asset.Asset, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto AssetDTO
	if err := db.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("asset", id.String())
		}
		return nil, pgerr.Map(err)
	}

	return toDomain(dto)
}
