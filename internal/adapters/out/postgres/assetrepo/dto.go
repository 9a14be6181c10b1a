// Package assetrepo persists the asset catalogue.
package assetrepo

import (
	"time"

	"eventrent/internal/core/domain/model/asset"
	"eventrent/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AssetDTO is one row of the assets table. Soft-deleted rows keep their data
// and carry a deleted_at stamp.
type AssetDTO struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CompanyID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name               string          `gorm:"type:varchar(255);not null"`
	TotalQuantity      int             `gorm:"type:int;not null;check:total_quantity > 0"`
	Condition          int             `gorm:"type:smallint;not null"`
	RefurbDaysEstimate *int            `gorm:"type:int"`
	Volume             decimal.Decimal `gorm:"type:numeric(12,3);not null"`
	Weight             decimal.Decimal `gorm:"type:numeric(12,3);not null"`
	Status             int             `gorm:"type:smallint;not null"`
	DeletedAt          *time.Time      `gorm:"type:timestamptz"`
}

// TableName returns "assets".
func (AssetDTO) TableName() string {
	return "assets"
}

func fromDomain(a *asset.Asset) AssetDTO {
	return AssetDTO{
		ID:                 a.ID().Bytes(),
		CompanyID:          a.CompanyID().Bytes(),
		Name:               a.Name(),
		TotalQuantity:      a.TotalQuantity(),
		Condition:          int(a.Condition()),
		RefurbDaysEstimate: a.RefurbDaysEstimate(),
		Volume:             a.Volume(),
		Weight:             a.Weight(),
		Status:             int(a.Status()),
		DeletedAt:          a.DeletedAt(),
	}
}

func toDomain(dto AssetDTO) (*asset.Asset, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	companyID, err := kernel.UUIDFromBytes(dto.CompanyID[:])
	if err != nil {
		return nil, err
	}

	return asset.RestoreAsset(
		id,
		companyID,
		dto.Name,
		dto.TotalQuantity,
		asset.Condition(dto.Condition),
		dto.RefurbDaysEstimate,
		dto.Volume,
		dto.Weight,
		asset.Status(dto.Status),
		dto.DeletedAt,
	)
}
