// Package tierrepo persists pricing tiers.
package tierrepo

import (
	"eventrent/internal/core/domain/model/kernel"
	"eventrent/internal/core/domain/model/pricing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PricingTierDTO keeps the caller's spelling of country and city; lookups
// compare them lower-cased.
type PricingTierDTO struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Country   string          `gorm:"type:varchar(100);not null;index"`
	City      string          `gorm:"type:varchar(100);not null"`
	VolumeMin decimal.Decimal `gorm:"type:numeric(12,3);not null"`
	VolumeMax decimal.Decimal `gorm:"type:numeric(12,3);not null"`
	BasePrice decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	IsActive  bool            `gorm:"not null"`
}

// TableName returns "pricing_tiers".
func (PricingTierDTO) TableName() string {
	return "pricing_tiers"
}

func fromDomain(t *pricing.Tier) PricingTierDTO {
	return PricingTierDTO{
		ID:        t.ID().Bytes(),
		Country:   t.Location().Country(),
		City:      t.Location().City(),
		VolumeMin: t.VolumeMin(),
		VolumeMax: t.VolumeMax(),
		BasePrice: t.BasePrice(),
		IsActive:  t.IsActive(),
	}
}

func toDomain(dto PricingTierDTO) (*pricing.Tier, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	loc, err := kernel.NewLocation(dto.Country, dto.City)
	if err != nil {
		return nil, err
	}

	return pricing.RestoreTier(id, loc, dto.VolumeMin, dto.VolumeMax, dto.BasePrice, dto.IsActive)
}
