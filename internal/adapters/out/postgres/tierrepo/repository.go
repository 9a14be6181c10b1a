package tierrepo

import (
	"context"
	"errors"
	"strings"

	"eventrent/internal/adapters/out/postgres/pgerr"
	"eventrent/internal/core/domain/model/kernel"
	"eventrent/internal/core/domain/model/pricing"
	"eventrent/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormPricingTierRepository implements ports.PricingTierRepository using GORM.
type GormPricingTierRepository struct {
	db *gorm.DB
}

// NewGormPricingTierRepository creates a repository over db.
func NewGormPricingTierRepository(db *gorm.DB) *GormPricingTierRepository {
	return &GormPricingTierRepository{db: db}
}

// Add inserts a tier. Overlap checks are the caller's job.
func (r *GormPricingTierRepository) Add(ctx context.Context, tier *pricing.Tier) error {
	if err := tier.Validate(); err != nil {
		return err
	}

	dto := fromDomain(tier)
	return pgerr.Map(r.db.WithContext(ctx).Create(&dto).Error)
}

// Update writes every column of the tier, including a false is_active.
func (r *GormPricingTierRepository) Update(ctx context.Context, tier *pricing.Tier) error {
	if err := tier.Validate(); err != nil {
		return err
	}

	dto := fromDomain(tier)
	// Select("*") so that deactivation (is_active = false) is written.
	result := r.db.WithContext(ctx).
		Model(&PricingTierDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("id").
		Updates(&dto)
	if result.Error != nil {
		return pgerr.Map(result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("pricingTier", tier.ID().String())
	}
	return nil
}

// Get returns ObjectNotFound for an unknown id.
func (r *GormPricingTierRepository) Get(ctx context.Context, id kernel.UUID) (*pricing.Tier, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto PricingTierDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("pricingTier", id.String())
		}
		return nil, pgerr.Map(err)
	}

	return toDomain(dto)
}

// LockCountry takes a transaction-scoped advisory lock keyed by the lower-cased
// country. An empty tier set has no rows to lock FOR UPDATE, so the key is the
// country itself. Outside a transaction the lock is released immediately.
func (r *GormPricingTierRepository) LockCountry(ctx context.Context, country string) error {
	country = strings.TrimSpace(country)
	if country == "" {
		return errs.NewValueIsRequiredError("country")
	}

	return pgerr.Map(r.db.WithContext(ctx).
		Exec("SELECT pg_advisory_xact_lock(hashtext(lower(?)))", country).Error)
}

// ListByCountry matches country with lower() on both sides.
func (r *GormPricingTierRepository) ListByCountry(ctx context.Context, country string) ([]*pricing.Tier, error) {
	country = strings.TrimSpace(country)
	if country == "" {
		return nil, errs.NewValueIsRequiredError("country")
	}

	var dtos []PricingTierDTO
	if err := r.db.WithContext(ctx).
		Where("LOWER(country) = LOWER(?)", country).
		Order("city, volume_min").
		Find(&dtos).Error; err != nil {
		return nil, pgerr.Map(err)
	}

	tiers := make([]*pricing.Tier, 0, len(dtos))
	for _, dto := range dtos {
		t, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		tiers = append(tiers, t)
	}
	return tiers, nil
}
