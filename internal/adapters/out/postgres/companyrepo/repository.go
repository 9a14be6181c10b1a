package companyrepo

import (
	"context"
	"errors"

	"eventrent/internal/adapters/out/postgres/pgerr"
	"eventrent/internal/core/domain/model/company"
	"eventrent/internal/core/domain/model/kernel"
	"eventrent/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormCompanyRepository implements ports.CompanyRepository using GORM.
type GormCompanyRepository struct {
	db *gorm.DB
}

// NewGormCompanyRepository creates a repository over db.
func NewGormCompanyRepository(db *gorm.DB) *GormCompanyRepository {
	return &GormCompanyRepository{db: db}
}

// Add inserts a company.
func (r *GormCompanyRepository) Add(ctx context.Context, c *company.Company) error {
	if err := c.Validate(); err != nil {
		return err
	}

	dto := fromDomain(c)
	return pgerr.Map(r.db.WithContext(ctx).Create(&dto).Error)
}

// Get returns ObjectNotFound for an unknown id.
func (r *GormCompanyRepository) Get(ctx context.Context, id kernel.UUID) (*company.Company, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto CompanyDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("company", id.String())
		}
		return nil, pgerr.Map(err)
	}

	return toDomain(dto)
}
