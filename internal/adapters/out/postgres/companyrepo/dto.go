// Package companyrepo persists client companies.
package companyrepo

import (
	"eventrent/internal/core/domain/model/company"
	"eventrent/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CompanyDTO is one row of the companies table.
type CompanyDTO struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name          string          `gorm:"type:varchar(255);not null"`
	MarginPercent decimal.Decimal `gorm:"column:pmg_margin_percent;type:numeric(5,2);not null"`
}

// TableName returns "companies".
func (CompanyDTO) TableName() string {
	return "companies"
}

func fromDomain(c *company.Company) CompanyDTO {
	return CompanyDTO{
		ID:            c.ID().Bytes(),
		Name:          c.Name(),
		MarginPercent: c.MarginPercent(),
	}
}

func toDomain(dto CompanyDTO) (*company.Company, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return company.NewCompany(id, dto.Name, dto.MarginPercent)
}
