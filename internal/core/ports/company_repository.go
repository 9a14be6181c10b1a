package ports

import (
	"context"

	"eventrent/internal/core/domain/model/company"
	"eventrent/internal/core/domain/model/kernel"
)

// CompanyRepository stores client companies. Companies are read-only for
// the rental flows; Add exists for provisioning and tests.
type CompanyRepository interface {
	Add(ctx context.Context, c *company.Company) error
	Get(ctx context.Context, id kernel.UUID) (*company.Company, error)
}
