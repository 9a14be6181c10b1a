package postgres

import (
	"fmt"

	"eventrent/internal/adapters/out/postgres/assetrepo"
	"eventrent/internal/adapters/out/postgres/bookingrepo"
	"eventrent/internal/adapters/out/postgres/companyrepo"
	"eventrent/internal/adapters/out/postgres/orderrepo"
	"eventrent/internal/adapters/out/postgres/tierrepo"

	"gorm.io/gorm"
)

// Models lists every table of the rental core, parents before children.
func Models() []any {
	return []any{
		&companyrepo.CompanyDTO{},
		&assetrepo.AssetDTO{},
		&tierrepo.PricingTierDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&orderrepo.StatusHistoryDTO{},
		&bookingrepo.BookingDTO{},
	}
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
