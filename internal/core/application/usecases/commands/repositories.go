// Package commands contains the operations that change the rental core's state.
// Every handler validates its command, opens a unit of work, loads and mutates
// aggregates, commits, and only then hands notification intents to the
// dispatcher.
package commands

import (
	"context"

	"eventrent/internal/core/ports"
)

type (
	// TxManager handles the database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	AssetRepoFactory interface {
		AssetRepository() ports.AssetRepository
	}

	BookingRepoFactory interface {
		BookingRepository() ports.BookingRepository
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	PricingTierRepoFactory interface {
		PricingTierRepository() ports.PricingTierRepository
	}

	CompanyRepoFactory interface {
		CompanyRepository() ports.CompanyRepository
	}

	// InventoryUoW covers operations on assets and their bookings only.
	InventoryUoW interface {
		TxManager
		AssetRepoFactory
		BookingRepoFactory
	}

	InventoryUoWFactory interface {
		Create() InventoryUoW
	}

	// OrderUoW covers operations reading or writing orders only.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// PricingUoW covers tier administration.
	PricingUoW interface {
		TxManager
		PricingTierRepoFactory
	}

	PricingUoWFactory interface {
		Create() PricingUoW
	}

	// UoW spans every aggregate. Order transitions need it because confirming,
	// declining and closing an order drive the booking ledger in the same
	// transaction, and pricing reads tiers and the company margin.
	//
	//	uow := factory.Create()
	//	if err := uow.Begin(ctx); err != nil {
	//	    return err
	//	}
	//	defer func() { _ = uow.Rollback(ctx) }()
	//	...
	//	return uow.Commit(ctx)
	UoW interface {
		TxManager
		AssetRepoFactory
		BookingRepoFactory
		OrderRepoFactory
		PricingTierRepoFactory
		CompanyRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}
)
