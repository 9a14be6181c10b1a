// Package postgres provides the GORM-based Unit of Work of the rental core.
// A unit of work wraps one database transaction and hands out repositories
// bound to it, so an order transition, its booking writes and its history
// rows commit or roll back together.
//
// Usage:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	o, err := uow.OrderRepository().GetForUpdate(ctx, orderID)
//	if err != nil {
//	    return err
//	}
//	// ... change the order, create bookings through uow.BookingRepository()
//	if err := uow.OrderRepository().Update(ctx, o); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx)
//
// Concurrency:
//   - Each UnitOfWork instance owns its transaction; goroutines must not share one.
//   - Booking writers lock asset rows (SELECT ... FOR UPDATE) so that the
//     availability re-check and the insert cannot interleave with another writer.
//   - Serialization failures and deadlocks surface as errs.ErrConcurrentModification.
package postgres

import (
	"context"

	"eventrent/internal/adapters/out/postgres/assetrepo"
	"eventrent/internal/adapters/out/postgres/bookingrepo"
	"eventrent/internal/adapters/out/postgres/companyrepo"
	"eventrent/internal/adapters/out/postgres/orderrepo"
	"eventrent/internal/adapters/out/postgres/pgerr"
	"eventrent/internal/adapters/out/postgres/tierrepo"
	"eventrent/internal/core/domain/model/kernel"
	"eventrent/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate is an aggregate written during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection pool.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory over db.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create returns a fresh unit of work with no open transaction.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction and records the
// aggregates written through its repositories.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin opens the transaction. Calling it again while a transaction is open
// is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	uow.tx = tx

	return nil
}

// Commit finalizes the transaction. After commit the unit of work can begin
// a new one.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return pgerr.Map(err)
}

// Rollback discards the transaction. It returns gorm.ErrInvalidTransaction
// when nothing is open, which handlers ignore in their deferred rollback.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// AssetRepository returns an asset repository bound to the open transaction, or to the pool when none is open.
func (uow *GormUnitOfWork) AssetRepository() ports.AssetRepository {
	return assetrepo.NewGormAssetRepository(uow.conn(), uow)
}

// BookingRepository returns a booking repository on the same connection.
func (uow *GormUnitOfWork) BookingRepository() ports.BookingRepository {
	return bookingrepo.NewGormBookingRepository(uow.conn())
}

// OrderRepository returns an order repository on the same connection.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

// PricingTierRepository returns a tier repository on the same connection.
func (uow *GormUnitOfWork) PricingTierRepository() ports.PricingTierRepository {
	return tierrepo.NewGormPricingTierRepository(uow.conn())
}

// CompanyRepository returns a company repository on the same connection.
func (uow *GormUnitOfWork) CompanyRepository() ports.CompanyRepository {
	return companyrepo.NewGormCompanyRepository(uow.conn())
}

// TrackAggregate registers an aggregate written within this unit of work.
// Repositories call it after a successful Add or Update.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

// TrackedAggregates returns the aggregates written so far, in write order.
func (uow *GormUnitOfWork) TrackedAggregates() []any {
	aggregates := make([]any, 0, len(uow.trackedAggregates))
	for _, t := range uow.trackedAggregates {
		aggregates = append(aggregates, t.Aggregate)
	}
	return aggregates
}

// conn is the open transaction, or the pool when none is open.
func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
