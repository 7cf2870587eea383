// Package postgres provides the GORM-based Unit of Work of the bakery.
//
// Repositories obtained from a GormUnitOfWork share its transaction once Begin
// was called; without Begin each repository call runs on the connection pool
// directly. Command handlers always begin a transaction, read models do not.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	if err := uow.OrderRepository().Update(ctx, o); err != nil {
//	    return err
//	}
//	if err := uow.ApplicationRepository().Update(ctx, app); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Concurrency is resolved by the database: orders carry a version column that
// Update checks, applications are decided with a conditional update, and the
// one-pending-application and one-review-per-order rules are unique indexes.
package postgres

import (
	"context"
	"errors"

	"bakery/internal/adapters/out/postgres/applicationrepo"
	"bakery/internal/adapters/out/postgres/messagerepo"
	"bakery/internal/adapters/out/postgres/orderrepo"
	"bakery/internal/adapters/out/postgres/reviewrepo"
	"bakery/internal/adapters/out/postgres/userrepo"
	"bakery/internal/core/ports"

	"gorm.io/gorm"
)

// ErrNoActiveTransaction is returned by Commit and Rollback without Begin.
var ErrNoActiveTransaction = errors.New("no active transaction")

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one GORM pool.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
//
// Example:
//
//	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
//	if err != nil {
//	    return err
//	}
//	factory := NewGormUnitOfWorkFactory(db)
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork. Instances are not safe for concurrent
// use; every command gets its own.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{db: f.db}
}

// GormUnitOfWork coordinates one database transaction across repositories.
type GormUnitOfWork struct {
	db *gorm.DB
	tx *gorm.DB
}

// Begin starts a transaction. Calling Begin on an active unit of work is a no-op.
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

// Commit finalizes the transaction. The unit of work can begin again afterwards.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return ErrNoActiveTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards the transaction.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return ErrNoActiveTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

func (uow *GormUnitOfWork) UserRepository() ports.UserRepository {
	return userrepo.NewGormUserRepository(uow.conn())
}

func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn())
}

func (uow *GormUnitOfWork) ApplicationRepository() ports.ApplicationRepository {
	return applicationrepo.NewGormApplicationRepository(uow.conn())
}

func (uow *GormUnitOfWork) ReviewRepository() ports.ReviewRepository {
	return reviewrepo.NewGormReviewRepository(uow.conn())
}

func (uow *GormUnitOfWork) MessageRepository() ports.MessageRepository {
	return messagerepo.NewGormMessageRepository(uow.conn())
}

// conn returns the active transaction, or the pool when none is active.
func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
