package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary. Repositories
// obtained after Begin share the transaction; repositories obtained without
// Begin run each call on its own.
type UnitOfWork interface {
	// Begin starts a new transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	UserRepository() UserRepository
	OrderRepository() OrderRepository
	ApplicationRepository() ApplicationRepository
	ReviewRepository() ReviewRepository
	MessageRepository() MessageRepository
}
