// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management,
// persistence, and notifications sent only after a successful commit.
package commands

import (
	"context"

	"bakery/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler asks only for the repositories it touches.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	UserRepoFactory interface {
		UserRepository() ports.UserRepository
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	ApplicationRepoFactory interface {
		ApplicationRepository() ports.ApplicationRepository
	}

	ReviewRepoFactory interface {
		ReviewRepository() ports.ReviewRepository
	}

	MessageRepoFactory interface {
		MessageRepository() ports.MessageRepository
	}

	// UserUoW manages transactions for account operations.
	UserUoW interface {
		TxManager
		UserRepoFactory
	}

	UserUoWFactory interface {
		Create() UserUoW
	}

	// OrderUoW manages transactions for order lifecycle operations. The user
	// repository resolves the acting user and the bakers being assigned.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   actor, err := uow.UserRepository().Get(ctx, actorID)
	//   o, err := uow.OrderRepository().Get(ctx, orderID)
	//   // ... mutate o
	//
	//   err = uow.Commit(ctx)
	OrderUoW interface {
		TxManager
		UserRepoFactory
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// ApplicationUoW spans applications, the applicant account and the
	// order statistics used for eligibility.
	ApplicationUoW interface {
		TxManager
		UserRepoFactory
		OrderRepoFactory
		ApplicationRepoFactory
	}

	ApplicationUoWFactory interface {
		Create() ApplicationUoW
	}

	ReviewUoW interface {
		TxManager
		UserRepoFactory
		OrderRepoFactory
		ReviewRepoFactory
	}

	ReviewUoWFactory interface {
		Create() ReviewUoW
	}

	MessageUoW interface {
		TxManager
		UserRepoFactory
		OrderRepoFactory
		MessageRepoFactory
	}

	MessageUoWFactory interface {
		Create() MessageUoW
	}
)
