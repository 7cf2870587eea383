// Package ports defines the contracts between the bakery core and its
// infrastructure: repositories, the unit of work, the notifier and the
// password hasher. Every adapter under internal/adapters implements them.
package ports

import (
	"context"
	"time"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order with its items and recorded status changes,
	// and binds the generated id to the aggregate through Identify.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists status and assignment changes together with the
	// pending status changes of the aggregate.
	//
	// Update is optimistic: it succeeds only if the stored version equals
	// aggregate.Version(), and fails with errs.ConflictError otherwise.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by id or returns errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.ID) (*order.Order, error)

	ListByCustomer(ctx context.Context, customerID kernel.ID) ([]*order.Order, error)
	ListByMainBaker(ctx context.Context, mainBakerID kernel.ID) ([]*order.Order, error)
	ListByJuniorBaker(ctx context.Context, juniorBakerID kernel.ID) ([]*order.Order, error)

	// ListUnclaimed returns pending orders without a main baker created
	// before the given instant, oldest first.
	ListUnclaimed(ctx context.Context, createdBefore time.Time) ([]*order.Order, error)

	// ListAll returns every order, newest first.
	ListAll(ctx context.Context) ([]*order.Order, error)

	// CountByJuniorBaker counts orders delegated to the junior baker whose
	// status is one of statuses.
	//
	// Example:
	//
	//	fulfilled, err := repo.CountByJuniorBaker(ctx, userID, order.FulfilledStatuses()...)
	CountByJuniorBaker(ctx context.Context, juniorBakerID kernel.ID, statuses ...order.Status) (int, error)

	// History returns the recorded status changes of an order in the order they happened.
	History(ctx context.Context, orderID kernel.ID) ([]order.StatusChange, error)
}
