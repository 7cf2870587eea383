package memory

import (
	"context"
	"slices"
	"sort"
	"time"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/order"
	"bakery/internal/pkg/errs"
)

type orderRepository struct {
	uow *UnitOfWork
}

func (r *orderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	return r.uow.run(ctx, func(s *state) error {
		id := s.nextID()
		if err := aggregate.Identify(id); err != nil {
			return err
		}
		aggregate.Versioned(1)
		s.orders[id] = aggregate.Snapshot()
		s.history[id] = append(s.history[id], aggregate.PullStatusChanges()...)
		return nil
	})
}

func (r *orderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	return r.uow.run(ctx, func(s *state) error {
		stored, ok := s.orders[aggregate.ID()]
		if !ok {
			return errs.NewObjectNotFoundError("order", aggregate.ID().Int64())
		}
		if stored.Version != aggregate.Version() {
			return errs.NewConflictError("order", aggregate.ID().Int64())
		}

		version := stored.Version + 1
		snapshot := aggregate.Snapshot()
		snapshot.Version = version
		s.orders[aggregate.ID()] = snapshot
		s.history[aggregate.ID()] = append(s.history[aggregate.ID()], aggregate.PullStatusChanges()...)
		aggregate.Versioned(version)
		return nil
	})
}

func (r *orderRepository) Get(ctx context.Context, id kernel.ID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	var found *order.Order
	err := r.uow.run(ctx, func(s *state) error {
		snapshot, ok := s.orders[id]
		if !ok {
			return errs.NewObjectNotFoundError("order", id.Int64())
		}
		var err error
		found, err = order.RestoreOrder(snapshot)
		return err
	})
	return found, err
}

func (r *orderRepository) ListByCustomer(ctx context.Context, customerID kernel.ID) ([]*order.Order, error) {
	return r.list(ctx, newestFirst, func(o order.Snapshot) bool {
		return o.CustomerID == customerID
	})
}

func (r *orderRepository) ListByMainBaker(ctx context.Context, mainBakerID kernel.ID) ([]*order.Order, error) {
	return r.list(ctx, newestFirst, func(o order.Snapshot) bool {
		return o.MainBakerID != nil && *o.MainBakerID == mainBakerID
	})
}

func (r *orderRepository) ListByJuniorBaker(ctx context.Context, juniorBakerID kernel.ID) ([]*order.Order, error) {
	return r.list(ctx, newestFirst, func(o order.Snapshot) bool {
		return o.JuniorBakerID != nil && *o.JuniorBakerID == juniorBakerID
	})
}

func (r *orderRepository) ListUnclaimed(ctx context.Context, createdBefore time.Time) ([]*order.Order, error) {
	return r.list(ctx, oldestFirst, func(o order.Snapshot) bool {
		return o.Status == order.Pending && o.MainBakerID == nil && o.CreatedAt.Before(createdBefore)
	})
}

func (r *orderRepository) ListAll(ctx context.Context) ([]*order.Order, error) {
	return r.list(ctx, newestFirst, func(order.Snapshot) bool { return true })
}

func (r *orderRepository) CountByJuniorBaker(
	ctx context.Context,
	juniorBakerID kernel.ID,
	statuses ...order.Status,
) (int, error) {
	count := 0
	err := r.uow.run(ctx, func(s *state) error {
		for _, o := range s.orders {
			if o.JuniorBakerID != nil && *o.JuniorBakerID == juniorBakerID && slices.Contains(statuses, o.Status) {
				count++
			}
		}
		return nil
	})
	return count, err
}

func (r *orderRepository) History(ctx context.Context, orderID kernel.ID) ([]order.StatusChange, error) {
	var changes []order.StatusChange
	err := r.uow.run(ctx, func(s *state) error {
		if _, ok := s.orders[orderID]; !ok {
			return errs.NewObjectNotFoundError("order", orderID.Int64())
		}
		changes = append([]order.StatusChange(nil), s.history[orderID]...)
		return nil
	})
	return changes, err
}

type ordering func(a, b order.Snapshot) bool

func newestFirst(a, b order.Snapshot) bool {
	if a.CreatedAt.Equal(b.CreatedAt) {
		return a.ID > b.ID
	}
	return a.CreatedAt.After(b.CreatedAt)
}

func oldestFirst(a, b order.Snapshot) bool {
	return newestFirst(b, a)
}

func (r *orderRepository) list(ctx context.Context, less ordering, keep func(order.Snapshot) bool) ([]*order.Order, error) {
	var orders []*order.Order
	err := r.uow.run(ctx, func(s *state) error {
		snapshots := make([]order.Snapshot, 0)
		for _, o := range s.orders {
			if keep(o) {
				snapshots = append(snapshots, o)
			}
		}
		sort.Slice(snapshots, func(i, j int) bool { return less(snapshots[i], snapshots[j]) })

		orders = make([]*order.Order, 0, len(snapshots))
		for _, snapshot := range snapshots {
			o, err := order.RestoreOrder(snapshot)
			if err != nil {
				return err
			}
			orders = append(orders, o)
		}
		return nil
	})
	return orders, err
}
