package queries

import (
	"context"
	"sort"
	"time"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/order"
	"bakery/internal/core/domain/model/user"
)

// GetOrdersForActorQueryHandler builds the per-role order list:
//
//   - customer: own orders
//   - junior_baker: orders delegated to it
//   - main_baker: orders it supervises plus every unclaimed pending order
//   - admin: all orders
//
// Staff members also see the orders they placed as customers. The result is
// sorted newest first and holds each order once.
type GetOrdersForActorQueryHandler struct {
	readers ReaderFactory
}

func NewGetOrdersForActorQueryHandler(readers ReaderFactory) GetOrdersForActorQueryHandler {
	return GetOrdersForActorQueryHandler{readers: readers}
}

func (h GetOrdersForActorQueryHandler) Handle(
	ctx context.Context,
	query GetOrdersForActorQuery,
) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	reader := h.readers.Create()
	actor, err := reader.UserRepository().Get(ctx, query.ActorID())
	if err != nil {
		return nil, err
	}

	repo := reader.OrderRepository()
	var lists [][]*order.Order

	switch actor.Role() {
	case user.Admin:
		all, listErr := repo.ListAll(ctx)
		if listErr != nil {
			return nil, listErr
		}
		lists = append(lists, all)
	case user.MainBaker:
		own, listErr := repo.ListByMainBaker(ctx, actor.ID())
		if listErr != nil {
			return nil, listErr
		}
		unclaimed, listErr := repo.ListUnclaimed(ctx, time.Now().UTC())
		if listErr != nil {
			return nil, listErr
		}
		lists = append(lists, own, unclaimed)
	case user.JuniorBaker:
		delegated, listErr := repo.ListByJuniorBaker(ctx, actor.ID())
		if listErr != nil {
			return nil, listErr
		}
		lists = append(lists, delegated)
	}

	if actor.Role() != user.Admin {
		placed, listErr := repo.ListByCustomer(ctx, actor.ID())
		if listErr != nil {
			return nil, listErr
		}
		lists = append(lists, placed)
	}

	return mergeOrders(lists...), nil
}

func mergeOrders(lists ...[]*order.Order) []OrderResponse {
	seen := make(map[kernel.ID]struct{})
	out := make([]OrderResponse, 0)
	for _, list := range lists {
		for _, o := range list {
			if _, ok := seen[o.ID()]; ok {
				continue
			}
			seen[o.ID()] = struct{}{}
			out = append(out, ToOrderResponse(o))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
