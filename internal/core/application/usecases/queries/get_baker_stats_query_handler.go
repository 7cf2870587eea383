package queries

import (
	"context"

	"bakery/internal/core/domain/model/access"
	"bakery/internal/core/domain/model/order"
)

type GetBakerStatsQueryHandler struct {
	readers ReaderFactory
}

func NewGetBakerStatsQueryHandler(readers ReaderFactory) GetBakerStatsQueryHandler {
	return GetBakerStatsQueryHandler{readers: readers}
}

func (h GetBakerStatsQueryHandler) Handle(
	ctx context.Context,
	query GetBakerStatsQuery,
) (GetBakerStatsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetBakerStatsQueryResponse{}, err
	}

	reader := h.readers.Create()
	users := reader.UserRepository()

	actor, err := users.Get(ctx, query.ActorID())
	if err != nil {
		return GetBakerStatsQueryResponse{}, err
	}
	baker, err := users.Get(ctx, query.BakerID())
	if err != nil {
		return GetBakerStatsQueryResponse{}, err
	}
	if err = access.Authorize(access.ActorOf(actor), access.ViewBakerStats, access.Resource{OwnerID: baker.ID()}); err != nil {
		return GetBakerStatsQueryResponse{}, err
	}

	orders := reader.OrderRepository()
	fulfilled, err := orders.CountByJuniorBaker(ctx, baker.ID(), order.FulfilledStatuses()...)
	if err != nil {
		return GetBakerStatsQueryResponse{}, err
	}
	active, err := orders.CountByJuniorBaker(ctx, baker.ID(), order.ActiveStatuses()...)
	if err != nil {
		return GetBakerStatsQueryResponse{}, err
	}
	rating, err := reader.ReviewRepository().RatingForJuniorBaker(ctx, baker.ID())
	if err != nil {
		return GetBakerStatsQueryResponse{}, err
	}

	return GetBakerStatsQueryResponse{
		BakerID:         baker.ID(),
		Role:            baker.Role(),
		FulfilledOrders: fulfilled,
		ActiveOrders:    active,
		ReviewCount:     rating.Count,
		AverageRating:   rating.Average,
	}, nil
}
