package queries

import (
	"context"
	"errors"

	"bakery/internal/core/domain/model/access"
	"bakery/internal/pkg/errs"
)

// GetOrderQueryHandler returns an order to anyone allowed to view it: its
// customer, its bakers, any main baker while it is unclaimed, and admins.
type GetOrderQueryHandler struct {
	readers ReaderFactory
}

func NewGetOrderQueryHandler(readers ReaderFactory) GetOrderQueryHandler {
	return GetOrderQueryHandler{readers: readers}
}

func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	reader := h.readers.Create()
	actor, err := reader.UserRepository().Get(ctx, query.ActorID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	o, err := reader.OrderRepository().Get(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	if err = access.Authorize(access.ActorOf(actor), access.ViewOrder, o.Resource()); err != nil {
		return GetOrderQueryResponse{}, err
	}

	changes, err := reader.OrderRepository().History(ctx, o.ID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	resp := GetOrderQueryResponse{
		Order:   ToOrderResponse(o),
		History: make([]StatusChangeResponse, 0, len(changes)),
	}
	for _, c := range changes {
		resp.History = append(resp.History, StatusChangeResponse{From: c.From, To: c.To, ActorID: c.ActorID, At: c.At})
	}

	r, err := reader.ReviewRepository().GetByOrder(ctx, o.ID())
	switch {
	case err == nil:
		resp.Review = &ReviewResponse{Rating: r.Rating(), Comment: r.Comment()}
	case !errors.Is(err, errs.ErrObjectNotFound):
		return GetOrderQueryResponse{}, err
	}

	return resp, nil
}
