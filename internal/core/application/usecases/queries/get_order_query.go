package queries

import (
	"errors"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery loads one order with its status history.
type GetOrderQuery struct {
	orderID kernel.ID
	actorID kernel.ID

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(orderID, actorID kernel.ID) (GetOrderQuery, error) {
	if err := errors.Join(orderID.Validate(), actorID.Validate()); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{orderID: orderID, actorID: actorID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) OrderID() kernel.ID { return q.orderID }
func (q GetOrderQuery) ActorID() kernel.ID { return q.actorID }

// GetOrderQueryResponse is an order together with its audit trail and,
// once delivered and rated, the customer's review.
type GetOrderQueryResponse struct {
	Order   OrderResponse
	History []StatusChangeResponse
	Review  *ReviewResponse
}

type ReviewResponse struct {
	Rating  int
	Comment string
}
