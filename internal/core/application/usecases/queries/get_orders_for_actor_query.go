package queries

import (
	"errors"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/pkg/guard"
)

var ErrGetOrdersForActorQueryIsNotConstructed = errors.New(
	"GetOrdersForActorQuery must be created via NewGetOrdersForActorQuery constructor",
)

// GetOrdersForActorQuery lists the orders an actor's dashboard shows.
//
// Example:
//
//	query, err := NewGetOrdersForActorQuery(actorID)
//	if err != nil {
//	    return err
//	}
//	orders, err := handler.Handle(ctx, query)
type GetOrdersForActorQuery struct {
	actorID kernel.ID

	guard guard.ConstructorGuard
}

func NewGetOrdersForActorQuery(actorID kernel.ID) (GetOrdersForActorQuery, error) {
	if err := actorID.Validate(); err != nil {
		return GetOrdersForActorQuery{}, err
	}
	return GetOrdersForActorQuery{actorID: actorID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrdersForActorQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersForActorQueryIsNotConstructed)
}

func (q GetOrdersForActorQuery) ActorID() kernel.ID { return q.actorID }
