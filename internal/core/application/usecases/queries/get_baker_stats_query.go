package queries

import (
	"errors"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/user"
	"bakery/internal/pkg/guard"
)

var ErrGetBakerStatsQueryIsNotConstructed = errors.New(
	"GetBakerStatsQuery must be created via NewGetBakerStatsQuery constructor",
)

// GetBakerStatsQuery reads the track record of a baker. Bakers read their
// own numbers; admins read anyone's.
type GetBakerStatsQuery struct {
	actorID kernel.ID
	bakerID kernel.ID

	guard guard.ConstructorGuard
}

func NewGetBakerStatsQuery(actorID, bakerID kernel.ID) (GetBakerStatsQuery, error) {
	if err := errors.Join(actorID.Validate(), bakerID.Validate()); err != nil {
		return GetBakerStatsQuery{}, err
	}
	return GetBakerStatsQuery{actorID: actorID, bakerID: bakerID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetBakerStatsQuery) Validate() error {
	return q.guard.Validate(ErrGetBakerStatsQueryIsNotConstructed)
}

func (q GetBakerStatsQuery) ActorID() kernel.ID { return q.actorID }
func (q GetBakerStatsQuery) BakerID() kernel.ID { return q.bakerID }

// GetBakerStatsQueryResponse counts orders worked as junior baker.
// FulfilledOrders is the number the promotion threshold is checked against.
type GetBakerStatsQueryResponse struct {
	BakerID         kernel.ID
	Role            user.Role
	FulfilledOrders int
	ActiveOrders    int
	ReviewCount     int
	AverageRating   float64
}
