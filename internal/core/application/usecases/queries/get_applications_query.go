package queries

import (
	"errors"

	"bakery/internal/core/domain/model/application"
	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/pkg/guard"
)

var ErrGetApplicationsQueryIsNotConstructed = errors.New(
	"GetApplicationsQuery must be created via NewGetApplicationsQuery constructor",
)

// GetApplicationsQuery lists baker applications. Admins see every
// application, other users only their own. UnknownStatus means any status.
type GetApplicationsQuery struct {
	actorID kernel.ID
	status  application.Status

	guard guard.ConstructorGuard
}

func NewGetApplicationsQuery(actorID kernel.ID, status application.Status) (GetApplicationsQuery, error) {
	if err := actorID.Validate(); err != nil {
		return GetApplicationsQuery{}, err
	}
	if status != application.UnknownStatus {
		if err := status.Validate(); err != nil {
			return GetApplicationsQuery{}, err
		}
	}
	return GetApplicationsQuery{actorID: actorID, status: status, guard: guard.NewConstructorGuard()}, nil
}

func (q GetApplicationsQuery) Validate() error {
	return q.guard.Validate(ErrGetApplicationsQueryIsNotConstructed)
}

func (q GetApplicationsQuery) ActorID() kernel.ID         { return q.actorID }
func (q GetApplicationsQuery) Status() application.Status { return q.status }
