package queries

import (
	"context"

	"bakery/internal/core/domain/model/access"
	"bakery/internal/core/domain/model/application"
)

type GetApplicationsQueryHandler struct {
	readers ReaderFactory
}

func NewGetApplicationsQueryHandler(readers ReaderFactory) GetApplicationsQueryHandler {
	return GetApplicationsQueryHandler{readers: readers}
}

// Handle returns applications newest first.
func (h GetApplicationsQueryHandler) Handle(
	ctx context.Context,
	query GetApplicationsQuery,
) ([]ApplicationResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	reader := h.readers.Create()
	actor, err := reader.UserRepository().Get(ctx, query.ActorID())
	if err != nil {
		return nil, err
	}

	var apps []*application.BakerApplication
	if access.CanAct(access.ActorOf(actor), access.ViewApplications, access.Resource{}) {
		apps, err = reader.ApplicationRepository().ListByStatus(ctx, query.Status())
	} else {
		apps, err = reader.ApplicationRepository().ListByUser(ctx, actor.ID())
	}
	if err != nil {
		return nil, err
	}

	out := make([]ApplicationResponse, 0, len(apps))
	for _, a := range apps {
		if query.Status() != application.UnknownStatus && a.Status() != query.Status() {
			continue
		}
		out = append(out, ToApplicationResponse(a))
	}
	return out, nil
}
