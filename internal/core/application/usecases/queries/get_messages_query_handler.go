package queries

import (
	"context"

	"bakery/internal/core/domain/model/access"
	"bakery/internal/core/domain/model/message"
)

type GetMessagesQueryHandler struct {
	readers ReaderFactory
}

func NewGetMessagesQueryHandler(readers ReaderFactory) GetMessagesQueryHandler {
	return GetMessagesQueryHandler{readers: readers}
}

// Handle returns messages oldest first.
func (h GetMessagesQueryHandler) Handle(ctx context.Context, query GetMessagesQuery) ([]MessageResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	reader := h.readers.Create()
	actor, err := reader.UserRepository().Get(ctx, query.ActorID())
	if err != nil {
		return nil, err
	}

	messages := reader.MessageRepository()
	var found []*message.Message

	switch {
	case query.OrderID() != nil:
		o, getErr := reader.OrderRepository().Get(ctx, *query.OrderID())
		if getErr != nil {
			return nil, getErr
		}
		if err = access.Authorize(access.ActorOf(actor), access.MessageOrder, o.Resource()); err != nil {
			return nil, err
		}
		found, err = messages.ListByOrder(ctx, o.ID())
	case query.PeerID() != nil:
		found, err = messages.ListConversation(ctx, actor.ID(), *query.PeerID())
	default:
		found, err = messages.ListForUser(ctx, actor.ID(), query.Since())
	}
	if err != nil {
		return nil, err
	}

	return toMessageResponses(found), nil
}
