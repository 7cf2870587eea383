package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"bakery/internal/core/domain/model/access"
	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/message"
	"bakery/internal/core/domain/model/user"
	"bakery/internal/core/ports"
	"bakery/internal/pkg/errs"
)

// SendMessageCommandHandler stores messages. Messages about an order are
// allowed only between its participants; admins may join any conversation.
type SendMessageCommandHandler struct {
	uowFactory MessageUoWFactory
	notifier   ports.Notifier
	logger     *slog.Logger
}

func NewSendMessageCommandHandler(
	uowFactory MessageUoWFactory,
	notifier ports.Notifier,
	logger *slog.Logger,
) SendMessageCommandHandler {
	return SendMessageCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		logger:     loggerOrDefault(logger).With("component", "SendMessageCommandHandler"),
	}
}

func (h *SendMessageCommandHandler) Handle(ctx context.Context, cmd SendMessageCommand) (kernel.ID, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	users := uow.UserRepository()
	sender, err := users.Get(ctx, cmd.SenderID())
	if err != nil {
		return 0, err
	}
	recipient, err := users.Get(ctx, cmd.RecipientID())
	if err != nil {
		return 0, err
	}

	if orderID := cmd.OrderID(); orderID != nil {
		o, getErr := uow.OrderRepository().Get(ctx, *orderID)
		if getErr != nil {
			return 0, getErr
		}
		if err = access.Authorize(access.ActorOf(sender), access.MessageOrder, o.Resource()); err != nil {
			return 0, err
		}
		if !o.IsParticipant(recipient.ID()) && !access.HoldsRole(recipient, user.Admin) {
			return 0, errs.NewValueIsInvalidErrorWithCause(
				"recipient",
				fmt.Errorf("user %s does not take part in order %s", recipient.ID(), o.ID()),
			)
		}
	} else if err = access.Authorize(access.ActorOf(sender), access.SendDirectMessage, access.Resource{OwnerID: sender.ID()}); err != nil {
		return 0, err
	}

	m, err := message.NewMessage(sender.ID(), recipient.ID(), cmd.OrderID(), cmd.Body(), time.Now().UTC())
	if err != nil {
		return 0, err
	}

	if err = uow.MessageRepository().Add(ctx, m); err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	payload := map[string]any{"message_id": m.ID().Int64(), "sender_id": sender.ID().Int64()}
	if id := m.OrderID(); id != nil {
		payload["order_id"] = id.Int64()
	}
	dispatch(ctx, h.notifier, h.logger, ports.Notification{
		UserID:  recipient.ID(),
		Event:   ports.EventMessageReceived,
		Payload: payload,
	})

	return m.ID(), nil
}
