package commands

import (
	"context"
	"log/slog"
	"time"

	"bakery/internal/core/domain/model/access"
	"bakery/internal/core/domain/model/order"
	"bakery/internal/core/ports"
)

// UpdateOrderStatusCommandHandler drives the order status machine.
//
// Two concurrent requests on the same order are serialized by the optimistic
// version check of OrderRepository.Update: the loser fails with
// errs.ConflictError and nothing it did is kept.
type UpdateOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
	logger     *slog.Logger
}

func NewUpdateOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.Notifier,
	logger *slog.Logger,
) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		logger:     loggerOrDefault(logger).With("component", "UpdateOrderStatusCommandHandler"),
	}
}

// Handle applies the transition and returns the order as stored afterwards.
// Requesting the current status returns the order unchanged without writing.
func (h *UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	actor, err := uow.UserRepository().Get(ctx, cmd.ActorID())
	if err != nil {
		return nil, err
	}

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	from := o.Status()
	changed, err := o.Transition(cmd.Target(), access.ActorOf(actor), time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if !changed {
		return o, nil
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.logger.InfoContext(ctx, "order status changed",
		"order_id", o.ID().Int64(),
		"from", from.String(),
		"to", o.Status().String(),
		"actor_id", actor.ID().Int64(),
	)

	event := ports.EventOrderStatusChanged
	if o.Status() == order.Cancelled {
		event = ports.EventOrderCancelled
	}
	dispatch(ctx, h.notifier, h.logger, fanOut(event, map[string]any{
		"order_id": o.ID().Int64(),
		"from":     from.String(),
		"to":       o.Status().String(),
	}, actor.ID(), o.Participants()...)...)

	return o, nil
}
