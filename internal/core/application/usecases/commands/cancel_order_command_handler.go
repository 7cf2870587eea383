package commands

import (
	"context"
	"log/slog"
	"time"

	"bakery/internal/core/domain/model/access"
	"bakery/internal/core/domain/model/order"
	"bakery/internal/core/ports"
)

type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
	logger     *slog.Logger
}

func NewCancelOrderCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.Notifier,
	logger *slog.Logger,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		logger:     loggerOrDefault(logger).With("component", "CancelOrderCommandHandler"),
	}
}

// Handle cancels a pending order of the requesting customer. Cancelling an
// already cancelled order succeeds without writing.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (*order.Order, error) {
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

	customer, err := uow.UserRepository().Get(ctx, cmd.CustomerID())
	if err != nil {
		return nil, err
	}

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	changed, err := o.CancelByCustomer(access.ActorOf(customer), time.Now().UTC())
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

	h.logger.InfoContext(ctx, "order cancelled by customer", "order_id", o.ID().Int64())
	dispatch(ctx, h.notifier, h.logger, ports.Notification{
		UserID:  o.CustomerID(),
		Event:   ports.EventOrderCancelled,
		Payload: map[string]any{"order_id": o.ID().Int64(), "to": o.Status().String()},
	})

	return o, nil
}
