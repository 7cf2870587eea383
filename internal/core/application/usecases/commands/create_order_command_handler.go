package commands

import (
	"context"
	"log/slog"
	"time"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/order"
	"bakery/internal/core/ports"
)

// CreateOrderCommandHandler places new orders. Payment is simulated: the
// chosen method is recorded and nothing is charged.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
	logger     *slog.Logger
}

func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.Notifier,
	logger *slog.Logger,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		logger:     loggerOrDefault(logger).With("component", "CreateOrderCommandHandler"),
	}
}

// Handle persists the order in pending status and returns its id. The
// customer must be a registered user.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (kernel.ID, error) {
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

	if _, err := uow.UserRepository().Get(ctx, cmd.CustomerID()); err != nil {
		return 0, err
	}

	o, err := order.NewOrder(cmd.CustomerID(), cmd.Items(), cmd.DeliveryInfo(), cmd.PaymentMethod(), time.Now().UTC())
	if err != nil {
		return 0, err
	}

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	dispatch(ctx, h.notifier, h.logger, ports.Notification{
		UserID: o.CustomerID(),
		Event:  ports.EventOrderCreated,
		Payload: map[string]any{
			"order_id": o.ID().Int64(),
			"status":   o.Status().String(),
			"total":    o.Total().String(),
		},
	})

	return o.ID(), nil
}
