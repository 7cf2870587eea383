package commands

import (
	"context"
	"log/slog"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/user"
	"bakery/internal/core/ports"
)

// NotifyUnclaimedOrdersCommandHandler sends an advisory reminder to every
// main baker for each order still waiting to be claimed. It only reads.
type NotifyUnclaimedOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
	logger     *slog.Logger
}

func NewNotifyUnclaimedOrdersCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.Notifier,
	logger *slog.Logger,
) NotifyUnclaimedOrdersCommandHandler {
	return NotifyUnclaimedOrdersCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		logger:     loggerOrDefault(logger).With("component", "NotifyUnclaimedOrdersCommandHandler"),
	}
}

// Handle returns the number of unclaimed orders found.
func (h *NotifyUnclaimedOrdersCommandHandler) Handle(ctx context.Context, cmd NotifyUnclaimedOrdersCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()

	orders, err := uow.OrderRepository().ListUnclaimed(ctx, cmd.CreatedBefore())
	if err != nil {
		return 0, err
	}
	if len(orders) == 0 {
		return 0, nil
	}

	bakers, err := uow.UserRepository().ListByRole(ctx, user.MainBaker)
	if err != nil {
		return 0, err
	}

	ids := make([]kernel.ID, 0, len(bakers))
	for _, b := range bakers {
		ids = append(ids, b.ID())
	}

	for _, o := range orders {
		dispatch(ctx, h.notifier, h.logger, fanOut(ports.EventOrderUnclaimed, map[string]any{
			"order_id":   o.ID().Int64(),
			"created_at": o.CreatedAt(),
			"total":      o.Total().String(),
		}, 0, ids...)...)
	}

	h.logger.InfoContext(ctx, "unclaimed orders announced", "orders", len(orders), "main_bakers", len(ids))
	return len(orders), nil
}
