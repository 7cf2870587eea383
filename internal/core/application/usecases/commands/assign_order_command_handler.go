package commands

import (
	"context"
	"log/slog"
	"time"

	"bakery/internal/core/domain/model/access"
	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/order"
	"bakery/internal/core/domain/services"
	"bakery/internal/core/ports"
)

// AssignOrderCommandHandler runs the assignment engine inside one unit of
// work. Baker ids and, on a fresh claim, the status change are written by a
// single OrderRepository.Update, so either both land or neither does.
type AssignOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	engine     services.AssignmentEngine
	notifier   ports.Notifier
	logger     *slog.Logger
}

func NewAssignOrderCommandHandler(
	uowFactory OrderUoWFactory,
	engine services.AssignmentEngine,
	notifier ports.Notifier,
	logger *slog.Logger,
) AssignOrderCommandHandler {
	return AssignOrderCommandHandler{
		uowFactory: uowFactory,
		engine:     engine,
		notifier:   notifier,
		logger:     loggerOrDefault(logger).With("component", "AssignOrderCommandHandler"),
	}
}

// Handle assigns the requested bakers and returns the stored order.
//
// Failures of the combined write or of the commit surface as
// errs.TransitionFailedError; a concurrent change of the same order
// surfaces as errs.ConflictError.
func (h *AssignOrderCommandHandler) Handle(ctx context.Context, cmd AssignOrderCommand) (*order.Order, error) {
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

	users := uow.UserRepository()
	orders := uow.OrderRepository()

	actor, err := users.Get(ctx, cmd.ActorID())
	if err != nil {
		return nil, err
	}

	o, err := orders.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	var req services.Assignment
	if id := cmd.MainBakerID(); id != nil {
		if req.MainBaker, err = users.Get(ctx, *id); err != nil {
			return nil, err
		}
	}
	if id := cmd.JuniorBakerID(); id != nil {
		if req.JuniorBaker, err = users.Get(ctx, *id); err != nil {
			return nil, err
		}
		if req.JuniorActiveOrders, err = orders.CountByJuniorBaker(ctx, *id, order.ActiveStatuses()...); err != nil {
			return nil, err
		}
	}

	res, err := h.engine.Assign(o, access.ActorOf(actor), req, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if !res.Changed() {
		return o, nil
	}

	if err = orders.Update(ctx, o); err != nil {
		return nil, compoundFailure("assign order", err)
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, compoundFailure("assign order", err)
	}

	h.logger.InfoContext(ctx, "order assigned",
		"order_id", o.ID().Int64(),
		"main_baker_id", rawID(o.MainBakerID()),
		"junior_baker_id", rawID(o.JuniorBakerID()),
		"status", o.Status().String(),
		"actor_id", actor.ID().Int64(),
	)

	payload := map[string]any{
		"order_id":        o.ID().Int64(),
		"status":          o.Status().String(),
		"main_baker_id":   rawID(o.MainBakerID()),
		"junior_baker_id": rawID(o.JuniorBakerID()),
	}
	dispatch(ctx, h.notifier, h.logger, fanOut(ports.EventOrderAssigned, payload, actor.ID(), o.Participants()...)...)

	return o, nil
}

func rawID(id *kernel.ID) any {
	if id == nil {
		return nil
	}
	return id.Int64()
}
