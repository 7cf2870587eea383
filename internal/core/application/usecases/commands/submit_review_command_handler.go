package commands

import (
	"context"
	"log/slog"
	"time"

	"bakery/internal/core/domain/model/access"
	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/review"
	"bakery/internal/core/ports"
)

type SubmitReviewCommandHandler struct {
	uowFactory ReviewUoWFactory
	notifier   ports.Notifier
	logger     *slog.Logger
}

func NewSubmitReviewCommandHandler(
	uowFactory ReviewUoWFactory,
	notifier ports.Notifier,
	logger *slog.Logger,
) SubmitReviewCommandHandler {
	return SubmitReviewCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		logger:     loggerOrDefault(logger).With("component", "SubmitReviewCommandHandler"),
	}
}

// Handle stores the customer's rating of a delivered order. An order is
// reviewed at most once (review.ErrOrderAlreadyReviewed).
func (h *SubmitReviewCommandHandler) Handle(ctx context.Context, cmd SubmitReviewCommand) (kernel.ID, error) {
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

	customer, err := uow.UserRepository().Get(ctx, cmd.CustomerID())
	if err != nil {
		return 0, err
	}

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return 0, err
	}

	r, err := review.NewReview(o, access.ActorOf(customer), cmd.Rating(), cmd.Comment(), time.Now().UTC())
	if err != nil {
		return 0, err
	}

	if err = uow.ReviewRepository().Add(ctx, r); err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	dispatch(ctx, h.notifier, h.logger, ports.Notification{
		UserID:  r.JuniorBakerID(),
		Event:   ports.EventOrderReviewed,
		Payload: map[string]any{"order_id": r.OrderID().Int64(), "rating": r.Rating()},
	})

	return r.ID(), nil
}
