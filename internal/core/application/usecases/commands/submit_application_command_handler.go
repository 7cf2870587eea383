package commands

import (
	"context"
	"log/slog"
	"time"

	"bakery/internal/core/domain/model/application"
	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/order"
	"bakery/internal/core/domain/model/user"
	"bakery/internal/core/domain/services"
	"bakery/internal/core/ports"
	"bakery/internal/pkg/errs"
)

// SubmitApplicationCommandHandler opens baker applications.
//
// Checks, in order:
//   - the user has no pending application (DuplicatePendingApplicationError)
//   - the claimed role is the stored role (StaleRoleError)
//   - the requested role is the next allowed step (NotEligibleError)
//   - main baker requests meet the fulfilled order threshold (NotEligibleError)
//
// ApplicationRepository.Add enforces the single pending application again,
// so two racing submissions cannot both succeed.
type SubmitApplicationCommandHandler struct {
	uowFactory ApplicationUoWFactory
	policy     services.PromotionPolicy
	notifier   ports.Notifier
	logger     *slog.Logger
}

func NewSubmitApplicationCommandHandler(
	uowFactory ApplicationUoWFactory,
	policy services.PromotionPolicy,
	notifier ports.Notifier,
	logger *slog.Logger,
) SubmitApplicationCommandHandler {
	return SubmitApplicationCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		notifier:   notifier,
		logger:     loggerOrDefault(logger).With("component", "SubmitApplicationCommandHandler"),
	}
}

func (h *SubmitApplicationCommandHandler) Handle(ctx context.Context, cmd SubmitApplicationCommand) (kernel.ID, error) {
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

	applicant, err := uow.UserRepository().Get(ctx, cmd.UserID())
	if err != nil {
		return 0, err
	}

	apps := uow.ApplicationRepository()
	pending, err := apps.HasPending(ctx, applicant.ID())
	if err != nil {
		return 0, err
	}
	if pending {
		return 0, errs.NewDuplicatePendingApplicationError(applicant.ID().Int64())
	}

	app, err := application.NewBakerApplication(
		applicant,
		cmd.ClaimedRole(),
		cmd.RequestedRole(),
		cmd.Experience(),
		cmd.Reason(),
		time.Now().UTC(),
	)
	if err != nil {
		return 0, err
	}

	if h.policy.NeedsTrackRecord(app.RequestedRole()) {
		fulfilled, countErr := uow.OrderRepository().CountByJuniorBaker(ctx, applicant.ID(), order.FulfilledStatuses()...)
		if countErr != nil {
			return 0, countErr
		}
		if err = h.policy.CheckEligibility(app.RequestedRole(), fulfilled); err != nil {
			return 0, err
		}
	}

	if err = apps.Add(ctx, app); err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	h.logger.InfoContext(ctx, "baker application submitted",
		"application_id", app.ID().Int64(),
		"user_id", applicant.ID().Int64(),
		"requested_role", app.RequestedRole().String(),
	)

	h.notifyAdmins(ctx, app)
	return app.ID(), nil
}

func (h *SubmitApplicationCommandHandler) notifyAdmins(ctx context.Context, app *application.BakerApplication) {
	admins, err := h.uowFactory.Create().UserRepository().ListByRole(ctx, user.Admin)
	if err != nil {
		h.logger.WarnContext(ctx, "could not list admins for notification", "error", err)
		return
	}

	ids := make([]kernel.ID, 0, len(admins))
	for _, a := range admins {
		ids = append(ids, a.ID())
	}

	dispatch(ctx, h.notifier, h.logger, fanOut(ports.EventApplicationSubmitted, map[string]any{
		"application_id": app.ID().Int64(),
		"user_id":        app.UserID().Int64(),
		"requested_role": app.RequestedRole().String(),
	}, app.UserID(), ids...)...)
}
