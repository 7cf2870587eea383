package commands

import (
	"context"
	"log/slog"
	"time"

	"bakery/internal/core/domain/model/access"
	"bakery/internal/core/domain/model/application"
	"bakery/internal/core/domain/services"
	"bakery/internal/core/ports"
)

// DecideApplicationCommandHandler records admin decisions. On approval the
// application and the applicant's new role are written in one unit of work.
//
// ApplicationRepository.Update only touches a still pending row, so of two
// concurrent decisions the second fails with errs.AlreadyDecidedError and its
// role change is rolled back with it.
type DecideApplicationCommandHandler struct {
	uowFactory ApplicationUoWFactory
	policy     services.PromotionPolicy
	notifier   ports.Notifier
	logger     *slog.Logger
}

func NewDecideApplicationCommandHandler(
	uowFactory ApplicationUoWFactory,
	policy services.PromotionPolicy,
	notifier ports.Notifier,
	logger *slog.Logger,
) DecideApplicationCommandHandler {
	return DecideApplicationCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		notifier:   notifier,
		logger:     loggerOrDefault(logger).With("component", "DecideApplicationCommandHandler"),
	}
}

func (h *DecideApplicationCommandHandler) Handle(
	ctx context.Context,
	cmd DecideApplicationCommand,
) (*application.BakerApplication, error) {
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
	apps := uow.ApplicationRepository()

	reviewer, err := users.Get(ctx, cmd.ReviewerID())
	if err != nil {
		return nil, err
	}

	app, err := apps.Get(ctx, cmd.ApplicationID())
	if err != nil {
		return nil, err
	}

	applicant, err := users.Get(ctx, app.UserID())
	if err != nil {
		return nil, err
	}

	if err = h.policy.Resolve(app, applicant, cmd.Decision(), access.ActorOf(reviewer), time.Now().UTC()); err != nil {
		return nil, err
	}

	if err = apps.Update(ctx, app); err != nil {
		return nil, compoundFailure("decide application", err)
	}

	if cmd.Decision() == application.Approve {
		if err = users.Update(ctx, applicant); err != nil {
			return nil, compoundFailure("decide application", err)
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, compoundFailure("decide application", err)
	}

	h.logger.InfoContext(ctx, "baker application decided",
		"application_id", app.ID().Int64(),
		"user_id", applicant.ID().Int64(),
		"decision", app.Status().String(),
		"role", applicant.Role().String(),
		"reviewer_id", reviewer.ID().Int64(),
	)

	dispatch(ctx, h.notifier, h.logger, ports.Notification{
		UserID: applicant.ID(),
		Event:  ports.EventApplicationDecided,
		Payload: map[string]any{
			"application_id": app.ID().Int64(),
			"status":         app.Status().String(),
			"role":           applicant.Role().String(),
		},
	})

	return app, nil
}
