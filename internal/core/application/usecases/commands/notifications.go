package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/ports"
	"bakery/internal/pkg/errs"
)

// dispatch hands committed notifications to the notifier. Failures are
// logged and never reach the caller.
func dispatch(ctx context.Context, notifier ports.Notifier, logger *slog.Logger, notifications ...ports.Notification) {
	if notifier == nil {
		return
	}
	for _, n := range notifications {
		if n.OccurredAt.IsZero() {
			n.OccurredAt = time.Now().UTC()
		}
		if err := notifier.Notify(ctx, n); err != nil {
			logger.WarnContext(ctx, "notification failed",
				"event", string(n.Event),
				"user_id", n.UserID.Int64(),
				"error", err,
			)
		}
	}
}

// fanOut builds one notification per recipient, skipping the actor and duplicates.
func fanOut(event ports.Event, payload map[string]any, actorID kernel.ID, recipients ...kernel.ID) []ports.Notification {
	seen := make(map[kernel.ID]struct{}, len(recipients))
	out := make([]ports.Notification, 0, len(recipients))
	for _, id := range recipients {
		if id == actorID || id.IsZero() {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, ports.Notification{UserID: id, Event: event, Payload: payload})
	}
	return out
}

// compoundFailure classifies an error raised while persisting a change that
// spans several writes. Lost races keep their own kind; anything else means
// the change was rolled back and may be retried as a whole.
func compoundFailure(operation string, err error) error {
	if errors.Is(err, errs.ErrConflict) ||
		errors.Is(err, errs.ErrAlreadyDecided) ||
		errors.Is(err, errs.ErrDuplicatePendingApplication) {
		return err
	}
	return errs.NewTransitionFailedError(operation, err)
}

func loggerOrDefault(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
