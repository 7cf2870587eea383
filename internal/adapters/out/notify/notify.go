// Package notify holds notifiers that do not need a broker.
package notify

import (
	"context"
	"errors"
	"log/slog"

	"bakery/internal/core/ports"
)

// LogNotifier writes every notification to the log. It is the notifier used
// when no broker is configured.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.With("component", "notifier")}
}

func (n *LogNotifier) Notify(ctx context.Context, notification ports.Notification) error {
	n.logger.InfoContext(ctx, "notification",
		"event", string(notification.Event),
		"user_id", notification.UserID.Int64(),
		"payload", notification.Payload,
	)
	return nil
}

// Fanout delivers every notification to all notifiers and joins their errors.
type Fanout []ports.Notifier

func (f Fanout) Notify(ctx context.Context, notification ports.Notification) error {
	var errs []error
	for _, n := range f {
		if err := n.Notify(ctx, notification); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
