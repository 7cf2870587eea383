package commands

import (
	"context"
	"log/slog"
)

type PurgeMessagesCommandHandler struct {
	uowFactory MessageUoWFactory
	logger     *slog.Logger
}

func NewPurgeMessagesCommandHandler(uowFactory MessageUoWFactory, logger *slog.Logger) PurgeMessagesCommandHandler {
	return PurgeMessagesCommandHandler{
		uowFactory: uowFactory,
		logger:     loggerOrDefault(logger).With("component", "PurgeMessagesCommandHandler"),
	}
}

// Handle returns the number of deleted messages.
func (h *PurgeMessagesCommandHandler) Handle(ctx context.Context, cmd PurgeMessagesCommand) (int64, error) {
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

	deleted, err := uow.MessageRepository().DeleteOlderThan(ctx, cmd.Cutoff())
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	if deleted > 0 {
		h.logger.InfoContext(ctx, "messages purged", "deleted", deleted, "cutoff", cmd.Cutoff())
	}
	return deleted, nil
}
