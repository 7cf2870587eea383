package commands

import (
	"errors"
	"time"

	"bakery/internal/pkg/errs"
	"bakery/internal/pkg/guard"
)

var ErrPurgeMessagesCommandIsNotConstructed = errors.New(
	"PurgeMessagesCommand must be created via NewPurgeMessagesCommand constructor",
)

// PurgeMessagesCommand deletes messages older than the retention period.
type PurgeMessagesCommand struct { //nolint:recvcheck //using for validation
	cutoff time.Time

	guard guard.ConstructorGuard
}

func NewPurgeMessagesCommand(now time.Time, retention time.Duration) (PurgeMessagesCommand, error) {
	if retention <= 0 {
		return PurgeMessagesCommand{}, errs.NewValueIsInvalidError("retention")
	}
	return PurgeMessagesCommand{cutoff: now.Add(-retention), guard: guard.NewConstructorGuard()}, nil
}

func (c PurgeMessagesCommand) Validate() error {
	return c.guard.Validate(ErrPurgeMessagesCommandIsNotConstructed)
}

func (c PurgeMessagesCommand) Cutoff() time.Time { return c.cutoff }
