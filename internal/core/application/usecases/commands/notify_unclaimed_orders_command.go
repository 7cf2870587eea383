package commands

import (
	"errors"
	"time"

	"bakery/internal/pkg/errs"
	"bakery/internal/pkg/guard"
)

var ErrNotifyUnclaimedOrdersCommandIsNotConstructed = errors.New(
	"NotifyUnclaimedOrdersCommand must be created via NewNotifyUnclaimedOrdersCommand constructor",
)

// NotifyUnclaimedOrdersCommand reminds main bakers of pending orders nobody claimed.
type NotifyUnclaimedOrdersCommand struct { //nolint:recvcheck //using for validation
	createdBefore time.Time

	guard guard.ConstructorGuard
}

func NewNotifyUnclaimedOrdersCommand(now time.Time, olderThan time.Duration) (NotifyUnclaimedOrdersCommand, error) {
	if olderThan <= 0 {
		return NotifyUnclaimedOrdersCommand{}, errs.NewValueIsInvalidError("unclaimed order age")
	}
	return NotifyUnclaimedOrdersCommand{
		createdBefore: now.Add(-olderThan),
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (c NotifyUnclaimedOrdersCommand) Validate() error {
	return c.guard.Validate(ErrNotifyUnclaimedOrdersCommandIsNotConstructed)
}

func (c NotifyUnclaimedOrdersCommand) CreatedBefore() time.Time { return c.createdBefore }
