package commands

import (
	"errors"

	"bakery/internal/core/domain/model/application"
	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/pkg/guard"
)

var ErrDecideApplicationCommandIsNotConstructed = errors.New(
	"DecideApplicationCommand must be created via NewDecideApplicationCommand constructor",
)

// DecideApplicationCommand resolves a pending baker application.
type DecideApplicationCommand struct { //nolint:recvcheck //using for validation
	applicationID kernel.ID
	reviewerID    kernel.ID
	decision      application.Decision

	guard guard.ConstructorGuard
}

func NewDecideApplicationCommand(
	applicationID, reviewerID kernel.ID,
	decision application.Decision,
) (DecideApplicationCommand, error) {
	if err := errors.Join(applicationID.Validate(), reviewerID.Validate(), decision.Validate()); err != nil {
		return DecideApplicationCommand{}, err
	}

	return DecideApplicationCommand{
		applicationID: applicationID,
		reviewerID:    reviewerID,
		decision:      decision,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (c DecideApplicationCommand) Validate() error {
	return c.guard.Validate(ErrDecideApplicationCommandIsNotConstructed)
}

func (c DecideApplicationCommand) ApplicationID() kernel.ID       { return c.applicationID }
func (c DecideApplicationCommand) ReviewerID() kernel.ID          { return c.reviewerID }
func (c DecideApplicationCommand) Decision() application.Decision { return c.decision }
