package commands

import (
	"errors"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/user"
	"bakery/internal/pkg/guard"
)

var ErrSubmitApplicationCommandIsNotConstructed = errors.New(
	"SubmitApplicationCommand must be created via NewSubmitApplicationCommand constructor",
)

// SubmitApplicationCommand is a request for a baker role. ClaimedRole is the
// role the client believed the user held when the form was filled in.
type SubmitApplicationCommand struct { //nolint:recvcheck //using for validation
	userID        kernel.ID
	claimedRole   user.Role
	requestedRole user.Role
	experience    string
	reason        string

	guard guard.ConstructorGuard
}

func NewSubmitApplicationCommand(
	userID kernel.ID,
	claimedRole user.Role,
	requestedRole user.Role,
	experience string,
	reason string,
) (SubmitApplicationCommand, error) {
	if err := errors.Join(userID.Validate(), claimedRole.Validate(), requestedRole.Validate()); err != nil {
		return SubmitApplicationCommand{}, err
	}

	return SubmitApplicationCommand{
		userID:        userID,
		claimedRole:   claimedRole,
		requestedRole: requestedRole,
		experience:    experience,
		reason:        reason,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (c SubmitApplicationCommand) Validate() error {
	return c.guard.Validate(ErrSubmitApplicationCommandIsNotConstructed)
}

func (c SubmitApplicationCommand) UserID() kernel.ID        { return c.userID }
func (c SubmitApplicationCommand) ClaimedRole() user.Role   { return c.claimedRole }
func (c SubmitApplicationCommand) RequestedRole() user.Role { return c.requestedRole }
func (c SubmitApplicationCommand) Experience() string       { return c.experience }
func (c SubmitApplicationCommand) Reason() string           { return c.reason }
