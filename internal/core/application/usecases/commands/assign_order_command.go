package commands

import (
	"errors"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/pkg/guard"
)

var ErrAssignOrderCommandIsNotConstructed = errors.New(
	"AssignOrderCommand must be created via NewAssignOrderCommand constructor",
)

// AssignOrderCommand binds bakers to an order. Both baker ids are optional:
// an empty request from a main baker claims an unclaimed order for itself.
type AssignOrderCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.ID
	actorID       kernel.ID
	mainBakerID   *kernel.ID
	juniorBakerID *kernel.ID

	guard guard.ConstructorGuard
}

func NewAssignOrderCommand(orderID, actorID kernel.ID, mainBakerID, juniorBakerID *kernel.ID) (AssignOrderCommand, error) {
	cmd := AssignOrderCommand{
		orderID: orderID,
		actorID: actorID,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderID.Validate(),
		actorID.Validate(),
		cmd.setMainBakerID(mainBakerID),
		cmd.setJuniorBakerID(juniorBakerID),
	); err != nil {
		return AssignOrderCommand{}, err
	}

	return cmd, nil
}

func (c AssignOrderCommand) Validate() error {
	return c.guard.Validate(ErrAssignOrderCommandIsNotConstructed)
}

func (c AssignOrderCommand) OrderID() kernel.ID { return c.orderID }
func (c AssignOrderCommand) ActorID() kernel.ID { return c.actorID }

func (c AssignOrderCommand) MainBakerID() *kernel.ID {
	if c.mainBakerID == nil {
		return nil
	}
	id := *c.mainBakerID
	return &id
}

func (c AssignOrderCommand) JuniorBakerID() *kernel.ID {
	if c.juniorBakerID == nil {
		return nil
	}
	id := *c.juniorBakerID
	return &id
}

func (c *AssignOrderCommand) setMainBakerID(id *kernel.ID) error {
	if id == nil {
		return nil
	}
	if err := id.Validate(); err != nil {
		return err
	}
	v := *id
	c.mainBakerID = &v
	return nil
}

func (c *AssignOrderCommand) setJuniorBakerID(id *kernel.ID) error {
	if id == nil {
		return nil
	}
	if err := id.Validate(); err != nil {
		return err
	}
	v := *id
	c.juniorBakerID = &v
	return nil
}
