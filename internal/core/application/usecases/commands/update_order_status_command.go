package commands

import (
	"errors"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/order"
	"bakery/internal/pkg/guard"
)

var ErrUpdateOrderStatusCommandIsNotConstructed = errors.New(
	"UpdateOrderStatusCommand must be created via NewUpdateOrderStatusCommand constructor",
)

// UpdateOrderStatusCommand asks to move an order to a target status on behalf of a baker or admin.
type UpdateOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.ID
	actorID kernel.ID
	target  order.Status

	guard guard.ConstructorGuard
}

func NewUpdateOrderStatusCommand(orderID, actorID kernel.ID, target order.Status) (UpdateOrderStatusCommand, error) {
	cmd := UpdateOrderStatusCommand{
		orderID: orderID,
		actorID: actorID,
		target:  target,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(orderID.Validate(), actorID.Validate(), target.Validate()); err != nil {
		return UpdateOrderStatusCommand{}, err
	}

	return cmd, nil
}

func (c UpdateOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderStatusCommandIsNotConstructed)
}

func (c UpdateOrderStatusCommand) OrderID() kernel.ID   { return c.orderID }
func (c UpdateOrderStatusCommand) ActorID() kernel.ID   { return c.actorID }
func (c UpdateOrderStatusCommand) Target() order.Status { return c.target }
