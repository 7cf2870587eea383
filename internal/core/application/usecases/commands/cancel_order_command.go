package commands

import (
	"errors"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/pkg/guard"
)

var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

// CancelOrderCommand is the customer's own cancellation of an order no baker claimed yet.
type CancelOrderCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.ID
	customerID kernel.ID

	guard guard.ConstructorGuard
}

func NewCancelOrderCommand(orderID, customerID kernel.ID) (CancelOrderCommand, error) {
	if err := errors.Join(orderID.Validate(), customerID.Validate()); err != nil {
		return CancelOrderCommand{}, err
	}
	return CancelOrderCommand{
		orderID:    orderID,
		customerID: customerID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

func (c CancelOrderCommand) OrderID() kernel.ID    { return c.orderID }
func (c CancelOrderCommand) CustomerID() kernel.ID { return c.customerID }
