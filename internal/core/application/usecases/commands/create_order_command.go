package commands

import (
	"errors"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/order"
	"bakery/internal/pkg/errs"
	"bakery/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a checkout: the customer's cart turned into
// an order. Status is never part of the request; new orders start pending.
//
// Example:
//
//	price, _ := kernel.ParseMoney("4.50")
//	item, _ := order.NewItem(productID, "Croissant", 2, price)
//	delivery, _ := order.NewDeliveryInfo("Ann", "+100200300", "1 Baker St", "London", "")
//	cmd, err := NewCreateOrderCommand(customerID, []order.Item{item}, delivery, order.Card)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	orderID, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	customerID    kernel.ID
	items         []order.Item
	deliveryInfo  order.DeliveryInfo
	paymentMethod order.PaymentMethod

	guard guard.ConstructorGuard
}

func NewCreateOrderCommand(
	customerID kernel.ID,
	items []order.Item,
	deliveryInfo order.DeliveryInfo,
	paymentMethod order.PaymentMethod,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setCustomerID(customerID),
		cmd.setItems(items),
		cmd.setDeliveryInfo(deliveryInfo),
		cmd.setPaymentMethod(paymentMethod),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) CustomerID() kernel.ID              { return c.customerID }
func (c CreateOrderCommand) DeliveryInfo() order.DeliveryInfo   { return c.deliveryInfo }
func (c CreateOrderCommand) PaymentMethod() order.PaymentMethod { return c.paymentMethod }

func (c CreateOrderCommand) Items() []order.Item {
	items := make([]order.Item, len(c.items))
	copy(items, c.items)
	return items
}

func (c *CreateOrderCommand) setCustomerID(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.customerID = id
	return nil
}

func (c *CreateOrderCommand) setItems(items []order.Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	c.items = make([]order.Item, len(items))
	copy(c.items, items)
	return nil
}

func (c *CreateOrderCommand) setDeliveryInfo(info order.DeliveryInfo) error {
	if err := info.Validate(); err != nil {
		return err
	}
	c.deliveryInfo = info
	return nil
}

func (c *CreateOrderCommand) setPaymentMethod(method order.PaymentMethod) error {
	if err := method.Validate(); err != nil {
		return err
	}
	c.paymentMethod = method
	return nil
}
