package order

import (
	"errors"
	"fmt"
	"strings"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/pkg/errs"
	"bakery/internal/pkg/guard"
)

var ErrItemIsNotConstructed = errs.NewValueIsRequiredError("Item must be created via NewItem")

// Item is one line of an order. Items are captured at checkout and never
// change afterwards; name and unit price are snapshots of the catalog.
type Item struct {
	productID kernel.ID
	name      string
	quantity  int
	unitPrice kernel.Money

	guard guard.ConstructorGuard
}

func NewItem(productID kernel.ID, name string, quantity int, unitPrice kernel.Money) (Item, error) {
	item := Item{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		item.setProductID(productID),
		item.setName(name),
		item.setQuantity(quantity),
		item.setUnitPrice(unitPrice),
	); err != nil {
		return Item{}, err
	}

	return item, nil
}

func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

func (i Item) ProductID() kernel.ID    { return i.productID }
func (i Item) Name() string            { return i.name }
func (i Item) Quantity() int           { return i.quantity }
func (i Item) UnitPrice() kernel.Money { return i.unitPrice }

// Subtotal is unit price times quantity.
func (i Item) Subtotal() kernel.Money {
	subtotal, err := i.unitPrice.Times(i.quantity)
	if err != nil {
		return kernel.ZeroMoney()
	}
	return subtotal
}

func (i *Item) setProductID(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.productID = id
	return nil
}

func (i *Item) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("item name")
	}
	i.name = name
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	i.quantity = quantity
	return nil
}

func (i *Item) setUnitPrice(price kernel.Money) error {
	if err := price.Validate(); err != nil {
		return err
	}
	i.unitPrice = price
	return nil
}
