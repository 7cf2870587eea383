package order

import (
	"errors"
	"strings"

	"bakery/internal/pkg/errs"
	"bakery/internal/pkg/guard"
)

var ErrDeliveryInfoIsNotConstructed = errs.NewValueIsRequiredError(
	"DeliveryInfo must be created via NewDeliveryInfo",
)

// DeliveryInfo is the structured address and contact of an order.
type DeliveryInfo struct {
	recipient string
	phone     string
	address   string
	city      string
	notes     string

	guard guard.ConstructorGuard
}

// NewDeliveryInfo requires recipient, phone and address; city and notes are optional.
func NewDeliveryInfo(recipient, phone, address, city, notes string) (DeliveryInfo, error) {
	d := DeliveryInfo{
		recipient: strings.TrimSpace(recipient),
		phone:     strings.TrimSpace(phone),
		address:   strings.TrimSpace(address),
		city:      strings.TrimSpace(city),
		notes:     strings.TrimSpace(notes),
		guard:     guard.NewConstructorGuard(),
	}

	var problems []error
	if d.recipient == "" {
		problems = append(problems, errs.NewValueIsRequiredError("recipient"))
	}
	if d.phone == "" {
		problems = append(problems, errs.NewValueIsRequiredError("phone"))
	}
	if d.address == "" {
		problems = append(problems, errs.NewValueIsRequiredError("address"))
	}
	if err := errors.Join(problems...); err != nil {
		return DeliveryInfo{}, err
	}

	return d, nil
}

func (d DeliveryInfo) Validate() error {
	return d.guard.Validate(ErrDeliveryInfoIsNotConstructed)
}

func (d DeliveryInfo) Recipient() string { return d.recipient }
func (d DeliveryInfo) Phone() string     { return d.phone }
func (d DeliveryInfo) Address() string   { return d.address }
func (d DeliveryInfo) City() string      { return d.city }
func (d DeliveryInfo) Notes() string     { return d.notes }
