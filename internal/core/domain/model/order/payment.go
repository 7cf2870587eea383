package order

import (
	"fmt"

	"bakery/internal/pkg/errs"
)

// PaymentMethod records how the customer chose to pay. Payment itself is
// simulated; the value is informational.
type PaymentMethod int

const (
	UnknownPaymentMethod PaymentMethod = iota
	Card
	CashOnDelivery
)

func getPaymentMethodStrings() map[PaymentMethod]string {
	return map[PaymentMethod]string{
		Card:           "card",
		CashOnDelivery: "cash_on_delivery",
	}
}

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	for method, str := range getPaymentMethodStrings() {
		if str == s {
			return method, nil
		}
	}
	return UnknownPaymentMethod, errs.NewValueIsInvalidErrorWithCause(
		"payment method",
		fmt.Errorf("%q is not a valid payment method", s),
	)
}

func (p PaymentMethod) Validate() error {
	if _, ok := getPaymentMethodStrings()[p]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("payment method", fmt.Errorf("%d is not valid", p))
	}
	return nil
}

func (p PaymentMethod) String() string {
	if str, ok := getPaymentMethodStrings()[p]; ok {
		return str
	}
	return "unknown"
}
