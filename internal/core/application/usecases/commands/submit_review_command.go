package commands

import (
	"errors"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/pkg/guard"
)

var ErrSubmitReviewCommandIsNotConstructed = errors.New(
	"SubmitReviewCommand must be created via NewSubmitReviewCommand constructor",
)

type SubmitReviewCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.ID
	customerID kernel.ID
	rating     int
	comment    string

	guard guard.ConstructorGuard
}

func NewSubmitReviewCommand(orderID, customerID kernel.ID, rating int, comment string) (SubmitReviewCommand, error) {
	if err := errors.Join(orderID.Validate(), customerID.Validate()); err != nil {
		return SubmitReviewCommand{}, err
	}
	return SubmitReviewCommand{
		orderID:    orderID,
		customerID: customerID,
		rating:     rating,
		comment:    comment,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c SubmitReviewCommand) Validate() error {
	return c.guard.Validate(ErrSubmitReviewCommandIsNotConstructed)
}

func (c SubmitReviewCommand) OrderID() kernel.ID    { return c.orderID }
func (c SubmitReviewCommand) CustomerID() kernel.ID { return c.customerID }
func (c SubmitReviewCommand) Rating() int           { return c.rating }
func (c SubmitReviewCommand) Comment() string       { return c.comment }
