package commands

import (
	"errors"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/pkg/guard"
)

var ErrSendMessageCommandIsNotConstructed = errors.New(
	"SendMessageCommand must be created via NewSendMessageCommand constructor",
)

// SendMessageCommand posts a direct message, optionally about an order.
type SendMessageCommand struct { //nolint:recvcheck //using for validation
	senderID    kernel.ID
	recipientID kernel.ID
	orderID     *kernel.ID
	body        string

	guard guard.ConstructorGuard
}

func NewSendMessageCommand(senderID, recipientID kernel.ID, orderID *kernel.ID, body string) (SendMessageCommand, error) {
	cmd := SendMessageCommand{
		senderID:    senderID,
		recipientID: recipientID,
		body:        body,
		guard:       guard.NewConstructorGuard(),
	}

	errList := []error{senderID.Validate(), recipientID.Validate()}
	if orderID != nil {
		errList = append(errList, orderID.Validate())
		id := *orderID
		cmd.orderID = &id
	}
	if err := errors.Join(errList...); err != nil {
		return SendMessageCommand{}, err
	}

	return cmd, nil
}

func (c SendMessageCommand) Validate() error {
	return c.guard.Validate(ErrSendMessageCommandIsNotConstructed)
}

func (c SendMessageCommand) SenderID() kernel.ID    { return c.senderID }
func (c SendMessageCommand) RecipientID() kernel.ID { return c.recipientID }
func (c SendMessageCommand) Body() string           { return c.body }

func (c SendMessageCommand) OrderID() *kernel.ID {
	if c.orderID == nil {
		return nil
	}
	id := *c.orderID
	return &id
}
