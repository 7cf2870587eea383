// Package message is the advisory side channel between users. Messages never
// gate an order transition; they may be purged after the retention period.
package message

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/pkg/errs"
	"bakery/internal/pkg/guard"
)

const MaxBodyLength = 2000

var ErrMessageIsNotConstructed = errors.New("Message must be created via NewMessage or RestoreMessage")

// Message is a direct message, optionally scoped to an order.
type Message struct {
	id          kernel.ID
	senderID    kernel.ID
	recipientID kernel.ID
	orderID     *kernel.ID
	body        string
	createdAt   time.Time

	guard guard.ConstructorGuard
}

func NewMessage(senderID, recipientID kernel.ID, orderID *kernel.ID, body string, now time.Time) (*Message, error) {
	m := &Message{
		senderID:    senderID,
		recipientID: recipientID,
		createdAt:   now,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		senderID.Validate(),
		recipientID.Validate(),
		m.setOrderID(orderID),
		m.setBody(body),
	); err != nil {
		return nil, err
	}
	if senderID == recipientID {
		return nil, errs.NewValueIsInvalidErrorWithCause("recipient", fmt.Errorf("cannot message yourself"))
	}
	return m, nil
}

func RestoreMessage(
	id, senderID, recipientID kernel.ID,
	orderID *kernel.ID,
	body string,
	createdAt time.Time,
) (*Message, error) {
	m, err := NewMessage(senderID, recipientID, orderID, body, createdAt)
	if err != nil {
		return nil, err
	}
	if err = m.Identify(id); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Message) Validate() error {
	if m == nil {
		return ErrMessageIsNotConstructed
	}
	return m.guard.Validate(ErrMessageIsNotConstructed)
}

func (m *Message) Identify(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	m.id = id
	return nil
}

func (m *Message) ID() kernel.ID          { return m.id }
func (m *Message) SenderID() kernel.ID    { return m.senderID }
func (m *Message) RecipientID() kernel.ID { return m.recipientID }
func (m *Message) Body() string           { return m.body }
func (m *Message) CreatedAt() time.Time   { return m.createdAt }

func (m *Message) OrderID() *kernel.ID {
	if m.orderID == nil {
		return nil
	}
	id := *m.orderID
	return &id
}

// Involves reports whether id sent or received the message.
func (m *Message) Involves(id kernel.ID) bool {
	return m.senderID == id || m.recipientID == id
}

func (m *Message) setOrderID(orderID *kernel.ID) error {
	if orderID == nil {
		return nil
	}
	if err := orderID.Validate(); err != nil {
		return err
	}
	id := *orderID
	m.orderID = &id
	return nil
}

func (m *Message) setBody(body string) error {
	body = strings.TrimSpace(body)
	if body == "" {
		return errs.NewValueIsRequiredError("body")
	}
	if n := utf8.RuneCountInString(body); n > MaxBodyLength {
		return errs.NewValueIsOutOfRangeError("body length", n, 1, MaxBodyLength)
	}
	m.body = body
	return nil
}
