package queries

import (
	"errors"
	"time"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/pkg/errs"
	"bakery/internal/pkg/guard"
)

var ErrGetMessagesQueryIsNotConstructed = errors.New(
	"GetMessagesQuery must be created via NewGetMessagesQuery constructor",
)

// GetMessagesQuery polls messages of an actor. With an order id it returns
// the order thread, with a peer id the conversation with that user, and
// otherwise everything sent or received after since.
type GetMessagesQuery struct {
	actorID kernel.ID
	orderID *kernel.ID
	peerID  *kernel.ID
	since   time.Time

	guard guard.ConstructorGuard
}

func NewGetMessagesQuery(actorID kernel.ID, orderID, peerID *kernel.ID, since time.Time) (GetMessagesQuery, error) {
	if err := actorID.Validate(); err != nil {
		return GetMessagesQuery{}, err
	}
	if orderID != nil && peerID != nil {
		return GetMessagesQuery{}, errs.NewValueIsInvalidErrorWithCause(
			"message filter", errors.New("order and peer cannot be combined"),
		)
	}

	q := GetMessagesQuery{actorID: actorID, since: since, guard: guard.NewConstructorGuard()}
	if orderID != nil {
		if err := orderID.Validate(); err != nil {
			return GetMessagesQuery{}, err
		}
		id := *orderID
		q.orderID = &id
	}
	if peerID != nil {
		if err := peerID.Validate(); err != nil {
			return GetMessagesQuery{}, err
		}
		id := *peerID
		q.peerID = &id
	}
	return q, nil
}

func (q GetMessagesQuery) Validate() error {
	return q.guard.Validate(ErrGetMessagesQueryIsNotConstructed)
}

func (q GetMessagesQuery) ActorID() kernel.ID { return q.actorID }
func (q GetMessagesQuery) OrderID() *kernel.ID {
	if q.orderID == nil {
		return nil
	}
	id := *q.orderID
	return &id
}

func (q GetMessagesQuery) PeerID() *kernel.ID {
	if q.peerID == nil {
		return nil
	}
	id := *q.peerID
	return &id
}
func (q GetMessagesQuery) Since() time.Time { return q.since }
