package ports

import (
	"context"
	"time"

	"bakery/internal/core/domain/model/kernel"
)

// Event names a notification. The values are published on the wire.
type Event string

const (
	EventOrderCreated         Event = "order.created"
	EventOrderAssigned        Event = "order.assigned"
	EventOrderStatusChanged   Event = "order.status_changed"
	EventOrderCancelled       Event = "order.cancelled"
	EventOrderUnclaimed       Event = "order.unclaimed"
	EventOrderReviewed        Event = "order.reviewed"
	EventApplicationSubmitted Event = "application.submitted"
	EventApplicationDecided   Event = "application.decided"
	EventMessageReceived      Event = "message.received"
)

// Notification is one fire-and-forget message to a user.
type Notification struct {
	UserID     kernel.ID
	Event      Event
	Payload    map[string]any
	OccurredAt time.Time
}

// Notifier delivers notifications after a transaction committed.
//
// A failing Notify never undoes the committed change; callers log the error
// and move on.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// PasswordHasher turns a plain password into a storable hash.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}
