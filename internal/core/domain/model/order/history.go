package order

import (
	"time"

	"bakery/internal/core/domain/model/kernel"
)

// StatusChange records one transition of an order. The sequence of changes
// of an order is its audit trail and is persisted alongside the order.
type StatusChange struct {
	OrderID kernel.ID
	From    Status
	To      Status
	ActorID kernel.ID
	At      time.Time
}
