package ports

import (
	"context"
	"time"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/message"
)

// MessageRepository stores the advisory message side channel. Results are
// ordered by creation time, oldest first.
type MessageRepository interface {
	Add(ctx context.Context, m *message.Message) error
	ListByOrder(ctx context.Context, orderID kernel.ID) ([]*message.Message, error)
	ListConversation(ctx context.Context, userA, userB kernel.ID) ([]*message.Message, error)

	// ListForUser returns messages sent or received by the user after since.
	ListForUser(ctx context.Context, userID kernel.ID, since time.Time) ([]*message.Message, error)

	// DeleteOlderThan removes messages created before cutoff and returns how many were removed.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
