package memory

import (
	"context"
	"sort"
	"time"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/message"
)

type messageRepository struct {
	uow *UnitOfWork
}

func (r *messageRepository) Add(ctx context.Context, m *message.Message) error {
	if err := m.Validate(); err != nil {
		return err
	}
	return r.uow.run(ctx, func(s *state) error {
		id := s.nextID()
		if err := m.Identify(id); err != nil {
			return err
		}
		s.messages[id] = messageRow{
			id:          id,
			senderID:    m.SenderID(),
			recipientID: m.RecipientID(),
			orderID:     m.OrderID(),
			body:        m.Body(),
			createdAt:   m.CreatedAt(),
		}
		return nil
	})
}

func (r *messageRepository) ListByOrder(ctx context.Context, orderID kernel.ID) ([]*message.Message, error) {
	return r.list(ctx, func(row messageRow) bool {
		return row.orderID != nil && *row.orderID == orderID
	})
}

func (r *messageRepository) ListConversation(ctx context.Context, userA, userB kernel.ID) ([]*message.Message, error) {
	return r.list(ctx, func(row messageRow) bool {
		return (row.senderID == userA && row.recipientID == userB) ||
			(row.senderID == userB && row.recipientID == userA)
	})
}

func (r *messageRepository) ListForUser(ctx context.Context, userID kernel.ID, since time.Time) ([]*message.Message, error) {
	return r.list(ctx, func(row messageRow) bool {
		return (row.senderID == userID || row.recipientID == userID) && row.createdAt.After(since)
	})
}

func (r *messageRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	var deleted int64
	err := r.uow.run(ctx, func(s *state) error {
		for id, row := range s.messages {
			if row.createdAt.Before(cutoff) {
				delete(s.messages, id)
				deleted++
			}
		}
		return nil
	})
	return deleted, err
}

func (r *messageRepository) list(ctx context.Context, keep func(messageRow) bool) ([]*message.Message, error) {
	var messages []*message.Message
	err := r.uow.run(ctx, func(s *state) error {
		rows := make([]messageRow, 0)
		for _, row := range s.messages {
			if keep(row) {
				rows = append(rows, row)
			}
		}
		sort.Slice(rows, func(i, j int) bool {
			if rows[i].createdAt.Equal(rows[j].createdAt) {
				return rows[i].id < rows[j].id
			}
			return rows[i].createdAt.Before(rows[j].createdAt)
		})

		messages = make([]*message.Message, 0, len(rows))
		for _, row := range rows {
			m, err := message.RestoreMessage(row.id, row.senderID, row.recipientID, row.orderID, row.body, row.createdAt)
			if err != nil {
				return err
			}
			messages = append(messages, m)
		}
		return nil
	})
	return messages, err
}
