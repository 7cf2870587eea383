package messagerepo

import (
	"context"
	"time"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/message"

	"gorm.io/gorm"
)

// GormMessageRepository implements ports.MessageRepository using GORM.
type GormMessageRepository struct {
	db *gorm.DB
}

func NewGormMessageRepository(db *gorm.DB) *GormMessageRepository {
	return &GormMessageRepository{db: db}
}

func (r *GormMessageRepository) Add(ctx context.Context, m *message.Message) error {
	if err := m.Validate(); err != nil {
		return err
	}

	dto := MessageDTO{
		SenderID:    m.SenderID().Int64(),
		RecipientID: m.RecipientID().Int64(),
		OrderID:     kernel.RawID(m.OrderID()),
		Body:        m.Body(),
		CreatedAt:   m.CreatedAt(),
	}
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}
	return m.Identify(kernel.ID(dto.ID))
}

func (r *GormMessageRepository) ListByOrder(ctx context.Context, orderID kernel.ID) ([]*message.Message, error) {
	return r.find(ctx, "order_id = ?", orderID.Int64())
}

func (r *GormMessageRepository) ListConversation(ctx context.Context, userA, userB kernel.ID) ([]*message.Message, error) {
	return r.find(ctx,
		"(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
		userA.Int64(), userB.Int64(), userB.Int64(), userA.Int64(),
	)
}

func (r *GormMessageRepository) ListForUser(ctx context.Context, userID kernel.ID, since time.Time) ([]*message.Message, error) {
	return r.find(ctx, "(sender_id = ? OR recipient_id = ?) AND created_at > ?", userID.Int64(), userID.Int64(), since)
}

func (r *GormMessageRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("created_at < ?", cutoff).Delete(&MessageDTO{})
	return result.RowsAffected, result.Error
}

func (r *GormMessageRepository) find(ctx context.Context, query string, args ...any) ([]*message.Message, error) {
	var dtos []MessageDTO
	if err := r.db.WithContext(ctx).Where(query, args...).Order("created_at, id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	messages := make([]*message.Message, 0, len(dtos))
	for _, dto := range dtos {
		m, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, nil
}
