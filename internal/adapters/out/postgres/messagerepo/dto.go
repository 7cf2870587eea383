// Package messagerepo persists user messages.
package messagerepo

import (
	"time"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/message"
)

type MessageDTO struct {
	ID          int64 `gorm:"primaryKey"`
	SenderID    int64
	RecipientID int64
	OrderID     *int64
	Body        string
	CreatedAt   time.Time
}

func (MessageDTO) TableName() string {
	return "messages"
}

func toDomain(dto MessageDTO) (*message.Message, error) {
	return message.RestoreMessage(
		kernel.ID(dto.ID),
		kernel.ID(dto.SenderID),
		kernel.ID(dto.RecipientID),
		kernel.OptionalID(dto.OrderID),
		dto.Body,
		dto.CreatedAt,
	)
}
