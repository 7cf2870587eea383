// Package reviewrepo persists order reviews.
package reviewrepo

import (
	"time"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/review"
)

type ReviewDTO struct {
	ID            int64 `gorm:"primaryKey"`
	OrderID       int64
	CustomerID    int64
	JuniorBakerID int64
	Rating        int
	Comment       string
	CreatedAt     time.Time
}

func (ReviewDTO) TableName() string {
	return "reviews"
}

func toDomain(dto ReviewDTO) (*review.Review, error) {
	return review.RestoreReview(
		kernel.ID(dto.ID),
		kernel.ID(dto.OrderID),
		kernel.ID(dto.CustomerID),
		kernel.ID(dto.JuniorBakerID),
		dto.Rating,
		dto.Comment,
		dto.CreatedAt,
	)
}
