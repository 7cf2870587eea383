package ports

import (
	"context"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/review"
)

// RatingSummary aggregates the reviews of one junior baker.
type RatingSummary struct {
	Count   int
	Average float64
}

// ReviewRepository defines the persistence contract for order reviews.
type ReviewRepository interface {
	// Add persists a review; a second review of the same order fails with
	// review.ErrOrderAlreadyReviewed.
	Add(ctx context.Context, r *review.Review) error

	GetByOrder(ctx context.Context, orderID kernel.ID) (*review.Review, error)

	RatingForJuniorBaker(ctx context.Context, juniorBakerID kernel.ID) (RatingSummary, error)
}
