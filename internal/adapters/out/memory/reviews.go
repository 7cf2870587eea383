package memory

import (
	"context"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/review"
	"bakery/internal/core/ports"
	"bakery/internal/pkg/errs"
)

type reviewRepository struct {
	uow *UnitOfWork
}

func (r *reviewRepository) Add(ctx context.Context, rv *review.Review) error {
	if err := rv.Validate(); err != nil {
		return err
	}
	return r.uow.run(ctx, func(s *state) error {
		for _, row := range s.reviews {
			if row.orderID == rv.OrderID() {
				return review.ErrOrderAlreadyReviewed
			}
		}
		id := s.nextID()
		if err := rv.Identify(id); err != nil {
			return err
		}
		s.reviews[id] = reviewRow{
			id:            id,
			orderID:       rv.OrderID(),
			customerID:    rv.CustomerID(),
			juniorBakerID: rv.JuniorBakerID(),
			rating:        rv.Rating(),
			comment:       rv.Comment(),
			createdAt:     rv.CreatedAt(),
		}
		return nil
	})
}

func (r *reviewRepository) GetByOrder(ctx context.Context, orderID kernel.ID) (*review.Review, error) {
	var found *review.Review
	err := r.uow.run(ctx, func(s *state) error {
		for _, row := range s.reviews {
			if row.orderID == orderID {
				var err error
				found, err = review.RestoreReview(
					row.id, row.orderID, row.customerID, row.juniorBakerID, row.rating, row.comment, row.createdAt,
				)
				return err
			}
		}
		return errs.NewObjectNotFoundError("review", orderID.Int64())
	})
	return found, err
}

func (r *reviewRepository) RatingForJuniorBaker(ctx context.Context, juniorBakerID kernel.ID) (ports.RatingSummary, error) {
	var summary ports.RatingSummary
	err := r.uow.run(ctx, func(s *state) error {
		total := 0
		for _, row := range s.reviews {
			if row.juniorBakerID == juniorBakerID {
				summary.Count++
				total += row.rating
			}
		}
		if summary.Count > 0 {
			summary.Average = float64(total) / float64(summary.Count)
		}
		return nil
	})
	return summary, err
}
