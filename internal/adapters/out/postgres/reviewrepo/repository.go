package reviewrepo

import (
	"context"
	"errors"

	"bakery/internal/adapters/out/postgres/pgerrs"
	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/review"
	"bakery/internal/core/ports"
	"bakery/internal/pkg/errs"

	"gorm.io/gorm"
)

const oneReviewConstraint = "reviews_order_key"

// GormReviewRepository implements ports.ReviewRepository using GORM.
type GormReviewRepository struct {
	db *gorm.DB
}

func NewGormReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

func (r *GormReviewRepository) Add(ctx context.Context, rv *review.Review) error {
	if err := rv.Validate(); err != nil {
		return err
	}

	dto := ReviewDTO{
		OrderID:       rv.OrderID().Int64(),
		CustomerID:    rv.CustomerID().Int64(),
		JuniorBakerID: rv.JuniorBakerID().Int64(),
		Rating:        rv.Rating(),
		Comment:       rv.Comment(),
		CreatedAt:     rv.CreatedAt(),
	}
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if pgerrs.IsUniqueViolation(err, oneReviewConstraint) {
			return review.ErrOrderAlreadyReviewed
		}
		return err
	}
	return rv.Identify(kernel.ID(dto.ID))
}

func (r *GormReviewRepository) GetByOrder(ctx context.Context, orderID kernel.ID) (*review.Review, error) {
	var dto ReviewDTO
	if err := r.db.WithContext(ctx).First(&dto, "order_id = ?", orderID.Int64()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("review", orderID.Int64())
		}
		return nil, err
	}
	return toDomain(dto)
}

func (r *GormReviewRepository) RatingForJuniorBaker(
	ctx context.Context,
	juniorBakerID kernel.ID,
) (ports.RatingSummary, error) {
	var row struct {
		Count   int
		Average float64
	}
	err := r.db.WithContext(ctx).
		Model(&ReviewDTO{}).
		Select("COUNT(*) AS count, COALESCE(AVG(rating), 0) AS average").
		Where("junior_baker_id = ?", juniorBakerID.Int64()).
		Scan(&row).Error
	if err != nil {
		return ports.RatingSummary{}, err
	}
	return ports.RatingSummary{Count: row.Count, Average: row.Average}, nil
}
