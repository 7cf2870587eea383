package applicationrepo

import (
	"context"
	"errors"

	"bakery/internal/adapters/out/postgres/pgerrs"
	"bakery/internal/core/domain/model/application"
	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/pkg/errs"

	"gorm.io/gorm"
)

// onePendingConstraint is the partial unique index allowing a single pending
// application per user.
const onePendingConstraint = "baker_applications_one_pending_key"

// GormApplicationRepository implements ports.ApplicationRepository using GORM.
type GormApplicationRepository struct {
	db *gorm.DB
}

func NewGormApplicationRepository(db *gorm.DB) *GormApplicationRepository {
	return &GormApplicationRepository{db: db}
}

// Add inserts a new application. Two racing submissions of the same user are
// resolved by the partial unique index; the loser gets a
// DuplicatePendingApplicationError.
func (r *GormApplicationRepository) Add(ctx context.Context, app *application.BakerApplication) error {
	if err := app.Validate(); err != nil {
		return err
	}

	dto := fromDomain(app)
	dto.ID = 0
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if pgerrs.IsUniqueViolation(err, onePendingConstraint) {
			return errs.NewDuplicatePendingApplicationError(app.UserID().Int64())
		}
		return err
	}
	return app.Identify(kernel.ID(dto.ID))
}

// Update stores the decision with a conditional write on the pending status,
// so at most one of two concurrent decisions succeeds.
func (r *GormApplicationRepository) Update(ctx context.Context, app *application.BakerApplication) error {
	if err := app.Validate(); err != nil {
		return err
	}

	dto := fromDomain(app)
	db := r.db.WithContext(ctx)
	result := db.Model(&ApplicationDTO{}).
		Where("id = ? AND status = ?", dto.ID, int(application.Pending)).
		Updates(map[string]any{
			"status":      dto.Status,
			"reviewed_by": dto.ReviewedBy,
			"reviewed_at": dto.ReviewedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var stored ApplicationDTO
	if err := db.Select("status").First(&stored, "id = ?", dto.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NewObjectNotFoundError("application", dto.ID)
		}
		return err
	}
	return errs.NewAlreadyDecidedError(dto.ID, application.Status(stored.Status).String())
}

func (r *GormApplicationRepository) Get(ctx context.Context, id kernel.ID) (*application.BakerApplication, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ApplicationDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Int64()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("application", id.Int64())
		}
		return nil, err
	}
	return toDomain(dto)
}

func (r *GormApplicationRepository) HasPending(ctx context.Context, userID kernel.ID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&ApplicationDTO{}).
		Where("user_id = ? AND status = ?", userID.Int64(), int(application.Pending)).
		Count(&count).Error
	return count > 0, err
}

func (r *GormApplicationRepository) ListByUser(ctx context.Context, userID kernel.ID) ([]*application.BakerApplication, error) {
	return find(r.db.WithContext(ctx).Where("user_id = ?", userID.Int64()))
}

func (r *GormApplicationRepository) ListByStatus(
	ctx context.Context,
	status application.Status,
) ([]*application.BakerApplication, error) {
	query := r.db.WithContext(ctx)
	if status != application.UnknownStatus {
		query = query.Where("status = ?", int(status))
	}
	return find(query)
}

func find(query *gorm.DB) ([]*application.BakerApplication, error) {
	var dtos []ApplicationDTO
	if err := query.Order("id DESC").Find(&dtos).Error; err != nil {
		return nil, err
	}

	apps := make([]*application.BakerApplication, 0, len(dtos))
	for _, dto := range dtos {
		app, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}
	return apps, nil
}
