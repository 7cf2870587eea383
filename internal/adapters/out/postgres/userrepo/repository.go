package userrepo

import (
	"context"
	"errors"
	"strings"

	"bakery/internal/adapters/out/postgres/pgerrs"
	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/user"
	"bakery/internal/pkg/errs"

	"gorm.io/gorm"
)

const emailConstraint = "users_email_key"

// GormUserRepository implements ports.UserRepository using GORM.
type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// Add inserts the user and binds the generated id.
func (r *GormUserRepository) Add(ctx context.Context, u *user.User) error {
	if err := u.Validate(); err != nil {
		return err
	}

	dto := fromDomain(u)
	dto.ID = 0
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if pgerrs.IsUniqueViolation(err, emailConstraint) {
			return user.ErrEmailAlreadyRegistered
		}
		return err
	}

	return u.Identify(kernel.ID(dto.ID))
}

// Update persists the role of an existing user.
func (r *GormUserRepository) Update(ctx context.Context, u *user.User) error {
	if err := u.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&UserDTO{}).
		Where("id = ?", u.ID().Int64()).
		Updates(map[string]any{"name": u.Name(), "role": int(u.Role())})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("user", u.ID().Int64())
	}
	return nil
}

func (r *GormUserRepository) Get(ctx context.Context, id kernel.ID) (*user.User, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto UserDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Int64()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("user", id.Int64())
		}
		return nil, err
	}
	return toDomain(dto)
}

func (r *GormUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	var dto UserDTO
	err := r.db.WithContext(ctx).First(&dto, "lower(email) = ?", strings.ToLower(strings.TrimSpace(email))).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("user", email)
		}
		return nil, err
	}
	return toDomain(dto)
}

func (r *GormUserRepository) ListByRole(ctx context.Context, role user.Role) ([]*user.User, error) {
	if err := role.Validate(); err != nil {
		return nil, err
	}

	var dtos []UserDTO
	if err := r.db.WithContext(ctx).Order("id").Find(&dtos, "role = ?", int(role)).Error; err != nil {
		return nil, err
	}

	users := make([]*user.User, 0, len(dtos))
	for _, dto := range dtos {
		u, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}
