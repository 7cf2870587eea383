package ports

import (
	"context"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/user"
)

// UserRepository defines the persistence contract for user accounts.
type UserRepository interface {
	// Add persists a new user and binds the generated id. A taken email
	// fails with user.ErrEmailAlreadyRegistered.
	Add(ctx context.Context, u *user.User) error

	// Update persists role changes.
	Update(ctx context.Context, u *user.User) error

	Get(ctx context.Context, id kernel.ID) (*user.User, error)
	GetByEmail(ctx context.Context, email string) (*user.User, error)
	ListByRole(ctx context.Context, role user.Role) ([]*user.User, error)
}
