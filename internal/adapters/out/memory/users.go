package memory

import (
	"context"
	"sort"
	"strings"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/user"
	"bakery/internal/pkg/errs"
)

type userRepository struct {
	uow *UnitOfWork
}

func (r *userRepository) Add(ctx context.Context, u *user.User) error {
	if err := u.Validate(); err != nil {
		return err
	}
	return r.uow.run(ctx, func(s *state) error {
		for _, row := range s.users {
			if row.email == u.Email() {
				return user.ErrEmailAlreadyRegistered
			}
		}
		id := s.nextID()
		if err := u.Identify(id); err != nil {
			return err
		}
		s.users[id] = userToRow(u)
		return nil
	})
}

func (r *userRepository) Update(ctx context.Context, u *user.User) error {
	if err := u.Validate(); err != nil {
		return err
	}
	return r.uow.run(ctx, func(s *state) error {
		if _, ok := s.users[u.ID()]; !ok {
			return errs.NewObjectNotFoundError("user", u.ID().Int64())
		}
		s.users[u.ID()] = userToRow(u)
		return nil
	})
}

func (r *userRepository) Get(ctx context.Context, id kernel.ID) (*user.User, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	var found *user.User
	err := r.uow.run(ctx, func(s *state) error {
		row, ok := s.users[id]
		if !ok {
			return errs.NewObjectNotFoundError("user", id.Int64())
		}
		var err error
		found, err = rowToUser(row)
		return err
	})
	return found, err
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var found *user.User
	err := r.uow.run(ctx, func(s *state) error {
		for _, row := range s.users {
			if row.email == email {
				var err error
				found, err = rowToUser(row)
				return err
			}
		}
		return errs.NewObjectNotFoundError("user", email)
	})
	return found, err
}

func (r *userRepository) ListByRole(ctx context.Context, role user.Role) ([]*user.User, error) {
	var users []*user.User
	err := r.uow.run(ctx, func(s *state) error {
		rows := make([]userRow, 0)
		for _, row := range s.users {
			if row.role == role {
				rows = append(rows, row)
			}
		}
		sort.Slice(rows, func(i, j int) bool { return rows[i].id < rows[j].id })
		for _, row := range rows {
			u, err := rowToUser(row)
			if err != nil {
				return err
			}
			users = append(users, u)
		}
		return nil
	})
	return users, err
}

func userToRow(u *user.User) userRow {
	return userRow{
		id:           u.ID(),
		name:         u.Name(),
		email:        u.Email(),
		passwordHash: u.PasswordHash(),
		role:         u.Role(),
		createdAt:    u.CreatedAt(),
	}
}

func rowToUser(row userRow) (*user.User, error) {
	return user.RestoreUser(row.id, row.name, row.email, row.passwordHash, row.role, row.createdAt)
}
