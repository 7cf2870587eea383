package user

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/pkg/errs"
	"bakery/internal/pkg/guard"
)

var (
	ErrUserIsNotConstructed = errors.New("User must be created via NewUser or RestoreUser")

	// ErrEmailAlreadyRegistered is returned when registering an email that already has an account.
	ErrEmailAlreadyRegistered = errors.New("email already registered")
)

// User is an account of the storefront. Identity fields are fixed at
// registration; the role is the only attribute that changes afterwards and
// it changes only through an approved baker application.
type User struct {
	id           kernel.ID
	name         string
	email        string
	passwordHash string
	role         Role
	createdAt    time.Time

	guard guard.ConstructorGuard
}

// NewUser registers a new account. The id stays zero until the user is stored.
func NewUser(name, email, passwordHash string, role Role, now time.Time) (*User, error) {
	u := &User{
		createdAt: now,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		u.setName(name),
		u.setEmail(email),
		u.setPasswordHash(passwordHash),
		u.setRole(role),
	); err != nil {
		return nil, err
	}

	return u, nil
}

// RestoreUser rebuilds a stored user.
func RestoreUser(
	id kernel.ID,
	name, email, passwordHash string,
	role Role,
	createdAt time.Time,
) (*User, error) {
	u, err := NewUser(name, email, passwordHash, role, createdAt)
	if err != nil {
		return nil, err
	}
	if err = u.Identify(id); err != nil {
		return nil, err
	}
	return u, nil
}

func (u *User) Validate() error {
	if u == nil {
		return ErrUserIsNotConstructed
	}
	return u.guard.Validate(ErrUserIsNotConstructed)
}

// Identify binds the storage-assigned id. It may be called once.
func (u *User) Identify(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if !u.id.IsZero() && u.id != id {
		return errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("user already identified as %s", u.id))
	}
	u.id = id
	return nil
}

func (u *User) ID() kernel.ID {
	return u.id
}

func (u *User) Name() string {
	return u.name
}

func (u *User) Email() string {
	return u.email
}

func (u *User) PasswordHash() string {
	return u.passwordHash
}

func (u *User) Role() Role {
	return u.role
}

func (u *User) CreatedAt() time.Time {
	return u.createdAt
}

// ChangeRole sets the role granted by an approved baker application, which
// is the only path that may change a role after registration.
func (u *User) ChangeRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	if role == u.role {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("user already holds %s", role))
	}
	u.role = role
	return nil
}

func (u *User) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	u.name = name
	return nil
}

func (u *User) setEmail(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return errs.NewValueIsRequiredError("email")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("email", err)
	}
	u.email = email
	return nil
}

func (u *User) setPasswordHash(hash string) error {
	if hash == "" {
		return errs.NewValueIsRequiredError("password hash")
	}
	u.passwordHash = hash
	return nil
}

func (u *User) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	u.role = role
	return nil
}
