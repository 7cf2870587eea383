package commands

import (
	"errors"
	"strings"
	"unicode/utf8"

	"bakery/internal/pkg/errs"
	"bakery/internal/pkg/guard"
)

const (
	minPasswordLength = 8
	maxPasswordLength = 72
)

var ErrRegisterUserCommandIsNotConstructed = errors.New(
	"RegisterUserCommand must be created via NewRegisterUserCommand constructor",
)

// RegisterUserCommand opens a customer account. Staff roles are reached only
// through approved baker applications.
type RegisterUserCommand struct { //nolint:recvcheck //using for validation
	name     string
	email    string
	password string

	guard guard.ConstructorGuard
}

func NewRegisterUserCommand(name, email, password string) (RegisterUserCommand, error) {
	cmd := RegisterUserCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setName(name),
		cmd.setEmail(email),
		cmd.setPassword(password),
	); err != nil {
		return RegisterUserCommand{}, err
	}

	return cmd, nil
}

func (c RegisterUserCommand) Validate() error {
	return c.guard.Validate(ErrRegisterUserCommandIsNotConstructed)
}

func (c RegisterUserCommand) Name() string     { return c.name }
func (c RegisterUserCommand) Email() string    { return c.email }
func (c RegisterUserCommand) Password() string { return c.password }

func (c *RegisterUserCommand) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	c.name = name
	return nil
}

func (c *RegisterUserCommand) setEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return errs.NewValueIsRequiredError("email")
	}
	c.email = email
	return nil
}

// bcrypt ignores bytes past 72, so longer passwords are refused.
func (c *RegisterUserCommand) setPassword(password string) error {
	if n := utf8.RuneCountInString(password); n < minPasswordLength || len(password) > maxPasswordLength {
		return errs.NewValueIsOutOfRangeError("password length", n, minPasswordLength, maxPasswordLength)
	}
	c.password = password
	return nil
}
