package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/user"
	"bakery/internal/core/ports"
	"bakery/internal/pkg/errs"
)

// RegisterUserCommandHandler creates customer accounts.
type RegisterUserCommandHandler struct {
	uowFactory UserUoWFactory
	hasher     ports.PasswordHasher
	logger     *slog.Logger
}

func NewRegisterUserCommandHandler(
	uowFactory UserUoWFactory,
	hasher ports.PasswordHasher,
	logger *slog.Logger,
) RegisterUserCommandHandler {
	return RegisterUserCommandHandler{
		uowFactory: uowFactory,
		hasher:     hasher,
		logger:     loggerOrDefault(logger).With("component", "RegisterUserCommandHandler"),
	}
}

// Handle registers the account and returns its id. An email that is already
// registered fails with user.ErrEmailAlreadyRegistered.
func (h *RegisterUserCommandHandler) Handle(ctx context.Context, cmd RegisterUserCommand) (kernel.ID, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	id, err := createAccount(ctx, h.uowFactory, h.hasher, cmd.Name(), cmd.Email(), cmd.Password(), user.Customer)
	if err != nil {
		return 0, err
	}

	h.logger.InfoContext(ctx, "user registered", "user_id", id.Int64())
	return id, nil
}

// BootstrapAdminCommandHandler makes sure the configured administrator
// account exists. It is run once at startup.
type BootstrapAdminCommandHandler struct {
	uowFactory UserUoWFactory
	hasher     ports.PasswordHasher
	logger     *slog.Logger
}

func NewBootstrapAdminCommandHandler(
	uowFactory UserUoWFactory,
	hasher ports.PasswordHasher,
	logger *slog.Logger,
) BootstrapAdminCommandHandler {
	return BootstrapAdminCommandHandler{
		uowFactory: uowFactory,
		hasher:     hasher,
		logger:     loggerOrDefault(logger).With("component", "BootstrapAdminCommandHandler"),
	}
}

// Handle creates the admin account unless the email is already registered.
// It reports whether an account was created. An existing account with that
// email that is not an admin fails the bootstrap.
func (h *BootstrapAdminCommandHandler) Handle(ctx context.Context, cmd RegisterUserCommand) (bool, error) {
	if err := cmd.Validate(); err != nil {
		return false, err
	}

	id, err := createAccount(ctx, h.uowFactory, h.hasher, cmd.Name(), cmd.Email(), cmd.Password(), user.Admin)
	if errors.Is(err, user.ErrEmailAlreadyRegistered) {
		return false, h.requireAdmin(ctx, cmd.Email())
	}
	if err != nil {
		return false, err
	}

	h.logger.InfoContext(ctx, "admin account created", "user_id", id.Int64())
	return true, nil
}

// requireAdmin accepts an existing account for the bootstrap email only when
// it already is an administrator.
func (h *BootstrapAdminCommandHandler) requireAdmin(ctx context.Context, email string) error {
	existing, err := h.uowFactory.Create().UserRepository().GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing.Role() != user.Admin {
		return errs.NewValueIsInvalidErrorWithCause("bootstrap admin email",
			fmt.Errorf("account %s is registered as %s", existing.ID(), existing.Role()))
	}
	h.logger.InfoContext(ctx, "admin account already present", "user_id", existing.ID().Int64())
	return nil
}

func createAccount(
	ctx context.Context,
	uowFactory UserUoWFactory,
	hasher ports.PasswordHasher,
	name, email, password string,
	role user.Role,
) (kernel.ID, error) {
	hash, err := hasher.Hash(password)
	if err != nil {
		return 0, err
	}

	u, err := user.NewUser(name, email, hash, role, time.Now().UTC())
	if err != nil {
		return 0, err
	}

	uow := uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	users := uow.UserRepository()
	existing, err := users.GetByEmail(ctx, u.Email())
	switch {
	case err == nil && existing != nil:
		return 0, user.ErrEmailAlreadyRegistered
	case err != nil && !errors.Is(err, errs.ErrObjectNotFound):
		return 0, err
	}

	if err = users.Add(ctx, u); err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return u.ID(), nil
}
