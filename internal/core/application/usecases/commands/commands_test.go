package commands_test

import (
	"strings"
	"testing"
	"time"

	"bakery/internal/core/application/usecases/commands"
	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/order"
	"bakery/internal/core/domain/model/user"
	"bakery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegisterUserCommand(t *testing.T) {
	tests := []struct {
		name     string
		userName string
		email    string
		password string
		wantErr  error
	}{
		{name: "valid", userName: "Ann", email: "ann@bakery.test", password: "12345678"},
		{name: "missing name", userName: " ", email: "ann@bakery.test", password: "12345678", wantErr: errs.ErrValueIsRequired},
		{name: "missing email", userName: "Ann", email: "", password: "12345678", wantErr: errs.ErrValueIsRequired},
		{name: "short password", userName: "Ann", email: "ann@bakery.test", password: "1234567", wantErr: errs.ErrValueIsOutOfRange},
		{
			name: "password longer than 72 bytes", userName: "Ann", email: "ann@bakery.test",
			password: strings.Repeat("x", 73), wantErr: errs.ErrValueIsOutOfRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := commands.NewRegisterUserCommand(tt.userName, tt.email, tt.password)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.NoError(t, cmd.Validate())
			assert.Equal(t, tt.email, cmd.Email())
		})
	}
}

func TestNewCreateOrderCommand_RequiresItems(t *testing.T) {
	delivery, err := order.NewDeliveryInfo("Ann", "+100200300", "1 Baker St", "", "")
	require.NoError(t, err)

	_, err = commands.NewCreateOrderCommand(1, nil, delivery, order.Card)

	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestNewUpdateOrderStatusCommand_RejectsUnknownStatus(t *testing.T) {
	_, err := commands.NewUpdateOrderStatusCommand(1, 2, order.Unknown)

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestNewSubmitApplicationCommand_RejectsUnknownRole(t *testing.T) {
	_, err := commands.NewSubmitApplicationCommand(1, user.Customer, user.UnknownRole, "", "why not")

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestNewSendMessageCommand_ValidatesOrderID(t *testing.T) {
	var zero kernel.ID

	_, err := commands.NewSendMessageCommand(1, 2, &zero, "hello")

	require.Error(t, err)
}

func TestNewPurgeMessagesCommand(t *testing.T) {
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	cmd, err := commands.NewPurgeMessagesCommand(now, 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, now.Add(-24*time.Hour), cmd.Cutoff())

	_, err = commands.NewPurgeMessagesCommand(now, 0)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestNewNotifyUnclaimedOrdersCommand(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	cmd, err := commands.NewNotifyUnclaimedOrdersCommand(now, 30*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, now.Add(-30*time.Minute), cmd.CreatedBefore())

	_, err = commands.NewNotifyUnclaimedOrdersCommand(now, -time.Minute)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestZeroValueCommandsAreRejected(t *testing.T) {
	assert.ErrorIs(t, commands.CreateOrderCommand{}.Validate(), commands.ErrCreateOrderCommandIsNotConstructed)
	assert.ErrorIs(t, commands.CancelOrderCommand{}.Validate(), commands.ErrCancelOrderCommandIsNotConstructed)
	assert.ErrorIs(t, commands.UpdateOrderStatusCommand{}.Validate(), commands.ErrUpdateOrderStatusCommandIsNotConstructed)
	assert.ErrorIs(t, commands.SubmitApplicationCommand{}.Validate(), commands.ErrSubmitApplicationCommandIsNotConstructed)
	assert.ErrorIs(t, commands.SubmitReviewCommand{}.Validate(), commands.ErrSubmitReviewCommandIsNotConstructed)
	assert.ErrorIs(t, commands.SendMessageCommand{}.Validate(), commands.ErrSendMessageCommandIsNotConstructed)
	assert.ErrorIs(t, commands.RegisterUserCommand{}.Validate(), commands.ErrRegisterUserCommandIsNotConstructed)
}
