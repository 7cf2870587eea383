package order_test

import (
	"fmt"
	"testing"

	"bakery/internal/core/domain/model/order"
	"bakery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Validate(t *testing.T) {
	t.Run("should validate declared statuses", func(t *testing.T) {
		valid := []order.Status{
			order.Pending,
			order.Assigned,
			order.InProgress,
			order.Completed,
			order.ReadyForDelivery,
			order.Delivered,
			order.Cancelled,
		}

		for _, status := range valid {
			t.Run(fmt.Sprintf("should validate %s status", status), func(t *testing.T) {
				require.NoError(t, status.Validate())
			})
		}
	})

	t.Run("should reject Unknown status", func(t *testing.T) {
		err := order.Unknown.Validate()

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject out of range status", func(t *testing.T) {
		err := order.Status(42).Validate()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "42 is not a valid status")
	})
}

func TestParseStatus(t *testing.T) {
	t.Run("should round trip wire values", func(t *testing.T) {
		for _, wire := range []string{"pending", "assigned", "in_progress", "completed", "ready_for_delivery", "delivered", "cancelled"} {
			status, err := order.ParseStatus(wire)

			require.NoError(t, err)
			assert.Equal(t, wire, status.String())
		}
	})

	t.Run("should reject unknown wire value", func(t *testing.T) {
		status, err := order.ParseStatus("baking")

		require.Error(t, err)
		assert.Equal(t, order.Unknown, status)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should be case sensitive", func(t *testing.T) {
		_, err := order.ParseStatus("Pending")

		require.Error(t, err)
	})
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, order.Delivered.IsTerminal())
	assert.True(t, order.Cancelled.IsTerminal())
	assert.False(t, order.Pending.IsTerminal())
	assert.False(t, order.ReadyForDelivery.IsTerminal())
}

func TestStatus_ValidateTransition(t *testing.T) {
	all := []order.Status{
		order.Pending,
		order.Assigned,
		order.InProgress,
		order.Completed,
		order.ReadyForDelivery,
		order.Delivered,
		order.Cancelled,
	}

	allowed := map[order.Status][]order.Status{
		order.Pending:          {order.Assigned, order.Cancelled},
		order.Assigned:         {order.InProgress, order.Cancelled},
		order.InProgress:       {order.Completed, order.Cancelled},
		order.Completed:        {order.ReadyForDelivery, order.Cancelled},
		order.ReadyForDelivery: {order.Delivered, order.Cancelled},
	}

	for _, from := range all {
		for _, to := range all {
			if from == to {
				continue
			}

			want := false
			for _, candidate := range allowed[from] {
				if candidate == to {
					want = true
				}
			}

			t.Run(fmt.Sprintf("%s to %s", from, to), func(t *testing.T) {
				err := from.ValidateTransition(to)
				if want {
					require.NoError(t, err)
					return
				}
				require.Error(t, err)
				assert.ErrorIs(t, err, errs.ErrInvalidTransition)
			})
		}
	}

	t.Run("should reject unknown target", func(t *testing.T) {
		err := order.Pending.ValidateTransition(order.Unknown)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestStatus_Next(t *testing.T) {
	next, ok := order.InProgress.Next()
	assert.True(t, ok)
	assert.Equal(t, order.Completed, next)

	_, ok = order.Delivered.Next()
	assert.False(t, ok)
}

func TestStatus_IsFulfilled(t *testing.T) {
	for _, status := range order.FulfilledStatuses() {
		assert.True(t, status.IsFulfilled())
	}
	assert.False(t, order.InProgress.IsFulfilled())
	assert.False(t, order.Cancelled.IsFulfilled())
}
