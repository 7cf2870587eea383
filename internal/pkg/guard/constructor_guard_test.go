package guard_test

import (
	"errors"
	"sync"
	"testing"

	"bakery/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errTicketNotConstructed = errors.New("Ticket must be created via NewTicket")

type ticket struct {
	number int
	guard  guard.ConstructorGuard
}

func newTicket(number int) ticket {
	return ticket{number: number, guard: guard.NewConstructorGuard()}
}

func (t ticket) Validate() error {
	return t.guard.Validate(errTicketNotConstructed)
}

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("constructed guard passes with any error", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errTicketNotConstructed))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero value returns the supplied error", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(errTicketNotConstructed)
		require.ErrorIs(t, err, errTicketNotConstructed)
	})

	t.Run("zero value falls back to the default error", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)
		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
		assert.Equal(t, "object must be created via its constructor", err.Error())
	})
}

func TestConstructorGuard_EmbeddedUsage(t *testing.T) {
	t.Run("constructor output is valid", func(t *testing.T) {
		tk := newTicket(12)
		require.NoError(t, tk.Validate())
		assert.Equal(t, 12, tk.number)
	})

	t.Run("struct literal is rejected", func(t *testing.T) {
		tk := ticket{number: 12}
		require.ErrorIs(t, tk.Validate(), errTicketNotConstructed)
	})

	t.Run("copies keep the constructed flag", func(t *testing.T) {
		original := newTicket(1)
		clone := original
		require.NoError(t, clone.Validate())
	})
}

func TestConstructorGuard_ConcurrentValidate(t *testing.T) {
	g := guard.NewConstructorGuard()

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, g.Validate(errTicketNotConstructed))
		}()
	}
	wg.Wait()
}
