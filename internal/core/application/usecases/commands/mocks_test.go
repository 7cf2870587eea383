package commands_test

import (
	"context"
	"time"

	"bakery/internal/core/application/usecases/commands"
	"bakery/internal/core/domain/model/application"
	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/order"
	"bakery/internal/core/domain/model/user"
	"bakery/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Add(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) Get(ctx context.Context, id kernel.ID) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) ListByRole(ctx context.Context, role user.Role) ([]*user.User, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*user.User), args.Error(1)
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.ID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) list(args mock.Arguments) ([]*order.Order, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) ListByCustomer(ctx context.Context, id kernel.ID) ([]*order.Order, error) {
	return m.list(m.Called(ctx, id))
}

func (m *MockOrderRepository) ListByMainBaker(ctx context.Context, id kernel.ID) ([]*order.Order, error) {
	return m.list(m.Called(ctx, id))
}

func (m *MockOrderRepository) ListByJuniorBaker(ctx context.Context, id kernel.ID) ([]*order.Order, error) {
	return m.list(m.Called(ctx, id))
}

func (m *MockOrderRepository) ListUnclaimed(ctx context.Context, createdBefore time.Time) ([]*order.Order, error) {
	return m.list(m.Called(ctx, createdBefore))
}

func (m *MockOrderRepository) ListAll(ctx context.Context) ([]*order.Order, error) {
	return m.list(m.Called(ctx))
}

func (m *MockOrderRepository) CountByJuniorBaker(
	ctx context.Context,
	id kernel.ID,
	statuses ...order.Status,
) (int, error) {
	args := m.Called(ctx, id, statuses)
	return args.Int(0), args.Error(1)
}

func (m *MockOrderRepository) History(ctx context.Context, id kernel.ID) ([]order.StatusChange, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.StatusChange), args.Error(1)
}

type MockApplicationRepository struct{ mock.Mock }

func (m *MockApplicationRepository) Add(ctx context.Context, app *application.BakerApplication) error {
	args := m.Called(ctx, app)
	return args.Error(0)
}

func (m *MockApplicationRepository) Update(ctx context.Context, app *application.BakerApplication) error {
	args := m.Called(ctx, app)
	return args.Error(0)
}

func (m *MockApplicationRepository) Get(ctx context.Context, id kernel.ID) (*application.BakerApplication, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*application.BakerApplication), args.Error(1)
}

func (m *MockApplicationRepository) HasPending(ctx context.Context, userID kernel.ID) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockApplicationRepository) ListByUser(
	ctx context.Context,
	userID kernel.ID,
) ([]*application.BakerApplication, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*application.BakerApplication), args.Error(1)
}

func (m *MockApplicationRepository) ListByStatus(
	ctx context.Context,
	status application.Status,
) ([]*application.BakerApplication, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*application.BakerApplication), args.Error(1)
}

// MockUoW implements every narrow unit of work the handlers ask for.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) UserRepository() ports.UserRepository {
	args := m.Called()
	return args.Get(0).(ports.UserRepository)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) ApplicationRepository() ports.ApplicationRepository {
	args := m.Called()
	return args.Get(0).(ports.ApplicationRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockApplicationUoWFactory struct{ mock.Mock }

func (m *MockApplicationUoWFactory) Create() commands.ApplicationUoW {
	args := m.Called()
	return args.Get(0).(commands.ApplicationUoW)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Notify(ctx context.Context, n ports.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

// recordingNotifier keeps every notification it receives and answers
// each one with err.
type recordingNotifier struct {
	sent []ports.Notification
	err  error
}

func (r *recordingNotifier) Notify(_ context.Context, n ports.Notification) error {
	r.sent = append(r.sent, n)
	return r.err
}

func (r *recordingNotifier) events(userID kernel.ID) []ports.Event {
	var out []ports.Event
	for _, n := range r.sent {
		if n.UserID == userID {
			out = append(out, n.Event)
		}
	}
	return out
}
