package memory_test

import (
	"context"
	"testing"
	"time"

	"bakery/internal/adapters/out/memory"
	"bakery/internal/core/domain/model/access"
	"bakery/internal/core/domain/model/application"
	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/message"
	"bakery/internal/core/domain/model/order"
	"bakery/internal/core/domain/model/review"
	"bakery/internal/core/domain/model/user"
	"bakery/internal/core/ports"
	"bakery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 4, 2, 8, 0, 0, 0, time.UTC)

func newFactory() *memory.UnitOfWorkFactory {
	return memory.NewUnitOfWorkFactory(memory.NewStore())
}

func addUser(t *testing.T, uow ports.UnitOfWork, email string, role user.Role) *user.User {
	t.Helper()
	u, err := user.NewUser("Baker "+email, email, "hash", role, now)
	require.NoError(t, err)
	require.NoError(t, uow.UserRepository().Add(context.Background(), u))
	return u
}

func newOrder(t *testing.T, customerID kernel.ID, createdAt time.Time) *order.Order {
	t.Helper()
	price, err := kernel.ParseMoney("3.20")
	require.NoError(t, err)
	item, err := order.NewItem(7, "Baguette", 1, price)
	require.NoError(t, err)
	delivery, err := order.NewDeliveryInfo("Ann", "+100200300", "1 Baker St", "", "")
	require.NoError(t, err)
	o, err := order.NewOrder(customerID, []order.Item{item}, delivery, order.CashOnDelivery, createdAt)
	require.NoError(t, err)
	return o
}

func Test_UnitOfWork_CommitPublishesChanges(t *testing.T) {
	ctx := context.Background()
	factory := newFactory()

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))
	u := addUser(t, uow, "ann@bakery.test", user.Customer)
	require.NoError(t, uow.Commit(ctx))

	got, err := factory.Create().UserRepository().Get(ctx, u.ID())
	require.NoError(t, err)
	assert.Equal(t, "ann@bakery.test", got.Email())
}

func Test_UnitOfWork_RollbackDiscardsChanges(t *testing.T) {
	ctx := context.Background()
	factory := newFactory()

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))
	u := addUser(t, uow, "ann@bakery.test", user.Customer)
	require.NoError(t, uow.Rollback(ctx))

	_, err := factory.Create().UserRepository().Get(ctx, u.ID())
	var notFound *errs.ObjectNotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func Test_UnitOfWork_CommitWithoutBegin(t *testing.T) {
	err := newFactory().Create().Commit(context.Background())
	assert.ErrorIs(t, err, memory.ErrNoActiveTransaction)
}

func Test_UnitOfWork_BeginWaitsForOtherTransaction(t *testing.T) {
	factory := newFactory()
	first := factory.Create()
	require.NoError(t, first.Begin(context.Background()))
	defer func() { _ = first.Rollback(context.Background()) }()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := factory.Create().Begin(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func Test_UserRepository_RejectsDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	uow := newFactory().Create()
	addUser(t, uow, "ann@bakery.test", user.Customer)

	again, err := user.NewUser("Other Ann", "ANN@bakery.test", "hash", user.Customer, now)
	require.NoError(t, err)
	err = uow.UserRepository().Add(ctx, again)
	assert.ErrorIs(t, err, user.ErrEmailAlreadyRegistered)

	found, err := uow.UserRepository().GetByEmail(ctx, "Ann@Bakery.test")
	require.NoError(t, err)
	assert.Equal(t, "Baker ann@bakery.test", found.Name())
}

func Test_UserRepository_ListByRole(t *testing.T) {
	ctx := context.Background()
	uow := newFactory().Create()
	first := addUser(t, uow, "a@bakery.test", user.MainBaker)
	addUser(t, uow, "b@bakery.test", user.Customer)
	second := addUser(t, uow, "c@bakery.test", user.MainBaker)

	bakers, err := uow.UserRepository().ListByRole(ctx, user.MainBaker)
	require.NoError(t, err)
	require.Len(t, bakers, 2)
	assert.Equal(t, first.ID(), bakers[0].ID())
	assert.Equal(t, second.ID(), bakers[1].ID())
}

func Test_OrderRepository_VersionsAndHistory(t *testing.T) {
	ctx := context.Background()
	factory := newFactory()
	uow := factory.Create()
	customer := addUser(t, uow, "ann@bakery.test", user.Customer)
	baker := addUser(t, uow, "bob@bakery.test", user.MainBaker)

	o := newOrder(t, customer.ID(), now)
	require.NoError(t, uow.OrderRepository().Add(ctx, o))
	assert.Equal(t, 1, o.Version())

	// A second reader loads the same version before the first write lands.
	stale, err := uow.OrderRepository().Get(ctx, o.ID())
	require.NoError(t, err)

	bakerID := baker.ID()
	_, err = o.Assign(&bakerID, nil, bakerID, now.Add(time.Minute))
	require.NoError(t, err)
	require.NoError(t, uow.OrderRepository().Update(ctx, o))
	assert.Equal(t, 2, o.Version())

	_, err = stale.Transition(order.Cancelled, access.Actor{ID: 99, Role: user.Admin}, now.Add(2*time.Minute))
	require.NoError(t, err)
	err = uow.OrderRepository().Update(ctx, stale)
	var conflict *errs.ConflictError
	require.ErrorAs(t, err, &conflict)

	stored, err := uow.OrderRepository().Get(ctx, o.ID())
	require.NoError(t, err)
	assert.Equal(t, order.Assigned, stored.Status())

	history, err := uow.OrderRepository().History(ctx, o.ID())
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, order.Unknown, history[0].From)
	assert.Equal(t, order.Pending, history[0].To)
	assert.Equal(t, o.ID(), history[0].OrderID)
	assert.Equal(t, order.Assigned, history[1].To)
	assert.Equal(t, bakerID, history[1].ActorID)
}

func Test_OrderRepository_Listings(t *testing.T) {
	ctx := context.Background()
	uow := newFactory().Create()
	customer := addUser(t, uow, "ann@bakery.test", user.Customer)
	mainBaker := addUser(t, uow, "bob@bakery.test", user.MainBaker)
	junior := addUser(t, uow, "jo@bakery.test", user.JuniorBaker)

	older := newOrder(t, customer.ID(), now.Add(-2*time.Hour))
	newer := newOrder(t, customer.ID(), now.Add(-time.Hour))
	claimed := newOrder(t, customer.ID(), now.Add(-3*time.Hour))
	for _, o := range []*order.Order{older, newer, claimed} {
		require.NoError(t, uow.OrderRepository().Add(ctx, o))
	}

	mainID, juniorID := mainBaker.ID(), junior.ID()
	_, err := claimed.Assign(&mainID, &juniorID, mainID, now)
	require.NoError(t, err)
	require.NoError(t, uow.OrderRepository().Update(ctx, claimed))

	all, err := uow.OrderRepository().ListByCustomer(ctx, customer.ID())
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, newer.ID(), all[0].ID())
	assert.Equal(t, claimed.ID(), all[2].ID())

	unclaimed, err := uow.OrderRepository().ListUnclaimed(ctx, now.Add(-90*time.Minute))
	require.NoError(t, err)
	require.Len(t, unclaimed, 1)
	assert.Equal(t, older.ID(), unclaimed[0].ID())

	delegated, err := uow.OrderRepository().ListByJuniorBaker(ctx, juniorID)
	require.NoError(t, err)
	require.Len(t, delegated, 1)

	active, err := uow.OrderRepository().CountByJuniorBaker(ctx, juniorID, order.ActiveStatuses()...)
	require.NoError(t, err)
	assert.Equal(t, 1, active)

	fulfilled, err := uow.OrderRepository().CountByJuniorBaker(ctx, juniorID, order.FulfilledStatuses()...)
	require.NoError(t, err)
	assert.Zero(t, fulfilled)
}

func Test_ApplicationRepository_PendingIsUniqueAndDecidedOnce(t *testing.T) {
	ctx := context.Background()
	uow := newFactory().Create()
	applicant := addUser(t, uow, "ann@bakery.test", user.Customer)
	admin := addUser(t, uow, "root@bakery.test", user.Admin)

	app, err := application.NewBakerApplication(applicant, user.Customer, user.JuniorBaker, "", "I bake at home", now)
	require.NoError(t, err)
	require.NoError(t, uow.ApplicationRepository().Add(ctx, app))

	pending, err := uow.ApplicationRepository().HasPending(ctx, applicant.ID())
	require.NoError(t, err)
	assert.True(t, pending)

	second, err := application.NewBakerApplication(applicant, user.Customer, user.JuniorBaker, "", "again", now)
	require.NoError(t, err)
	err = uow.ApplicationRepository().Add(ctx, second)
	var duplicate *errs.DuplicatePendingApplicationError
	require.ErrorAs(t, err, &duplicate)

	first, err := uow.ApplicationRepository().Get(ctx, app.ID())
	require.NoError(t, err)
	racing, err := uow.ApplicationRepository().Get(ctx, app.ID())
	require.NoError(t, err)

	reviewer := access.ActorOf(admin)
	require.NoError(t, first.Decide(application.Approve, reviewer, now))
	require.NoError(t, uow.ApplicationRepository().Update(ctx, first))

	require.NoError(t, racing.Decide(application.Reject, reviewer, now))
	err = uow.ApplicationRepository().Update(ctx, racing)
	var decided *errs.AlreadyDecidedError
	require.ErrorAs(t, err, &decided)

	approved, err := uow.ApplicationRepository().ListByStatus(ctx, application.Approved)
	require.NoError(t, err)
	require.Len(t, approved, 1)
	assert.Equal(t, app.ID(), approved[0].ID())
}

func Test_ReviewRepository_OneReviewPerOrder(t *testing.T) {
	ctx := context.Background()
	uow := newFactory().Create()
	customer := addUser(t, uow, "ann@bakery.test", user.Customer)
	mainBaker := addUser(t, uow, "bob@bakery.test", user.MainBaker)
	junior := addUser(t, uow, "jo@bakery.test", user.JuniorBaker)

	o := newOrder(t, customer.ID(), now)
	require.NoError(t, uow.OrderRepository().Add(ctx, o))
	mainID, juniorID := mainBaker.ID(), junior.ID()
	_, err := o.Assign(&mainID, &juniorID, mainID, now)
	require.NoError(t, err)
	for _, next := range []order.Status{order.InProgress, order.Completed, order.ReadyForDelivery, order.Delivered} {
		_, err = o.Transition(next, access.ActorOf(mainBaker), now)
		require.NoError(t, err)
	}
	require.NoError(t, uow.OrderRepository().Update(ctx, o))

	rv, err := review.NewReview(o, access.ActorOf(customer), 4, "crusty", now)
	require.NoError(t, err)
	require.NoError(t, uow.ReviewRepository().Add(ctx, rv))

	again, err := review.NewReview(o, access.ActorOf(customer), 5, "even better", now)
	require.NoError(t, err)
	assert.ErrorIs(t, uow.ReviewRepository().Add(ctx, again), review.ErrOrderAlreadyReviewed)

	summary, err := uow.ReviewRepository().RatingForJuniorBaker(ctx, juniorID)
	require.NoError(t, err)
	assert.Equal(t, ports.RatingSummary{Count: 1, Average: 4}, summary)

	found, err := uow.ReviewRepository().GetByOrder(ctx, o.ID())
	require.NoError(t, err)
	assert.Equal(t, "crusty", found.Comment())
}

func Test_MessageRepository_ConversationAndRetention(t *testing.T) {
	ctx := context.Background()
	uow := newFactory().Create()
	ann := addUser(t, uow, "ann@bakery.test", user.Customer)
	bob := addUser(t, uow, "bob@bakery.test", user.MainBaker)
	eve := addUser(t, uow, "eve@bakery.test", user.Customer)

	send := func(from, to *user.User, body string, at time.Time) {
		m, err := message.NewMessage(from.ID(), to.ID(), nil, body, at)
		require.NoError(t, err)
		require.NoError(t, uow.MessageRepository().Add(ctx, m))
	}
	send(ann, bob, "old", now.Add(-48*time.Hour))
	send(bob, ann, "hello", now.Add(-time.Hour))
	send(ann, bob, "hi", now)
	send(eve, bob, "unrelated", now)

	conversation, err := uow.MessageRepository().ListConversation(ctx, ann.ID(), bob.ID())
	require.NoError(t, err)
	require.Len(t, conversation, 3)
	assert.Equal(t, "old", conversation[0].Body())
	assert.Equal(t, "hi", conversation[2].Body())

	deleted, err := uow.MessageRepository().DeleteOlderThan(ctx, now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	inbox, err := uow.MessageRepository().ListForUser(ctx, bob.ID(), time.Time{})
	require.NoError(t, err)
	assert.Len(t, inbox, 3)
}
