// Package memory provides an in-process implementation of the unit of work
// and every repository port. It backs development runs and end-to-end tests
// and follows the same consistency rules as the PostgreSQL adapter:
//
//   - a unit of work holds the store exclusively from Begin until Commit or
//     Rollback and works on a private copy, so Rollback simply drops it
//   - orders are versioned; a stale Update fails with errs.ConflictError
//   - one pending application per user, one review per order, unique emails
//
// Repositories obtained without Begin run each call under the store lock.
package memory

import (
	"context"
	"errors"
	"maps"
	"time"

	"bakery/internal/core/domain/model/application"
	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/order"
	"bakery/internal/core/domain/model/user"
	"bakery/internal/core/ports"
)

// ErrNoActiveTransaction is returned by Commit and Rollback without Begin.
var ErrNoActiveTransaction = errors.New("no active transaction")

type userRow struct {
	id           kernel.ID
	name         string
	email        string
	passwordHash string
	role         user.Role
	createdAt    time.Time
}

type applicationRow struct {
	id            kernel.ID
	userID        kernel.ID
	requestedRole user.Role
	currentRole   user.Role
	experience    string
	reason        string
	status        application.Status
	reviewedBy    *kernel.ID
	reviewedAt    *time.Time
	createdAt     time.Time
}

type reviewRow struct {
	id            kernel.ID
	orderID       kernel.ID
	customerID    kernel.ID
	juniorBakerID kernel.ID
	rating        int
	comment       string
	createdAt     time.Time
}

type messageRow struct {
	id          kernel.ID
	senderID    kernel.ID
	recipientID kernel.ID
	orderID     *kernel.ID
	body        string
	createdAt   time.Time
}

type state struct {
	lastID       int64
	users        map[kernel.ID]userRow
	orders       map[kernel.ID]order.Snapshot
	history      map[kernel.ID][]order.StatusChange
	applications map[kernel.ID]applicationRow
	reviews      map[kernel.ID]reviewRow
	messages     map[kernel.ID]messageRow
}

func newState() *state {
	return &state{
		users:        make(map[kernel.ID]userRow),
		orders:       make(map[kernel.ID]order.Snapshot),
		history:      make(map[kernel.ID][]order.StatusChange),
		applications: make(map[kernel.ID]applicationRow),
		reviews:      make(map[kernel.ID]reviewRow),
		messages:     make(map[kernel.ID]messageRow),
	}
}

// clone copies every table. Rows are replaced, never mutated in place, so
// copying the maps is enough.
func (s *state) clone() *state {
	history := make(map[kernel.ID][]order.StatusChange, len(s.history))
	for id, changes := range s.history {
		history[id] = append([]order.StatusChange(nil), changes...)
	}
	return &state{
		lastID:       s.lastID,
		users:        maps.Clone(s.users),
		orders:       maps.Clone(s.orders),
		history:      history,
		applications: maps.Clone(s.applications),
		reviews:      maps.Clone(s.reviews),
		messages:     maps.Clone(s.messages),
	}
}

// nextID hands out ids from one sequence shared by all tables.
func (s *state) nextID() kernel.ID {
	s.lastID++
	return kernel.ID(s.lastID)
}

// Store is the shared in-memory database.
type Store struct {
	sem  chan struct{}
	data *state
}

func NewStore() *Store {
	return &Store{
		sem:  make(chan struct{}, 1),
		data: newState(),
	}
}

func (s *Store) acquire(ctx context.Context) error {
	select {
	case s.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Store) release() {
	<-s.sem
}

// UnitOfWorkFactory creates units of work over one Store.
type UnitOfWorkFactory struct {
	store *Store
}

func NewUnitOfWorkFactory(store *Store) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store}
}

func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{store: f.store}
}

// UnitOfWork is a serialized transaction over the Store.
type UnitOfWork struct {
	store   *Store
	working *state
}

func (uow *UnitOfWork) Begin(ctx context.Context) error {
	if uow.working != nil {
		return nil
	}
	if err := uow.store.acquire(ctx); err != nil {
		return err
	}
	uow.working = uow.store.data.clone()
	return nil
}

func (uow *UnitOfWork) Commit(_ context.Context) error {
	if uow.working == nil {
		return ErrNoActiveTransaction
	}
	uow.store.data = uow.working
	uow.working = nil
	uow.store.release()
	return nil
}

func (uow *UnitOfWork) Rollback(_ context.Context) error {
	if uow.working == nil {
		return ErrNoActiveTransaction
	}
	uow.working = nil
	uow.store.release()
	return nil
}

// run executes fn against the transaction copy, or against the shared data
// under the store lock when no transaction is active.
func (uow *UnitOfWork) run(ctx context.Context, fn func(*state) error) error {
	if uow.working != nil {
		return fn(uow.working)
	}
	if err := uow.store.acquire(ctx); err != nil {
		return err
	}
	defer uow.store.release()
	return fn(uow.store.data)
}

func (uow *UnitOfWork) UserRepository() ports.UserRepository {
	return &userRepository{uow: uow}
}

func (uow *UnitOfWork) OrderRepository() ports.OrderRepository {
	return &orderRepository{uow: uow}
}

func (uow *UnitOfWork) ApplicationRepository() ports.ApplicationRepository {
	return &applicationRepository{uow: uow}
}

func (uow *UnitOfWork) ReviewRepository() ports.ReviewRepository {
	return &reviewRepository{uow: uow}
}

func (uow *UnitOfWork) MessageRepository() ports.MessageRepository {
	return &messageRepository{uow: uow}
}
