package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"bakery/internal/adapters/out/postgres/orderrepo"
	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/order"
	"bakery/internal/pkg/errs"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockedRepository(t *testing.T) (*orderrepo.GormOrderRepository, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return orderrepo.NewGormOrderRepository(db), mock
}

// loadedOrder returns a pending order as if it had been read at version 1,
// then claimed by main baker 2.
func loadedOrder(t *testing.T) *order.Order {
	t.Helper()

	price, err := kernel.ParseMoney("3.00")
	require.NoError(t, err)
	item, err := order.NewItem(1, "Rye loaf", 1, price)
	require.NoError(t, err)
	delivery, err := order.NewDeliveryInfo("Ann", "+1", "1 Mill Ln", "", "")
	require.NoError(t, err)

	o, err := order.NewOrder(1, []order.Item{item}, delivery, order.CashOnDelivery, time.Now())
	require.NoError(t, err)
	require.NoError(t, o.Identify(7))
	o.PullStatusChanges()
	o.Versioned(1)

	mainBaker := kernel.ID(2)
	_, err = o.Assign(&mainBaker, nil, mainBaker, time.Now())
	require.NoError(t, err)
	return o
}

func TestUpdate_WritesNextVersionAndHistory(t *testing.T) {
	repo, mock := newMockedRepository(t)
	o := loadedOrder(t)

	mock.ExpectExec(`UPDATE "orders" SET .* WHERE id = \$6 AND version = \$7`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "order_status_history"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	require.NoError(t, repo.Update(context.Background(), o))
	assert.Equal(t, 2, o.Version())
	assert.Empty(t, o.PullStatusChanges())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_StaleVersionIsConflict(t *testing.T) {
	repo, mock := newMockedRepository(t)
	o := loadedOrder(t)

	mock.ExpectExec(`UPDATE "orders" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "orders" WHERE id = \$1`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	err := repo.Update(context.Background(), o)
	require.ErrorIs(t, err, errs.ErrConflict)
	assert.Equal(t, 1, o.Version())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_MissingRowIsNotFound(t *testing.T) {
	repo, mock := newMockedRepository(t)
	o := loadedOrder(t)

	mock.ExpectExec(`UPDATE "orders" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "orders"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	err := repo.Update(context.Background(), o)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountByJuniorBaker_NoStatusesSkipsQuery(t *testing.T) {
	repo, mock := newMockedRepository(t)

	count, err := repo.CountByJuniorBaker(context.Background(), 3)
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
