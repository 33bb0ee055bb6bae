package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	orderdomain "github.com/BruksfildServices01/orders-api/internal/domain/order"
	userdomain "github.com/BruksfildServices01/orders-api/internal/domain/user"
	"github.com/BruksfildServices01/orders-api/internal/models"
)

func newMockDB(t *testing.T, skipTx bool) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: skipTx,
		Logger:                 gormlogger.Discard,
	})
	require.NoError(t, err)

	return db, mock
}

func TestCountCreatedSince(t *testing.T) {
	db, mock := newMockDB(t, true)
	repo := NewOrderGormRepository(db)

	since := time.Date(2024, time.January, 23, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT count\(\*\) FROM "orders" WHERE created_at > \$1`).
		WithArgs(since).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(6))

	n, err := repo.CountCreatedSince(context.Background(), since)
	require.NoError(t, err)
	assert.Equal(t, int64(6), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLatestNumber(t *testing.T) {
	db, mock := newMockDB(t, true)
	repo := NewOrderGormRepository(db)

	mock.ExpectQuery(`SELECT "order_number" FROM "orders" WHERE order_number LIKE \$1 ORDER BY LENGTH\(order_number\) DESC, order_number DESC LIMIT`).
		WillReturnRows(sqlmock.NewRows([]string{"order_number"}).AddRow("2401230009"))

	latest, err := repo.LatestNumber(context.Background(), "240123")
	require.NoError(t, err)
	assert.Equal(t, "2401230009", latest)

	mock.ExpectQuery(`SELECT "order_number" FROM "orders"`).
		WillReturnRows(sqlmock.NewRows([]string{"order_number"}))

	latest, err = repo.LatestNumber(context.Background(), "240124")
	require.NoError(t, err)
	assert.Empty(t, latest)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdjustOrdersCount_IsAtomicUpdate(t *testing.T) {
	db, mock := newMockDB(t, true)
	repo := NewOrderGormRepository(db)
	userID := uuid.New()

	mock.ExpectExec(`UPDATE "users" SET "orders_count"=orders_count \+ \$1 WHERE id = \$2`).
		WithArgs(-1, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.AdjustOrdersCount(context.Background(), userID, -1))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdjustOrdersCount_MissingOwner(t *testing.T) {
	db, mock := newMockDB(t, true)
	repo := NewOrderGormRepository(db)

	mock.ExpectExec(`UPDATE "users" SET "orders_count"`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.AdjustOrdersCount(context.Background(), uuid.New(), 1)
	assert.ErrorIs(t, err, orderdomain.ErrOwnerNotFound)
}

func TestCreateOrder_DuplicateNumber(t *testing.T) {
	db, mock := newMockDB(t, true)
	repo := NewOrderGormRepository(db)

	mock.ExpectExec(`INSERT INTO "orders"`).
		WillReturnError(&pgconn.PgError{Code: pgUniqueViolation, ConstraintName: orderNumberIndex})

	err := repo.CreateOrder(context.Background(), &models.Order{
		OrderNumber: "2401230001",
		Status:      "WAITING",
		OwnerID:     uuid.New(),
	})
	assert.ErrorIs(t, err, orderdomain.ErrDuplicateNumber)
}

func TestCreateOrder_OtherUniqueViolationIsNotRetryable(t *testing.T) {
	db, mock := newMockDB(t, true)
	repo := NewOrderGormRepository(db)

	mock.ExpectExec(`INSERT INTO "orders"`).
		WillReturnError(&pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "orders_pkey"})

	err := repo.CreateOrder(context.Background(), &models.Order{OwnerID: uuid.New()})
	require.Error(t, err)
	assert.False(t, errors.Is(err, orderdomain.ErrDuplicateNumber))
}

func TestUpdateOrder_PersistsGivenTimestamp(t *testing.T) {
	db, mock := newMockDB(t, true)
	repo := NewOrderGormRepository(db)

	loc := time.FixedZone("UTC-3", -3*60*60)
	updatedAt := time.Date(2024, time.January, 23, 7, 30, 0, 0, loc)

	mock.ExpectExec(`UPDATE "orders" SET "owner_id"=\$1,"status"=\$2,"updated_at"=\$3 WHERE "id" = \$4`).
		WithArgs(sqlmock.AnyArg(), "COMPLETED", updatedAt, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateOrder(context.Background(), &models.Order{
		ID:        uuid.New(),
		Status:    "COMPLETED",
		OwnerID:   uuid.New(),
		UpdatedAt: updatedAt,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOrder_NotFound(t *testing.T) {
	db, mock := newMockDB(t, true)
	repo := NewOrderGormRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "orders" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetOrder(context.Background(), uuid.New())
	assert.ErrorIs(t, err, orderdomain.ErrNotFound)
}

func TestTransaction_RollsBackOnError(t *testing.T) {
	db, mock := newMockDB(t, true)
	repo := NewOrderGormRepository(db)
	boom := errors.New("boom")

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "users" SET "orders_count"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectRollback()

	err := repo.Transaction(context.Background(), func(tx orderdomain.Repository) error {
		if err := tx.AdjustOrdersCount(context.Background(), uuid.New(), 1); err != nil {
			return err
		}
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransaction_Commits(t *testing.T) {
	db, mock := newMockDB(t, true)
	repo := NewOrderGormRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "users" SET "orders_count"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Transaction(context.Background(), func(tx orderdomain.Repository) error {
		return tx.AdjustOrdersCount(context.Background(), uuid.New(), 1)
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteUser_WithOrders(t *testing.T) {
	db, mock := newMockDB(t, true)
	repo := NewUserGormRepository(db)

	mock.ExpectExec(`DELETE FROM "users"`).
		WillReturnError(&pgconn.PgError{Code: pgForeignKeyViolation})

	err := repo.DeleteUser(context.Background(), &models.User{ID: uuid.New()})
	assert.ErrorIs(t, err, userdomain.ErrHasOrders)
}

func TestCreateUser_EmailTaken(t *testing.T) {
	db, mock := newMockDB(t, true)
	repo := NewUserGormRepository(db)

	mock.ExpectExec(`INSERT INTO "users"`).
		WillReturnError(&pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "idx_users_email"})

	err := repo.CreateUser(context.Background(), &models.User{Email: "user@example.com"})
	assert.ErrorIs(t, err, userdomain.ErrEmailTaken)
}
