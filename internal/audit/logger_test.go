package audit

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newMockLogger(t *testing.T) (*Logger, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Discard,
	})
	require.NoError(t, err)

	return New(db), mock
}

func TestLogger_Log(t *testing.T) {
	l, mock := newMockLogger(t)
	actor := uuid.New()

	mock.ExpectQuery(`INSERT INTO "audit_logs"`).
		WithArgs(sqlmock.AnyArg(), "order_deleted", "order", sqlmock.AnyArg(), `{"owner_id":"x"}`, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	err := l.Log(context.Background(), Event{
		UserID:   &actor,
		Action:   "order_deleted",
		Entity:   "order",
		Metadata: map[string]string{"owner_id": "x"},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLogger_List(t *testing.T) {
	l, mock := newMockLogger(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "audit_logs" WHERE action = \$1`).
		WithArgs("order_created").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery(`SELECT \* FROM "audit_logs" WHERE action = \$1 ORDER BY created_at DESC LIMIT`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "action", "entity"}).
			AddRow(3, "order_created", "order").
			AddRow(2, "order_created", "order"))

	logs, total, err := l.List(context.Background(), Filter{Action: "order_created", Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, logs, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}
