package docstore

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jamiebhpark/MentalHealthApp/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupSQLiteStore(t *testing.T, opts ...Option) *SQLStore {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	store, err := NewSQLStore(db, opts...)
	require.NoError(t, err)
	return store
}

func setupMockStore(t *testing.T) (*SQLStore, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)

	return &SQLStore{settings: newSettings(nil), db: gormDB}, mock
}

func TestSQLStore(t *testing.T) {
	runStoreContract(t, func(t *testing.T) Store { return setupSQLiteStore(t) })
}

func TestSQLStore_ServerTimestampUsesStoreClock(t *testing.T) {
	fixed := time.Date(2024, 6, 1, 8, 30, 0, 0, time.UTC)
	s := setupSQLiteStore(t, WithClock(func() time.Time { return fixed }))
	ctx := context.Background()

	id, err := s.CreateDocument(ctx, "users/u1/emotions", Fields{"emotion": "happy", "timestamp": ServerTimestamp})
	require.NoError(t, err)

	fields, err := s.GetDocument(ctx, "users/u1/emotions", id)
	require.NoError(t, err)
	assert.Equal(t, fixed, fields["timestamp"])
}

func TestSQLStore_QueryFailureIsStoreUnavailable(t *testing.T) {
	s, mock := setupMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "documents" WHERE path = $1`)).
		WithArgs("posts").
		WillReturnError(errors.New("connection refused"))

	_, err := s.GetDocuments(context.Background(), "posts", NewQuery())
	require.Error(t, err)
	assert.True(t, models.IsCode(err, models.CodeStoreUnavailable))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStore_UpdateRollsBackOnFailure(t *testing.T) {
	s, mock := setupMockStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "documents" WHERE path = $1 AND id = $2`)).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	err := s.UpdateField(context.Background(), "posts", "p1", "likes", Increment(1))
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.True(t, models.IsCode(err, models.CodeStoreUnavailable))
	assert.NoError(t, mock.ExpectationsWereMet())
}
