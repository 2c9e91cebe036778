package feedback

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockStore(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(
		sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp),
		sqlmock.MonitorPingsOption(true),
	)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mock.ExpectPing()
	store, err := NewPostgresStore(db)
	require.NoError(t, err)
	return store, mock
}

func TestPostgresSave(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`INSERT INTO feedback`).
		WithArgs("Asha", "asha@example.com", "diabetes", 4,
			"The glucose guidance was helpful.", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	fb := sampleFeedback()
	require.NoError(t, store.Save(context.Background(), fb))
	assert.EqualValues(t, 7, fb.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSaveRejectsInvalidWithoutQuery(t *testing.T) {
	store, mock := newMockStore(t)

	fb := sampleFeedback()
	fb.Rating = 9
	assert.Error(t, store.Save(context.Background(), fb))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGet(t *testing.T) {
	store, mock := newMockStore(t)
	now := time.Now()

	rows := sqlmock.NewRows([]string{
		"id", "name", "email", "category", "rating", "message", "created_at", "updated_at",
	}).AddRow(int64(3), "Ravi", "", "general", 5, "great", now, now)

	mock.ExpectQuery(`SELECT id, name, email, category, rating, message, created_at, updated_at`).
		WithArgs(int64(3)).
		WillReturnRows(rows)

	fb, err := store.Get(context.Background(), 3)
	require.NoError(t, err)
	require.NotNil(t, fb)
	assert.Equal(t, "Ravi", fb.Name)
	assert.Equal(t, CategoryGeneral, fb.Category)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGetMissingReturnsNil(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT id, name, email, category, rating, message`).
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "email", "category", "rating", "message", "created_at", "updated_at",
		}))

	fb, err := store.Get(context.Background(), 42)
	require.NoError(t, err)
	assert.Nil(t, fb)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresListAndCount(t *testing.T) {
	store, mock := newMockStore(t)
	now := time.Now()

	mock.ExpectQuery(`SELECT id, name, email, category, rating, message`).
		WithArgs(10, 0).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "email", "category", "rating", "message", "created_at", "updated_at",
		}).
			AddRow(int64(2), "B", "", "heart", 3, "ok", now, now).
			AddRow(int64(1), "A", "", "general", 5, "good", now, now))

	all, err := store.List(context.Background(), 10, 0)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, CategoryHeart, all[0].Category)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM feedback`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(2)))

	count, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresDelete(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec(`DELETE FROM feedback WHERE id`).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, store.Delete(context.Background(), 5))
	assert.NoError(t, mock.ExpectationsWereMet())
}
