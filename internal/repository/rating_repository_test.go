package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRatingAddOrUpdateRejectsOutOfRange(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRatingRepo(db)
	for _, v := range []int{0, -1, 6, 100} {
		err := repo.AddOrUpdate(context.Background(), 1, 42, v)
		assert.ErrorIs(t, err, ErrInvalidRating, "rating %d", v)
	}
	// The range check runs before any query.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRatingAddOrUpdateInsertsWhenUnrated(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id FROM ratings`).
		WithArgs(uint64(1), uint64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec(`INSERT INTO ratings`).
		WithArgs(uint64(1), uint64(42), 4).
		WillReturnResult(sqlmock.NewResult(7, 1))

	repo := NewRatingRepo(db)
	require.NoError(t, repo.AddOrUpdate(context.Background(), 1, 42, 4))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRatingAddOrUpdateOverwritesExisting(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id FROM ratings`).
		WithArgs(uint64(1), uint64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectExec(`UPDATE ratings SET rating`).
		WithArgs(5, uint64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewRatingRepo(db)
	require.NoError(t, repo.AddOrUpdate(context.Background(), 1, 42, 5))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRatingGetNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT rating FROM ratings`).
		WithArgs(uint64(1), uint64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"rating"}))

	repo := NewRatingRepo(db)
	_, err = repo.Get(context.Background(), 1, 42)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRatingGet(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT rating FROM ratings`).
		WithArgs(uint64(1), uint64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"rating"}).AddRow(3))

	repo := NewRatingRepo(db)
	got, err := repo.Get(context.Background(), 1, 42)
	require.NoError(t, err)
	assert.Equal(t, 3, got)
}
