package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFavoriteAdd(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO favorite_movies`).
		WithArgs(uint64(1), uint64(42)).
		WillReturnResult(sqlmock.NewResult(1, 1))

	repo := NewFavoriteRepo(db)
	require.NoError(t, repo.Add(context.Background(), 1, 42))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFavoriteAddDuplicate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO favorite_movies`).
		WithArgs(uint64(1), uint64(42)).
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry '1-42' for key 'uq_fav_user_movie'"))

	repo := NewFavoriteRepo(db)
	err = repo.Add(context.Background(), 1, 42)
	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestFavoriteRemoveNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM favorite_movies`).
		WithArgs(uint64(1), uint64(42)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewFavoriteRepo(db)
	err = repo.Remove(context.Background(), 1, 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFavoriteListMovieIDs(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT movie_id FROM favorite_movies`).
		WithArgs(uint64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"movie_id"}).AddRow(42).AddRow(7).AddRow(99))

	repo := NewFavoriteRepo(db)
	ids, err := repo.ListMovieIDs(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []uint64{42, 7, 99}, ids)
}

func TestFavoriteListMovieIDsEmpty(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT movie_id FROM favorite_movies`).
		WithArgs(uint64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"movie_id"}))

	repo := NewFavoriteRepo(db)
	ids, err := repo.ListMovieIDs(context.Background(), 1)
	require.NoError(t, err)
	assert.NotNil(t, ids)
	assert.Empty(t, ids)
}
