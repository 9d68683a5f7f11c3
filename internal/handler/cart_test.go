package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/movielog/movielog/internal/repository"
)

func newCartEnv(t *testing.T) (*CartHandler, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return NewCartHandler(repository.NewCartRepo(db)), mock, func() { db.Close() }
}

func TestCartAdd(t *testing.T) {
	h, mock, done := newCartEnv(t)
	defer done()

	mock.ExpectExec(`INSERT INTO cart_items`).
		WithArgs(uint64(1), uint64(42), "Some Movie", "19:30", "2026-09-12").
		WillReturnResult(sqlmock.NewResult(5, 1))

	c, rec := jsonContext(http.MethodPost, "/v1/cart",
		`{"movie_id": 42, "title": "Some Movie", "showtime": "19:30", "date": "2026-09-12"}`)
	require.NoError(t, h.Add(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t,
		`{"id": 5, "movie_id": 42, "title": "Some Movie", "showtime": "19:30", "date": "2026-09-12"}`,
		rec.Body.String())
}

// The same session may be added twice; each call appends its own row.
func TestCartAddDuplicateSession(t *testing.T) {
	h, mock, done := newCartEnv(t)
	defer done()

	for i := int64(1); i <= 2; i++ {
		mock.ExpectExec(`INSERT INTO cart_items`).
			WithArgs(uint64(1), uint64(42), "Some Movie", "19:30", "2026-09-12").
			WillReturnResult(sqlmock.NewResult(i, 1))
	}

	body := `{"movie_id": 42, "title": "Some Movie", "showtime": "19:30", "date": "2026-09-12"}`
	for i := 0; i < 2; i++ {
		c, rec := jsonContext(http.MethodPost, "/v1/cart", body)
		require.NoError(t, h.Add(c))
		assert.Equal(t, http.StatusCreated, rec.Code)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCartAddMissingFields(t *testing.T) {
	h, mock, done := newCartEnv(t)
	defer done()

	c, rec := jsonContext(http.MethodPost, "/v1/cart", `{"movie_id": 42, "title": "  "}`)
	require.NoError(t, h.Add(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCartRemoveNotFound(t *testing.T) {
	h, mock, done := newCartEnv(t)
	defer done()

	mock.ExpectExec(`DELETE FROM cart_items WHERE id`).
		WithArgs(uint64(9), uint64(1)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	c, rec := jsonContext(http.MethodDelete, "/v1/cart/9", "")
	c.SetParamNames("id")
	c.SetParamValues("9")
	require.NoError(t, h.Remove(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCartList(t *testing.T) {
	h, mock, done := newCartEnv(t)
	defer done()

	mock.ExpectQuery(`FROM cart_items WHERE user_id`).
		WithArgs(uint64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "movie_id", "title", "showtime", "date", "created_at"}).
			AddRow(1, 1, 42, "Some Movie", "19:30", "2026-09-12", time.Now()).
			AddRow(2, 1, 7, "Another One", "21:00", "2026-09-13", time.Now()))

	c, rec := jsonContext(http.MethodGet, "/v1/cart", "")
	require.NoError(t, h.List(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"title":"Another One"`)
}
