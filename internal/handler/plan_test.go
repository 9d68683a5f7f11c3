package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/movielog/movielog/internal/repository"
)

func newPlanEnv(t *testing.T) (*PlanHandler, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	h := NewPlanHandler(
		repository.NewPlanRepo(db),
		repository.NewSubscriptionRepo(db),
		repository.NewPurchaseRepo(db),
	)
	return h, mock, func() { db.Close() }
}

func planContext(method, target string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", uint64(1))
	return c, rec
}

func activeWindowRows(planID uint64) *sqlmock.Rows {
	now := time.Now().UTC()
	return sqlmock.NewRows([]string{"id", "user_id", "plan_id", "start_date", "end_date", "created_at"}).
		AddRow(1, 1, planID, now.Add(-time.Hour), now.AddDate(0, 1, 0), now.Add(-time.Hour))
}

func TestListPlans(t *testing.T) {
	h, mock, done := newPlanEnv(t)
	defer done()

	mock.ExpectQuery(`SELECT id, name, price, movie_limit FROM plans`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price", "movie_limit"}).
			AddRow(1, "Standard", 9.99, 10).
			AddRow(2, "Premium", 19.99, 20))

	c, rec := planContext(http.MethodGet, "/v1/plans")
	require.NoError(t, h.ListPlans(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"Premium"`)
	assert.Contains(t, rec.Body.String(), `"movie_limit":20`)
}

func TestSubscribeUnknownPlan(t *testing.T) {
	h, mock, done := newPlanEnv(t)
	defer done()

	mock.ExpectQuery(`FROM plans WHERE id`).
		WithArgs(uint64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price", "movie_limit"}))

	c, rec := planContext(http.MethodPost, "/v1/plans/99/subscribe")
	c.SetParamNames("id")
	c.SetParamValues("99")
	require.NoError(t, h.Subscribe(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "plan not found")
}

func TestSubscribeOpensNewWindow(t *testing.T) {
	h, mock, done := newPlanEnv(t)
	defer done()

	mock.ExpectQuery(`FROM plans WHERE id`).
		WithArgs(uint64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price", "movie_limit"}).
			AddRow(2, "Premium", 19.99, 20))
	mock.ExpectExec(`INSERT INTO subscriptions`).
		WithArgs(uint64(1), uint64(2), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(5, 1))

	c, rec := planContext(http.MethodPost, "/v1/plans/2/subscribe")
	c.SetParamNames("id")
	c.SetParamValues("2")
	require.NoError(t, h.Subscribe(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"start_date"`)
	assert.Contains(t, rec.Body.String(), `"end_date"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserPlanWithoutWindow(t *testing.T) {
	h, mock, done := newPlanEnv(t)
	defer done()

	mock.ExpectQuery(`FROM subscriptions WHERE user_id`).
		WithArgs(uint64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "plan_id", "start_date", "end_date", "created_at"}))

	c, rec := planContext(http.MethodGet, "/v1/my-plan")
	require.NoError(t, h.GetUserPlan(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"plan": null}`, rec.Body.String())
}

func TestGetLimitUsage(t *testing.T) {
	h, mock, done := newPlanEnv(t)
	defer done()

	mock.ExpectQuery(`FROM subscriptions WHERE user_id`).
		WithArgs(uint64(1)).
		WillReturnRows(activeWindowRows(2))
	mock.ExpectQuery(`FROM plans WHERE id`).
		WithArgs(uint64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price", "movie_limit"}).
			AddRow(2, "Premium", 19.99, 20))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM purchased_movies`).
		WithArgs(uint64(1), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(3))

	c, rec := planContext(http.MethodGet, "/v1/limit-usage")
	require.NoError(t, h.GetLimitUsage(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"movie_limit": 20, "purchased": 3, "remaining": 17}`, rec.Body.String())
}

// remaining may legitimately go negative after a window downgrade
// and is reported as-is rather than clamped to zero.
func TestGetLimitUsageNegativeRemaining(t *testing.T) {
	h, mock, done := newPlanEnv(t)
	defer done()

	mock.ExpectQuery(`FROM subscriptions WHERE user_id`).
		WithArgs(uint64(1)).
		WillReturnRows(activeWindowRows(1))
	mock.ExpectQuery(`FROM plans WHERE id`).
		WithArgs(uint64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price", "movie_limit"}).
			AddRow(1, "Standard", 9.99, 10))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM purchased_movies`).
		WithArgs(uint64(1), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(12))

	c, rec := planContext(http.MethodGet, "/v1/limit-usage")
	require.NoError(t, h.GetLimitUsage(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"movie_limit": 10, "purchased": 12, "remaining": -2}`, rec.Body.String())
}

func TestGetLimitUsageNoActivePlan(t *testing.T) {
	h, mock, done := newPlanEnv(t)
	defer done()

	mock.ExpectQuery(`FROM subscriptions WHERE user_id`).
		WithArgs(uint64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "plan_id", "start_date", "end_date", "created_at"}))

	c, rec := planContext(http.MethodGet, "/v1/limit-usage")
	require.NoError(t, h.GetLimitUsage(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "no active plan")
}
