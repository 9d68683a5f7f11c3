package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/movielog/movielog/internal/config"
	"github.com/movielog/movielog/internal/repository"
)

func newAuthEnv(t *testing.T) (*AuthHandler, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	cfg := config.Config{
		JWTSecret:      "test-secret",
		AccessTTLMin:   15,
		RefreshTTLDays: 7,
		BcryptCost:     bcrypt.MinCost,
	}
	h := NewAuthHandler(cfg, repository.NewUserRepo(db), repository.NewTokenRepo(db))
	return h, mock, func() { db.Close() }
}

func TestRegister(t *testing.T) {
	h, mock, done := newAuthEnv(t)
	defer done()

	mock.ExpectExec(`INSERT INTO users`).
		WithArgs("alice", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO refresh_tokens`).
		WithArgs(uint64(1), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	c, rec := jsonContext(http.MethodPost, "/v1/auth/register",
		`{"username": "Alice", "password": "s3cret"}`)
	require.NoError(t, h.Register(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		User struct {
			ID       uint64 `json:"id"`
			Username string `json:"username"`
		} `json:"user"`
		Access struct {
			Token string `json:"token"`
		} `json:"access"`
		Refresh struct {
			Token string `json:"token"`
		} `json:"refresh"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, uint64(1), resp.User.ID)
	// Username is normalized to lower case before storage.
	assert.Equal(t, "alice", resp.User.Username)
	assert.NotEmpty(t, resp.Access.Token)
	assert.NotEmpty(t, resp.Refresh.Token)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterDuplicateUsername(t *testing.T) {
	h, mock, done := newAuthEnv(t)
	defer done()

	mock.ExpectExec(`INSERT INTO users`).
		WithArgs("alice", sqlmock.AnyArg()).
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry 'alice' for key 'users.username'"))

	c, rec := jsonContext(http.MethodPost, "/v1/auth/register",
		`{"username": "alice", "password": "s3cret"}`)
	require.NoError(t, h.Register(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "username already exists")
}

func TestRegisterMissingFields(t *testing.T) {
	h, mock, done := newAuthEnv(t)
	defer done()

	c, rec := jsonContext(http.MethodPost, "/v1/auth/register", `{"username": "alice"}`)
	require.NoError(t, h.Register(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginWrongPassword(t *testing.T) {
	h, mock, done := newAuthEnv(t)
	defer done()

	hash, err := bcrypt.GenerateFromPassword([]byte("right"), bcrypt.MinCost)
	require.NoError(t, err)
	mock.ExpectQuery(`FROM users WHERE username`).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash", "profile_image", "created_at", "updated_at"}).
			AddRow(1, "alice", string(hash), nil, time.Now(), time.Now()))

	c, rec := jsonContext(http.MethodPost, "/v1/auth/login",
		`{"username": "alice", "password": "wrong"}`)
	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid credentials")
}

func TestLoginUnknownUser(t *testing.T) {
	h, mock, done := newAuthEnv(t)
	defer done()

	mock.ExpectQuery(`FROM users WHERE username`).
		WithArgs("nobody").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash", "profile_image", "created_at", "updated_at"}))

	c, rec := jsonContext(http.MethodPost, "/v1/auth/login",
		`{"username": "nobody", "password": "s3cret"}`)
	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
