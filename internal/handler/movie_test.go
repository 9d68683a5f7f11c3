package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/movielog/movielog/internal/catalog"
)

func TestGetMoviePlaceholderWhenProviderUnavailable(t *testing.T) {
	// No API key configured: the lookup fails and the handler must
	// degrade to 200 with a placeholder, never an error status.
	h := NewMovieHandler(catalog.New("", "http://unused", nil, time.Minute))

	c, rec := jsonContext(http.MethodGet, "/v1/movies/42", "")
	c.SetParamNames("id")
	c.SetParamValues("42")
	require.NoError(t, h.GetMovie(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id": 42, "metadata": "unavailable"}`, rec.Body.String())
}

func TestGetMovieProxiesProviderDocument(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id": 42, "title": "Some Movie", "runtime": 123}`))
	}))
	defer srv.Close()

	h := NewMovieHandler(catalog.New("k", srv.URL, nil, time.Minute))
	c, rec := jsonContext(http.MethodGet, "/v1/movies/42", "")
	c.SetParamNames("id")
	c.SetParamValues("42")
	require.NoError(t, h.GetMovie(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id": 42, "title": "Some Movie", "runtime": 123}`, rec.Body.String())
}

func TestGetMovieInvalidID(t *testing.T) {
	h := NewMovieHandler(catalog.New("", "http://unused", nil, time.Minute))
	c, rec := jsonContext(http.MethodGet, "/v1/movies/abc", "")
	c.SetParamNames("id")
	c.SetParamValues("abc")
	require.NoError(t, h.GetMovie(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
