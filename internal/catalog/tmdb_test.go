package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMovieWithoutAPIKey(t *testing.T) {
	c := New("", "http://unused", nil, time.Minute)
	_, err := c.Movie(context.Background(), 42)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestMovieFetchAndLocalCache(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, "/movie/42", r.URL.Path)
		assert.Equal(t, "k", r.URL.Query().Get("api_key"))
		w.Write([]byte(`{"id": 42, "title": "Some Movie"}`))
	}))
	defer srv.Close()

	c := New("k", srv.URL, nil, time.Minute)
	body, err := c.Movie(context.Background(), 42)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id": 42, "title": "Some Movie"}`, string(body))

	// Second lookup is served from the in-process cache.
	_, err = c.Movie(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, int32(1), hits.Load())
}

func TestMovieProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	c := New("k", srv.URL, nil, time.Minute)
	_, err := c.Movie(context.Background(), 42)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestMovieInvalidBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	c := New("k", srv.URL, nil, time.Minute)
	_, err := c.Movie(context.Background(), 42)
	assert.ErrorIs(t, err, ErrUnavailable)
}
