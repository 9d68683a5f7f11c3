package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/movielog/movielog/internal/repository"
)

// LibraryHandler serves the per-user movie library: favorites,
// watched flags and ratings.  All three follow the same duplicate
// prevention discipline as the ledger tables; favorites and watched
// are insert-or-reject, ratings upsert.
type LibraryHandler struct {
	Favorites *repository.FavoriteRepo
	Watched   *repository.WatchedRepo
	Ratings   *repository.RatingRepo
}

// NewLibraryHandler constructs a LibraryHandler.  All dependencies
// must be non-nil.
func NewLibraryHandler(fav *repository.FavoriteRepo, watched *repository.WatchedRepo, ratings *repository.RatingRepo) *LibraryHandler {
	if fav == nil || watched == nil || ratings == nil {
		panic("nil repository passed to NewLibraryHandler")
	}
	return &LibraryHandler{Favorites: fav, Watched: watched, Ratings: ratings}
}

type movieRef struct {
	MovieID uint64 `json:"movie_id"`
}

// AddFavorite handles POST /v1/favorites.  A second add for the
// same movie responds 409; the store is left untouched by the
// failing call.
func (h *LibraryHandler) AddFavorite(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body movieRef
	if err := c.Bind(&body); err != nil || body.MovieID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "movie_id is required"})
	}
	if err := h.Favorites.Add(c.Request().Context(), userID, body.MovieID); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "movie already in favorites"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"movie_id": body.MovieID})
}

// RemoveFavorite handles DELETE /v1/favorites/:movie_id.
func (h *LibraryHandler) RemoveFavorite(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	movieID, ok := pathID(c, "movie_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	if err := h.Favorites.Remove(c.Request().Context(), userID, movieID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not in favorites"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ListFavorites handles GET /v1/favorites.  Movie ids come back in
// the order they were added.
func (h *LibraryHandler) ListFavorites(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ids, err := h.Favorites.ListMovieIDs(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": ids})
}

// AddWatched handles POST /v1/watched with the same semantics as
// AddFavorite.
func (h *LibraryHandler) AddWatched(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body movieRef
	if err := c.Bind(&body); err != nil || body.MovieID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "movie_id is required"})
	}
	if err := h.Watched.Add(c.Request().Context(), userID, body.MovieID); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "movie already marked as watched"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"movie_id": body.MovieID})
}

// RemoveWatched handles DELETE /v1/watched/:movie_id.
func (h *LibraryHandler) RemoveWatched(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	movieID, ok := pathID(c, "movie_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	if err := h.Watched.Remove(c.Request().Context(), userID, movieID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not marked as watched"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ListWatched handles GET /v1/watched.
func (h *LibraryHandler) ListWatched(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ids, err := h.Watched.ListMovieIDs(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": ids})
}

type ratingReq struct {
	MovieID uint64 `json:"movie_id"`
	Rating  int    `json:"rating"`
}

// UpsertRating handles PUT /v1/ratings.  The 1..5 range is checked
// before any lookup: a rating of 0 or 6 is rejected even for movies
// the user never touched.  Rating an already-rated movie replaces
// the stored value.
func (h *LibraryHandler) UpsertRating(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body ratingReq
	if err := c.Bind(&body); err != nil || body.MovieID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "movie_id is required"})
	}
	if err := h.Ratings.AddOrUpdate(c.Request().Context(), userID, body.MovieID, body.Rating); err != nil {
		if errors.Is(err, repository.ErrInvalidRating) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "rating must be between 1 and 5"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"movie_id": body.MovieID, "rating": body.Rating})
}

// GetRating handles GET /v1/ratings/:movie_id.  An unrated movie
// yields a null rating rather than an error.
func (h *LibraryHandler) GetRating(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	movieID, ok := pathID(c, "movie_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	rating, err := h.Ratings.Get(c.Request().Context(), userID, movieID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusOK, echo.Map{"movie_id": movieID, "rating": nil})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"movie_id": movieID, "rating": rating})
}
