package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/movielog/movielog/internal/catalog"
)

// MovieHandler proxies the external movie-metadata provider.  This
// is a display-only read path: a provider outage degrades to a
// placeholder response and can never affect cart or purchase state.
type MovieHandler struct {
	Catalog *catalog.Client
}

// NewMovieHandler constructs a MovieHandler.
func NewMovieHandler(cat *catalog.Client) *MovieHandler {
	if cat == nil {
		panic("nil catalog client passed to NewMovieHandler")
	}
	return &MovieHandler{Catalog: cat}
}

// GetMovie handles GET /v1/movies/:id.  On success the provider's
// JSON document is returned verbatim.  When metadata cannot be
// fetched the response is still 200 with a placeholder, so clients
// render "metadata unavailable" instead of an error page.
func (h *MovieHandler) GetMovie(c echo.Context) error {
	movieID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	doc, err := h.Catalog.Movie(c.Request().Context(), movieID)
	if err != nil {
		if errors.Is(err, catalog.ErrUnavailable) {
			return c.JSON(http.StatusOK, echo.Map{"id": movieID, "metadata": "unavailable"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load movie"})
	}
	return c.JSONBlob(http.StatusOK, json.RawMessage(doc))
}
