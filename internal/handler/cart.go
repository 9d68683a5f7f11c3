package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/movielog/movielog/internal/model"
	"github.com/movielog/movielog/internal/repository"
)

// CartHandler manages the pending-ticket cart.  No quota check
// happens here: adding to the cart is always allowed and the limit
// is enforced only when the cart is converted by the purchase
// transaction.
type CartHandler struct {
	Cart *repository.CartRepo
}

// NewCartHandler constructs a CartHandler.
func NewCartHandler(cart *repository.CartRepo) *CartHandler {
	if cart == nil {
		panic("nil repository passed to NewCartHandler")
	}
	return &CartHandler{Cart: cart}
}

type cartItemPart struct {
	ID       uint64 `json:"id"`
	MovieID  uint64 `json:"movie_id"`
	Title    string `json:"title"`
	Showtime string `json:"showtime"`
	Date     string `json:"date"`
}

type addToCartReq struct {
	MovieID  uint64 `json:"movie_id"`
	Title    string `json:"title"`
	Showtime string `json:"showtime"`
	Date     string `json:"date"`
}

// Add handles POST /v1/cart.  The append is unconditional:
// duplicate (movie, showtime, date) tuples are legitimate
// independent line items (two tickets for the same session).
func (h *CartHandler) Add(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req addToCartReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.MovieID == 0 || req.Title == "" || req.Showtime == "" || req.Date == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "movie_id, title, showtime and date are required"})
	}
	item := &model.CartItem{
		UserID:   userID,
		MovieID:  req.MovieID,
		Title:    req.Title,
		Showtime: req.Showtime,
		Date:     req.Date,
	}
	if err := h.Cart.Add(c.Request().Context(), item); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusCreated, cartItemPart{
		ID: item.ID, MovieID: item.MovieID, Title: item.Title, Showtime: item.Showtime, Date: item.Date,
	})
}

// Remove handles DELETE /v1/cart/:id.  Exactly one row goes; a miss
// (unknown id or someone else's row) is a 404.
func (h *CartHandler) Remove(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	itemID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid cart item id"})
	}
	if err := h.Cart.Remove(c.Request().Context(), itemID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "cart item not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.NoContent(http.StatusNoContent)
}

// List handles GET /v1/cart, returning line items in insertion order.
func (h *CartHandler) List(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	items, err := h.Cart.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]cartItemPart, 0, len(items))
	for _, it := range items {
		out = append(out, cartItemPart{
			ID: it.ID, MovieID: it.MovieID, Title: it.Title, Showtime: it.Showtime, Date: it.Date,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}
