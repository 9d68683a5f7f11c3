package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/movielog/movielog/internal/repository"
)

// ProfileHandler exposes the authenticated user's profile and
// profile-image reference.  Images themselves live outside the
// ledger; only a reference string (URL or storage key) is kept on
// the user row.
type ProfileHandler struct {
	Users *repository.UserRepo
}

// NewProfileHandler constructs a ProfileHandler.
func NewProfileHandler(users *repository.UserRepo) *ProfileHandler {
	if users == nil {
		panic("nil repository passed to NewProfileHandler")
	}
	return &ProfileHandler{Users: users}
}

// Get handles GET /v1/profile.
func (h *ProfileHandler) Get(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	u, err := h.Users.GetByID(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"id":            u.ID,
		"username":      u.Username,
		"profile_image": u.ProfileImage,
	})
}

// SetImage handles PUT /v1/profile/image.  The body carries the new
// image reference; an empty value is rejected.
func (h *ProfileHandler) SetImage(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body struct {
		Image string `json:"image"`
	}
	if err := c.Bind(&body); err != nil || strings.TrimSpace(body.Image) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "image is required"})
	}
	if err := h.Users.SetProfileImage(c.Request().Context(), userID, strings.TrimSpace(body.Image)); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.NoContent(http.StatusNoContent)
}
