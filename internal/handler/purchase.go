package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/movielog/movielog/internal/queue"
	"github.com/movielog/movielog/internal/repository"
	queue_publisher "github.com/movielog/movielog/internal/service"
)

// PurchaseHandler converts a user's cart into permanent purchase
// records under the plan's monthly quota.  The whole check-then-
// commit sequence runs inside one database transaction that starts
// by locking the user row: concurrent purchases for the same user
// serialize there, so the quota can never be overcommitted, while
// different users never contend.  The metadata provider is never
// called on this path.
type PurchaseHandler struct {
	Subscriptions *repository.SubscriptionRepo
	Plans         *repository.PlanRepo
	Cart          *repository.CartRepo
	Purchases     *repository.PurchaseRepo
	PublishEvents bool // disabled in tests and when no broker is configured
}

// NewPurchaseHandler constructs a PurchaseHandler.  All repositories
// must be non-nil.
func NewPurchaseHandler(subs *repository.SubscriptionRepo, plans *repository.PlanRepo, cart *repository.CartRepo, purchases *repository.PurchaseRepo) *PurchaseHandler {
	if subs == nil || plans == nil || cart == nil || purchases == nil {
		panic("nil repository passed to NewPurchaseHandler")
	}
	return &PurchaseHandler{Subscriptions: subs, Plans: plans, Cart: cart, Purchases: purchases}
}

// Purchase handles POST /v1/purchase.
//
// Inside the transaction: lock the user row, resolve the active
// subscription window, count purchases already inside that window,
// count the cart, then either reject (quota exceeded, empty cart)
// or copy every cart row into purchased_movies with purchase_date =
// now and drain the cart.  Either the full batch commits or nothing
// does; no observer ever sees a ticket in both tables or in
// neither.
//
// Quota is consumed at purchase time, not at the ticket's session
// date: a ticket for a showing next month bought today counts
// against today's window.
func (h *PurchaseHandler) Purchase(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx := c.Request().Context()
	now := time.Now().UTC()

	tx, err := h.Purchases.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// Per-user mutual exclusion for the rest of the transaction.
	if err := h.Purchases.LockUserTx(ctx, tx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	sub, err := h.Subscriptions.ActiveForUserTx(ctx, tx, userID, now)
	if err != nil {
		if errors.Is(err, repository.ErrNoActivePlan) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "no active plan"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	plan, err := h.Plans.GetByIDTx(ctx, tx, sub.PlanID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	purchased, err := h.Purchases.CountInWindowTx(ctx, tx, userID, sub.StartDate, sub.EndDate)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	items, err := h.Cart.ListByUserTx(ctx, tx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	// Existing plus pending: a cart that alone would fit may still
	// be rejected on top of prior purchases in the same window.
	if err := repository.CheckQuota(purchased, len(items), plan.MovieLimit); err != nil {
		if errors.Is(err, repository.ErrQuotaExceeded) {
			return c.JSON(http.StatusConflict, echo.Map{
				"error":       err.Error(),
				"movie_limit": plan.MovieLimit,
				"purchased":   purchased,
				"cart_count":  len(items),
			})
		}
		if errors.Is(err, repository.ErrEmptyCart) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	if err := h.Purchases.CreateBulkTx(ctx, tx, items, now); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to record purchase"})
	}
	if _, err := h.Cart.DeleteAllByUserTx(ctx, tx, userID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to clear cart"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true

	if h.PublishEvents {
		ev := queue.PurchaseCompletedEvent{
			UserID:      userID,
			Count:       len(items),
			PurchasedAt: now.Format(time.RFC3339),
		}
		for _, it := range items {
			ev.Tickets = append(ev.Tickets, queue.PurchasedTicket{
				MovieID: it.MovieID, Title: it.Title, Showtime: it.Showtime, Date: it.Date,
			})
		}
		// Post-commit and best effort; a broker outage must not fail
		// an already-recorded purchase.
		go func() {
			pctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = queue_publisher.PublishPurchaseCompleted(pctx, ev)
		}()
	}

	return c.JSON(http.StatusCreated, echo.Map{"purchased": len(items)})
}

// ListPurchased handles GET /v1/my-movies, returning the user's
// permanent purchase history.
func (h *PurchaseHandler) ListPurchased(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	records, err := h.Purchases.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	type purchasePart struct {
		ID           uint64 `json:"id"`
		MovieID      uint64 `json:"movie_id"`
		Title        string `json:"title"`
		Showtime     string `json:"showtime"`
		Date         string `json:"date"`
		PurchaseDate string `json:"purchase_date"`
	}
	out := make([]purchasePart, 0, len(records))
	for _, p := range records {
		out = append(out, purchasePart{
			ID:           p.ID,
			MovieID:      p.MovieID,
			Title:        p.Title,
			Showtime:     p.Showtime,
			Date:         p.Date,
			PurchaseDate: p.PurchaseDate.UTC().Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}
