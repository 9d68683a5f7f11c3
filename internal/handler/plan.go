package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/movielog/movielog/internal/repository"
	"github.com/movielog/movielog/internal/utils"
)

// PlanHandler serves the plan catalog, subscriptions and quota
// usage.  Quota reads here are display-only: they run outside any
// transaction, and a value read while a purchase is concurrently
// committing may be momentarily stale.  The authoritative check
// lives in the purchase transaction.
type PlanHandler struct {
	Plans         *repository.PlanRepo
	Subscriptions *repository.SubscriptionRepo
	Purchases     *repository.PurchaseRepo
}

// NewPlanHandler constructs a PlanHandler.  All dependencies must be non-nil.
func NewPlanHandler(plans *repository.PlanRepo, subs *repository.SubscriptionRepo, purchases *repository.PurchaseRepo) *PlanHandler {
	if plans == nil || subs == nil || purchases == nil {
		panic("nil repository passed to NewPlanHandler")
	}
	return &PlanHandler{Plans: plans, Subscriptions: subs, Purchases: purchases}
}

type planPart struct {
	ID         uint64  `json:"id"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	MovieLimit int     `json:"movie_limit"`
}

// ListPlans handles GET /v1/plans.  The catalog is immutable, so
// this response is a prime candidate for the redis response cache.
func (h *PlanHandler) ListPlans(c echo.Context) error {
	plans, err := h.Plans.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]planPart, 0, len(plans))
	for _, p := range plans {
		out = append(out, planPart{ID: p.ID, Name: p.Name, Price: p.Price, MovieLimit: p.MovieLimit})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// Subscribe handles POST /v1/plans/:id/subscribe.  It opens a new
// window [now, now + 1 calendar month], both bounds inclusive, with
// day-of-month overflow clamped (Jan 31 subscribes through the last
// day of February).  Subscribing never closes an earlier window;
// when windows overlap the newest row wins at resolution time.
func (h *PlanHandler) Subscribe(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	planID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid plan id"})
	}
	ctx := c.Request().Context()
	plan, err := h.Plans.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "plan not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	start := time.Now().UTC()
	end := utils.AddCalendarMonth(start)
	if _, err := h.Subscriptions.Create(ctx, userID, plan.ID, start, end); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "subscribe failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"plan":       planPart{ID: plan.ID, Name: plan.Name, Price: plan.Price, MovieLimit: plan.MovieLimit},
		"start_date": start.Format(time.RFC3339),
		"end_date":   end.Format(time.RFC3339),
	})
}

// GetUserPlan handles GET /v1/my-plan.  It returns the currently
// active subscription joined with its plan, or a null plan when no
// window contains now.
func (h *PlanHandler) GetUserPlan(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx := c.Request().Context()
	sub, err := h.Subscriptions.ActiveForUser(ctx, userID, time.Now().UTC())
	if err != nil {
		if errors.Is(err, repository.ErrNoActivePlan) {
			return c.JSON(http.StatusOK, echo.Map{"plan": nil})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	plan, err := h.Plans.GetByID(ctx, sub.PlanID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"plan":       planPart{ID: plan.ID, Name: plan.Name, Price: plan.Price, MovieLimit: plan.MovieLimit},
		"start_date": sub.StartDate.UTC().Format(time.RFC3339),
		"end_date":   sub.EndDate.UTC().Format(time.RFC3339),
	})
}

// GetLimitUsage handles GET /v1/limit-usage.  purchased counts only
// rows whose purchase_date falls inside the active window, bounds
// inclusive.  remaining is movie_limit - purchased and is
// deliberately not clamped at zero: a negative value is the
// over-quota signal shown to the user.  It never invalidates past
// purchases.
func (h *PlanHandler) GetLimitUsage(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx := c.Request().Context()
	now := time.Now().UTC()
	sub, err := h.Subscriptions.ActiveForUser(ctx, userID, now)
	if err != nil {
		if errors.Is(err, repository.ErrNoActivePlan) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "no active plan"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	plan, err := h.Plans.GetByID(ctx, sub.PlanID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	purchased, err := h.Purchases.CountInWindow(ctx, userID, sub.StartDate, sub.EndDate)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"movie_limit": plan.MovieLimit,
		"purchased":   purchased,
		"remaining":   plan.MovieLimit - purchased,
	})
}
