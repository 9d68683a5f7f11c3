// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/movielog/movielog/internal/handler"
	"github.com/movielog/movielog/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication
// on the provided Echo instance.  Currently it exposes only a health
// check, usable by load balancers and monitoring.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes.
// Unauthenticated operations live under /v1/auth; the protected /v1
// group created here is returned so the caller can hang the ledger
// endpoints off it.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) *echo.Group {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	// Logout accepts either a bearer token or a refresh_token body,
	// so it stays outside the JWT middleware.
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
	return auth
}

// RegisterLedger registers every ledger operation on the protected
// group.  The principal for each call is the JWT subject injected by
// the auth middleware; no handler resolves users any other way.
func RegisterLedger(g *echo.Group, profile *handler.ProfileHandler, lib *handler.LibraryHandler, plans *handler.PlanHandler, cart *handler.CartHandler, purchase *handler.PurchaseHandler) {
	g.GET("/profile", profile.Get)
	g.PUT("/profile/image", profile.SetImage)

	g.POST("/favorites", lib.AddFavorite)
	g.DELETE("/favorites/:movie_id", lib.RemoveFavorite)
	g.GET("/favorites", lib.ListFavorites)

	g.POST("/watched", lib.AddWatched)
	g.DELETE("/watched/:movie_id", lib.RemoveWatched)
	g.GET("/watched", lib.ListWatched)

	g.PUT("/ratings", lib.UpsertRating)
	g.GET("/ratings/:movie_id", lib.GetRating)

	g.GET("/plans", plans.ListPlans)
	g.POST("/plans/:id/subscribe", plans.Subscribe)
	g.GET("/my-plan", plans.GetUserPlan)
	g.GET("/limit-usage", plans.GetLimitUsage)

	g.POST("/cart", cart.Add)
	g.DELETE("/cart/:id", cart.Remove)
	g.GET("/cart", cart.List)

	g.POST("/purchase", purchase.Purchase)
	g.GET("/my-movies", purchase.ListPurchased)
}

// RegisterCatalog registers the public movie-metadata proxy.  It is
// unauthenticated: browsing the catalog requires no account, only
// ledger mutations do.
func RegisterCatalog(e *echo.Echo, movies *handler.MovieHandler) {
	e.GET("/v1/movies/:id", movies.GetMovie)
}
