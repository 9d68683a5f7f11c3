package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/movielog/movielog/internal/catalog"
	"github.com/movielog/movielog/internal/config"
	"github.com/movielog/movielog/internal/database"
	"github.com/movielog/movielog/internal/handler"
	"github.com/movielog/movielog/internal/middleware"
	"github.com/movielog/movielog/internal/queue"
	"github.com/movielog/movielog/internal/repository"
	"github.com/movielog/movielog/internal/router"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.Migrate(ctx, db); err != nil {
		cancel()
		log.Fatalf("migrate: %v", err)
	}
	if err := database.SeedPlans(ctx, db); err != nil {
		cancel()
		log.Fatalf("seed plans: %v", err)
	}
	cancel()

	// Redis is optional: a nil client disables the response cache,
	// rate limiting and the shared metadata cache.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; cache and rate limiting disabled")
	}

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	plans := repository.NewPlanRepo(db)
	subs := repository.NewSubscriptionRepo(db)
	cart := repository.NewCartRepo(db)
	purchases := repository.NewPurchaseRepo(db)
	favorites := repository.NewFavoriteRepo(db)
	watched := repository.NewWatchedRepo(db)
	ratings := repository.NewRatingRepo(db)

	cat := catalog.New(cfg.TMDBAPIKey, cfg.TMDBBaseURL, rdb, 10*time.Minute)

	authHandler := handler.NewAuthHandler(cfg, users, tokens)
	profileHandler := handler.NewProfileHandler(users)
	libraryHandler := handler.NewLibraryHandler(favorites, watched, ratings)
	planHandler := handler.NewPlanHandler(plans, subs, purchases)
	cartHandler := handler.NewCartHandler(cart)
	purchaseHandler := handler.NewPurchaseHandler(subs, plans, cart, purchases)
	purchaseHandler.PublishEvents = true
	movieHandler := handler.NewMovieHandler(cat)

	e := echo.New()
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	e.Use(middleware.NewRedisCache(config.LoadCacheConfig(), rdb))

	router.RegisterRoutes(e)
	protected := router.RegisterAuth(e, authHandler, cfg.JWTSecret)
	router.RegisterLedger(protected, profileHandler, libraryHandler, planHandler, cartHandler, purchaseHandler)
	router.RegisterCatalog(e, movieHandler)

	// Background consumer mirrors committed purchases into a log
	// file.  It reconnects forever on broker failures.
	go func() {
		if err := queue.StartPurchaseConsumer(); err != nil {
			log.Printf("purchase consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
