package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // Loads .env files into the environment
	"github.com/labstack/echo/v4" // Echo web framework
	"github.com/shopspring/decimal"

	"github.com/iliyamo/restaurant-table-reservation/internal/booking"
	"github.com/iliyamo/restaurant-table-reservation/internal/config" // Internal config loader
	"github.com/iliyamo/restaurant-table-reservation/internal/database"
	"github.com/iliyamo/restaurant-table-reservation/internal/handler"
	"github.com/iliyamo/restaurant-table-reservation/internal/middleware"
	"github.com/iliyamo/restaurant-table-reservation/internal/pricing"
	"github.com/iliyamo/restaurant-table-reservation/internal/queue"
	"github.com/iliyamo/restaurant-table-reservation/internal/repository"
	"github.com/iliyamo/restaurant-table-reservation/internal/router" // Internal router setup
)

func main() {
	_ = godotenv.Load() // Load .env when present; real env always wins

	// Prices serialize as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true

	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database open failed: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("database migrate failed: %v", err)
	}

	// Repositories over the shared pool.
	users := repository.NewUserRepo(db)
	restaurants := repository.NewRestaurantRepo(db)
	tables := repository.NewTableRepo(db)
	menus := repository.NewMenuRepo(db)
	rules := repository.NewPricingRuleRepo(db)
	reservations := repository.NewReservationRepo(db)

	// Core services: pricing resolution and reservation admission.
	resolver := pricing.NewResolver(rules)
	admitter := booking.NewAdmitter(reservations, nil)

	// Redis backs the rate limiter and the browse response cache.  A
	// nil client disables both; the API still serves without Redis.
	rdb := config.NewRedisClient()
	limit := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	e := echo.New() // Create Echo instance

	router.RegisterRoutes(e) // Health check and metrics
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users), cfg.JWTSecret)
	router.RegisterPublic(e,
		handler.NewQuoteHandler(resolver, menus, nil),
		handler.NewReservationHandler(admitter, reservations),
		handler.NewPublicHandler(restaurants, tables, menus),
		limit, cache)
	router.RegisterOwner(e,
		handler.NewOwnerHandler(restaurants, tables, menus, reservations),
		handler.NewRuleHandler(restaurants, rules),
		cfg.JWTSecret)

	// Background consumer writes confirmed reservations to the audit log.
	go func() {
		if err := queue.StartReservationConsumer(); err != nil {
			log.Printf("reservation consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
