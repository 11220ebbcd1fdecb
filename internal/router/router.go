package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/iliyamo/restaurant-table-reservation/internal/handler"    // import the handlers that implement business logic
	"github.com/iliyamo/restaurant-table-reservation/internal/middleware" // import middleware for JWT authentication and role enforcement
	"github.com/iliyamo/restaurant-table-reservation/internal/monitoring" // Prometheus scrape endpoint
)

// RegisterRoutes registers operational routes on the provided Echo
// instance: the health check used by load balancers and the Prometheus
// scrape endpoint.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
	e.GET("/metrics", monitoring.Handler())
}

// RegisterAuth registers all authentication-related routes and applies
// the necessary middleware.  Unauthenticated operations live under
// /v1/auth, while protected endpoints live under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	// Register and login do not require an existing session.
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)

	// Everything on this group runs JWTAuth before the handler.  Both
	// roles may read their own profile.
	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole("OWNER", "CUSTOMER"))
	auth.GET("/me", a.Me)
}

// RegisterPublic registers the unauthenticated guest surface: price
// quotes, reservation admission and the browse endpoints.  Guests book
// without an account, so none of these routes carry JWT middleware;
// instead they are rate limited, and the read-only browse endpoints sit
// behind the Redis response cache.
func RegisterPublic(e *echo.Echo, q *handler.QuoteHandler, r *handler.ReservationHandler, p *handler.PublicHandler, limit, cache echo.MiddlewareFunc) {
	e.POST("/v1/quote", q.Quote, limit)
	e.POST("/v1/reservations", r.Create, limit)

	// Browse endpoints return sanitized data only; quotes and
	// reservations are never cached.
	e.GET("/v1/restaurants", p.ListRestaurants, limit, cache)
	e.GET("/v1/restaurants/:id/tables", p.ListTables, limit, cache)
	e.GET("/v1/restaurants/:id/menu", p.ListMenu, limit, cache)
}

// RegisterOwner registers the owner management surface under /v1/owner.
// Every route requires a valid access token with the OWNER role; each
// handler additionally verifies that the caller owns the restaurant it
// is touching.
func RegisterOwner(e *echo.Echo, o *handler.OwnerHandler, rules *handler.RuleHandler, jwtSecret string) {
	g := e.Group("/v1/owner")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole("OWNER"))

	g.POST("/restaurants", o.CreateRestaurant)
	g.POST("/restaurants/:id/tables", o.CreateTable)
	g.POST("/restaurants/:id/menu", o.CreateMenuItem)
	g.GET("/restaurants/:id/reservations", o.ListReservations)

	g.GET("/restaurants/:id/pricing-rules", rules.List)
	g.POST("/restaurants/:id/pricing-rules", rules.Create)
	g.PATCH("/pricing-rules/:id", rules.Update)
	g.DELETE("/pricing-rules/:id", rules.Delete)
}
