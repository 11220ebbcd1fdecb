// Package handler exposes HTTP handlers for both authenticated and public
// endpoints.  This file defines the public browsing API: unauthenticated
// guests can list restaurants, a restaurant's tables and its menu before
// asking for a quote or submitting a reservation.  Owner-only fields are
// filtered from responses.
package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/iliyamo/restaurant-table-reservation/internal/repository"
)

// PublicHandler aggregates repositories needed for unauthenticated browsing.
type PublicHandler struct {
	Restaurants *repository.RestaurantRepo
	Tables      *repository.TableRepo
	Menus       *repository.MenuRepo
}

// NewPublicHandler constructs a PublicHandler and panics on a nil dependency.
func NewPublicHandler(restaurants *repository.RestaurantRepo, tables *repository.TableRepo, menus *repository.MenuRepo) *PublicHandler {
	if restaurants == nil || tables == nil || menus == nil {
		panic("nil repository passed to NewPublicHandler")
	}
	return &PublicHandler{Restaurants: restaurants, Tables: tables, Menus: menus}
}

// PublicRestaurant is a restaurant exposed via the public API.  It
// contains only safe fields.
type PublicRestaurant struct {
	ID       uint64 `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
}

// PublicTable is a table exposed via the public API.
type PublicTable struct {
	ID       uint64 `json:"id"`
	Number   uint32 `json:"number"`
	Capacity uint32 `json:"capacity"`
}

// PublicMenuItem is a menu item exposed via the public API.
type PublicMenuItem struct {
	ID          uint64          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
}

// ListRestaurants handles GET /v1/restaurants.
func (h *PublicHandler) ListRestaurants(c echo.Context) error {
	items, err := h.Restaurants.List(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("public: list restaurants failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load restaurants"})
	}
	out := make([]PublicRestaurant, 0, len(items))
	for _, r := range items {
		out = append(out, PublicRestaurant{ID: r.ID, Name: r.Name, Location: r.Location})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// ListTables handles GET /v1/restaurants/:id/tables.
func (h *PublicHandler) ListTables(c echo.Context) error {
	restaurantID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid restaurant id"})
	}
	tables, err := h.Tables.ListByRestaurant(c.Request().Context(), restaurantID)
	if err != nil {
		c.Logger().Errorf("public: list tables failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load tables"})
	}
	out := make([]PublicTable, 0, len(tables))
	for _, t := range tables {
		out = append(out, PublicTable{ID: t.ID, Number: t.Number, Capacity: t.Capacity})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// ListMenu handles GET /v1/restaurants/:id/menu.
func (h *PublicHandler) ListMenu(c echo.Context) error {
	restaurantID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid restaurant id"})
	}
	items, err := h.Menus.ListByRestaurant(c.Request().Context(), restaurantID)
	if err != nil {
		c.Logger().Errorf("public: list menu failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load menu"})
	}
	out := make([]PublicMenuItem, 0, len(items))
	for _, m := range items {
		out = append(out, PublicMenuItem{ID: m.ID, Name: m.Name, Description: m.Description, Price: m.Price})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}
