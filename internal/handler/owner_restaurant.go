package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
	"github.com/iliyamo/restaurant-table-reservation/internal/repository"
)

// OwnerHandler bundles repositories for owners to manage their
// restaurants, tables and menus and to review incoming reservations.
// All routes behind it require an authenticated OWNER; per-restaurant
// ownership is re-checked here because the role alone does not grant
// access to someone else's restaurant.
type OwnerHandler struct {
	Restaurants  *repository.RestaurantRepo
	Tables       *repository.TableRepo
	Menus        *repository.MenuRepo
	Reservations *repository.ReservationRepo
}

// NewOwnerHandler constructs a new OwnerHandler and panics if any dependency is nil.
func NewOwnerHandler(restaurants *repository.RestaurantRepo, tables *repository.TableRepo, menus *repository.MenuRepo, reservations *repository.ReservationRepo) *OwnerHandler {
	if restaurants == nil || tables == nil || menus == nil || reservations == nil {
		panic("nil repository passed to NewOwnerHandler")
	}
	return &OwnerHandler{
		Restaurants:  restaurants,
		Tables:       tables,
		Menus:        menus,
		Reservations: reservations,
	}
}

// requireOwnership verifies that the restaurant exists and belongs to
// the caller.  It writes the error response itself and reports whether
// the caller may proceed.
func (h *OwnerHandler) requireOwnership(c echo.Context, restaurantID, userID uint64) bool {
	ownerID, err := h.Restaurants.OwnerID(c.Request().Context(), restaurantID)
	if err != nil {
		if errors.Is(err, repository.ErrRestaurantNotFound) {
			_ = c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant not found"})
		} else {
			c.Logger().Errorf("owner: ownership lookup failed: %v", err)
			_ = c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
		return false
	}
	if ownerID != userID {
		_ = c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		return false
	}
	return true
}

// CreateRestaurant handles POST /v1/owner/restaurants.
func (h *OwnerHandler) CreateRestaurant(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body struct {
		Name     string `json:"name"`
		Location string `json:"location"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	body.Name = strings.TrimSpace(body.Name)
	if body.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	rest := &model.Restaurant{OwnerID: userID, Name: body.Name, Location: strings.TrimSpace(body.Location)}
	if err := h.Restaurants.Create(c.Request().Context(), rest); err != nil {
		c.Logger().Errorf("owner: create restaurant failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create restaurant"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"restaurant": rest})
}

// CreateTable handles POST /v1/owner/restaurants/:id/tables.  Table
// numbers are unique per restaurant; duplicates return 409.
func (h *OwnerHandler) CreateTable(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	restaurantID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid restaurant id"})
	}
	if !h.requireOwnership(c, restaurantID, userID) {
		return nil
	}
	var body struct {
		Number   uint32 `json:"number"`
		Capacity uint32 `json:"capacity"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Number == 0 || body.Capacity == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "number and capacity must be positive"})
	}
	t := &model.Table{RestaurantID: restaurantID, Number: body.Number, Capacity: body.Capacity}
	if err := h.Tables.Create(c.Request().Context(), t); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "table number already in use"})
		}
		c.Logger().Errorf("owner: create table failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create table"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"table": t})
}

// CreateMenuItem handles POST /v1/owner/restaurants/:id/menu.
func (h *OwnerHandler) CreateMenuItem(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	restaurantID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid restaurant id"})
	}
	if !h.requireOwnership(c, restaurantID, userID) {
		return nil
	}
	var body struct {
		Name        string          `json:"name"`
		Description string          `json:"description"`
		Price       decimal.Decimal `json:"price"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	body.Name = strings.TrimSpace(body.Name)
	if body.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	if body.Price.IsNegative() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "price must not be negative"})
	}
	item := &model.MenuItem{
		RestaurantID: restaurantID,
		Name:         body.Name,
		Description:  strings.TrimSpace(body.Description),
		Price:        body.Price,
	}
	if err := h.Menus.Create(c.Request().Context(), item); err != nil {
		c.Logger().Errorf("owner: create menu item failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create menu item"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"item": item})
}

// ListReservations handles GET /v1/owner/restaurants/:id/reservations.
// It returns every reservation of the restaurant, newest window first.
func (h *OwnerHandler) ListReservations(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	restaurantID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid restaurant id"})
	}
	if !h.requireOwnership(c, restaurantID, userID) {
		return nil
	}
	items, err := h.Reservations.ListByRestaurant(c.Request().Context(), restaurantID)
	if err != nil {
		c.Logger().Errorf("owner: list reservations failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reservations"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}
