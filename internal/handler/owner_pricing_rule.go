package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
	"github.com/iliyamo/restaurant-table-reservation/internal/pricing"
	"github.com/iliyamo/restaurant-table-reservation/internal/repository"
)

// RuleHandler serves pricing rule management for restaurant owners.
// Rules are normally soft-disabled via isActive rather than deleted.
type RuleHandler struct {
	Restaurants *repository.RestaurantRepo
	Rules       *repository.PricingRuleRepo
}

// NewRuleHandler constructs a RuleHandler and panics on a nil dependency.
func NewRuleHandler(restaurants *repository.RestaurantRepo, rules *repository.PricingRuleRepo) *RuleHandler {
	if restaurants == nil || rules == nil {
		panic("nil repository passed to NewRuleHandler")
	}
	return &RuleHandler{Restaurants: restaurants, Rules: rules}
}

type ruleBody struct {
	TableID           *uint64 `json:"tableId"`
	CategoryID        *uint64 `json:"categoryId"`
	DayOfWeek         int     `json:"dayOfWeek"`
	StartTime         string  `json:"startTime"`
	EndTime           string  `json:"endTime"`
	AdjustmentPercent int     `json:"adjustmentPercent"`
	IsActive          *bool   `json:"isActive"`
}

// validate checks the fields shared by create and update.
func (b *ruleBody) validate() string {
	if b.DayOfWeek < 0 || b.DayOfWeek > 6 {
		return "dayOfWeek must be 0-6 (Sunday=0)"
	}
	if err := pricing.ValidateWindow(b.StartTime, b.EndTime); err != nil {
		return err.Error()
	}
	return ""
}

// ownership mirrors OwnerHandler.requireOwnership for rule routes.
func (h *RuleHandler) ownership(c echo.Context, restaurantID, userID uint64) bool {
	ownerID, err := h.Restaurants.OwnerID(c.Request().Context(), restaurantID)
	if err != nil {
		if errors.Is(err, repository.ErrRestaurantNotFound) {
			_ = c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant not found"})
		} else {
			c.Logger().Errorf("rules: ownership lookup failed: %v", err)
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

// List handles GET /v1/owner/restaurants/:id/pricing-rules.
func (h *RuleHandler) List(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	restaurantID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid restaurant id"})
	}
	if !h.ownership(c, restaurantID, userID) {
		return nil
	}
	rules, err := h.Rules.ListByRestaurant(c.Request().Context(), restaurantID)
	if err != nil {
		c.Logger().Errorf("rules: list failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load rules"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": rules})
}

// Create handles POST /v1/owner/restaurants/:id/pricing-rules.  New
// rules default to active unless the body says otherwise.
func (h *RuleHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	restaurantID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid restaurant id"})
	}
	if !h.ownership(c, restaurantID, userID) {
		return nil
	}
	var body ruleBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg := body.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	rule := &model.PricingRule{
		RestaurantID:      restaurantID,
		TableID:           body.TableID,
		CategoryID:        body.CategoryID,
		DayOfWeek:         body.DayOfWeek,
		StartTime:         body.StartTime,
		EndTime:           body.EndTime,
		AdjustmentPercent: body.AdjustmentPercent,
		IsActive:          true,
	}
	if body.IsActive != nil {
		rule.IsActive = *body.IsActive
	}
	if err := h.Rules.Create(c.Request().Context(), rule); err != nil {
		c.Logger().Errorf("rules: create failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create rule"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"rule": rule})
}

// Update handles PATCH /v1/owner/pricing-rules/:id.  The whole window
// and scope are replaced; isActive toggling is the usual way to retire
// a rule.
func (h *RuleHandler) Update(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ruleID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid rule id"})
	}
	rule, err := h.Rules.GetByID(c.Request().Context(), ruleID)
	if err != nil {
		if errors.Is(err, repository.ErrRuleNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "pricing rule not found"})
		}
		c.Logger().Errorf("rules: load failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if !h.ownership(c, rule.RestaurantID, userID) {
		return nil
	}
	var body ruleBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg := body.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	rule.TableID = body.TableID
	rule.CategoryID = body.CategoryID
	rule.DayOfWeek = body.DayOfWeek
	rule.StartTime = body.StartTime
	rule.EndTime = body.EndTime
	rule.AdjustmentPercent = body.AdjustmentPercent
	if body.IsActive != nil {
		rule.IsActive = *body.IsActive
	}
	if err := h.Rules.Update(c.Request().Context(), &rule); err != nil {
		if errors.Is(err, repository.ErrRuleNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "pricing rule not found"})
		}
		c.Logger().Errorf("rules: update failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update rule"})
	}
	return c.JSON(http.StatusOK, echo.Map{"rule": rule})
}

// Delete handles DELETE /v1/owner/pricing-rules/:id.
func (h *RuleHandler) Delete(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ruleID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid rule id"})
	}
	rule, err := h.Rules.GetByID(c.Request().Context(), ruleID)
	if err != nil {
		if errors.Is(err, repository.ErrRuleNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "pricing rule not found"})
		}
		c.Logger().Errorf("rules: load failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if !h.ownership(c, rule.RestaurantID, userID) {
		return nil
	}
	if err := h.Rules.Delete(c.Request().Context(), ruleID); err != nil {
		if errors.Is(err, repository.ErrRuleNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "pricing rule not found"})
		}
		c.Logger().Errorf("rules: delete failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete rule"})
	}
	return c.NoContent(http.StatusNoContent)
}
