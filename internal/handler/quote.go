package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/iliyamo/restaurant-table-reservation/internal/monitoring"
	"github.com/iliyamo/restaurant-table-reservation/internal/pricing"
	"github.com/iliyamo/restaurant-table-reservation/internal/repository"
)

// QuoteHandler serves price quotes.  A quote is read-only: it resolves
// the applicable adjustment percentage for the requested moment and
// applies it to a base price taken either directly from the request or
// from a menu item.  The clock is injected so quote behaviour is
// deterministic under test.
type QuoteHandler struct {
	Resolver *pricing.Resolver
	Menus    *repository.MenuRepo
	Now      func() time.Time
}

// NewQuoteHandler constructs a QuoteHandler.  All dependencies must be
// non-nil; a nil clock defaults to UTC time.Now.
func NewQuoteHandler(resolver *pricing.Resolver, menus *repository.MenuRepo, now func() time.Time) *QuoteHandler {
	if resolver == nil || menus == nil {
		panic("nil dependency passed to NewQuoteHandler")
	}
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &QuoteHandler{Resolver: resolver, Menus: menus, Now: now}
}

type quoteReq struct {
	RestaurantID uint64           `json:"restaurantId"`
	TableID      *uint64          `json:"tableId"`
	MenuItemID   *uint64          `json:"menuId"`
	BasePrice    *decimal.Decimal `json:"basePrice"`
	WhenISO      string           `json:"whenISO"`
}

type quoteResp struct {
	BasePrice         decimal.Decimal `json:"basePrice"`
	AdjustmentPercent int             `json:"adjustmentPercent"`
	FinalPrice        decimal.Decimal `json:"finalPrice"`
	At                string          `json:"at"`
}

// Quote handles POST /v1/quote.  The body must name a restaurant and
// supply a base price either inline (basePrice) or by menu item
// (menuId); whenISO defaults to now.  It responds 200 with the quote,
// 400 on a malformed body, 404 when the referenced menu item does not
// exist and 500 on a storage failure.
func (h *QuoteHandler) Quote(c echo.Context) error {
	var req quoteReq
	if err := c.Bind(&req); err != nil {
		monitoring.QuoteHandled("bad_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.RestaurantID == 0 {
		monitoring.QuoteHandled("bad_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "restaurantId is required"})
	}
	if req.BasePrice == nil && req.MenuItemID == nil {
		monitoring.QuoteHandled("bad_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "basePrice or menuId is required"})
	}

	when := h.Now().UTC()
	if req.WhenISO != "" {
		t, err := time.Parse(time.RFC3339, req.WhenISO)
		if err != nil {
			monitoring.QuoteHandled("bad_request")
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "whenISO must be RFC 3339"})
		}
		when = t.UTC()
	}

	ctx := c.Request().Context()
	start := time.Now()

	basePrice := decimal.Decimal{}
	if req.BasePrice != nil {
		basePrice = *req.BasePrice
	} else {
		p, err := h.Menus.Price(ctx, *req.MenuItemID, req.RestaurantID)
		if err != nil {
			if errors.Is(err, repository.ErrMenuItemNotFound) {
				monitoring.QuoteHandled("not_found")
				return c.JSON(http.StatusNotFound, echo.Map{"error": "menu item not found"})
			}
			c.Logger().Errorf("quote: menu price lookup failed: %v", err)
			monitoring.QuoteHandled("error")
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load menu price"})
		}
		basePrice = p
	}
	if basePrice.IsNegative() {
		monitoring.QuoteHandled("bad_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "basePrice must not be negative"})
	}

	percent, err := h.Resolver.ResolveAdjustment(ctx, req.RestaurantID, req.TableID, when)
	if err != nil {
		c.Logger().Errorf("quote: resolve adjustment failed: %v", err)
		monitoring.QuoteHandled("error")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to resolve pricing"})
	}

	monitoring.QuoteHandled("ok")
	monitoring.QuoteDuration(time.Since(start))
	return c.JSON(http.StatusOK, quoteResp{
		BasePrice:         basePrice,
		AdjustmentPercent: percent,
		FinalPrice:        pricing.ApplyAdjustment(basePrice, percent),
		At:                when.Format(time.RFC3339),
	})
}
