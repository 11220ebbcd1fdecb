package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// MenuItem is a dish or drink offered by a restaurant.  Its price is
// the base price that the pricing resolver adjusts; prices are stored
// as DECIMAL(10,2) and carried as decimal.Decimal to avoid float
// rounding drift.
//
// Fields:
//  ID           – primary key identifier.
//  RestaurantID – owning restaurant.
//  Name         – item name.
//  Description  – optional description shown to guests.
//  Price        – base price before adjustment.
//  CreatedAt    – creation timestamp.
//  UpdatedAt    – last update timestamp.
type MenuItem struct {
	ID           uint64          `json:"id"`                    // menu_items.id
	RestaurantID uint64          `json:"restaurantId"`          // menu_items.restaurant_id
	Name         string          `json:"name"`                  // menu_items.name
	Description  string          `json:"description,omitempty"` // menu_items.description
	Price        decimal.Decimal `json:"price"`                 // menu_items.price
	CreatedAt    time.Time       `json:"createdAt"`             // menu_items.created_at
	UpdatedAt    time.Time       `json:"updatedAt"`             // menu_items.updated_at
}
