package model

import "time"

// PricingRule describes a time-of-day/day-of-week price adjustment.
// A rule applies restaurant-wide unless TableID is set, in which case
// it targets a single table.  CategoryID optionally scopes the rule
// to a menu category; the resolver does not consult it.  The window
// [StartTime, EndTime) is half-open and uses wall-clock "HH:MM"
// strings, which compare correctly as plain strings because both
// components are zero-padded.  Rules never wrap across midnight.
//
// Fields:
//  ID                – primary key identifier.
//  RestaurantID      – owning restaurant.
//  TableID           – optional table scope (nil = restaurant-wide).
//  CategoryID        – optional menu-category scope (informational).
//  DayOfWeek         – 0–6, Sunday = 0.
//  StartTime,EndTime – "HH:MM" window bounds, start < end.
//  AdjustmentPercent – signed percentage; negative = discount.
//  IsActive          – inactive rules are never matched.
//  CreatedAt         – creation timestamp.
//  UpdatedAt         – last update timestamp.
type PricingRule struct {
	ID                uint64    `json:"id"`                   // pricing_rules.id
	RestaurantID      uint64    `json:"restaurantId"`         // pricing_rules.restaurant_id
	TableID           *uint64   `json:"tableId,omitempty"`    // pricing_rules.table_id (nullable)
	CategoryID        *uint64   `json:"categoryId,omitempty"` // pricing_rules.category_id (nullable)
	DayOfWeek         int       `json:"dayOfWeek"`            // pricing_rules.day_of_week
	StartTime         string    `json:"startTime"`            // pricing_rules.start_time
	EndTime           string    `json:"endTime"`              // pricing_rules.end_time
	AdjustmentPercent int       `json:"adjustmentPercent"`    // pricing_rules.adjustment_percent
	IsActive          bool      `json:"isActive"`             // pricing_rules.is_active
	CreatedAt         time.Time `json:"createdAt"`            // pricing_rules.created_at
	UpdatedAt         time.Time `json:"updatedAt"`            // pricing_rules.updated_at
}
