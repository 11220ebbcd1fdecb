package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatusConfirmed is the only reservation status this service ever
// writes.  Cancellation and rescheduling are external operations.
const StatusConfirmed = "confirmed"

// Reservation records a guest's booking of a table for a time window.
// For a fixed table no two reservations may have overlapping
// [StartsAt, EndsAt) intervals; the reservation repository enforces
// this atomically at insert time.  Reservations are never mutated
// after creation.
//
// Fields:
//  ID            – primary key identifier.
//  RestaurantID  – restaurant being booked.
//  TableID       – table being booked.
//  CustomerName  – name the booking is held under.
//  PartySize     – number of guests (>= 1).
//  StartsAt      – start of the window, UTC.
//  EndsAt        – end of the window, UTC; always after StartsAt.
//  Status        – reservation state; always "confirmed" here.
//  IsPrepaid     – whether the guest prepaid.
//  PrepaidAmount – amount prepaid; only meaningful when IsPrepaid.
//  CreatedAt     – creation timestamp.
type Reservation struct {
	ID            uint64              `json:"id"`            // reservations.id
	RestaurantID  uint64              `json:"restaurantId"`  // reservations.restaurant_id
	TableID       uint64              `json:"tableId"`       // reservations.table_id
	CustomerName  string              `json:"customerName"`  // reservations.customer_name
	PartySize     int                 `json:"partySize"`     // reservations.party_size
	StartsAt      time.Time           `json:"startsAt"`      // reservations.starts_at
	EndsAt        time.Time           `json:"endsAt"`        // reservations.ends_at
	Status        string              `json:"status"`        // reservations.status
	IsPrepaid     bool                `json:"isPrepaid"`     // reservations.is_prepaid
	PrepaidAmount decimal.NullDecimal `json:"prepaidAmount"` // reservations.prepaid_amount (nullable)
	CreatedAt     time.Time           `json:"createdAt"`     // reservations.created_at
}
