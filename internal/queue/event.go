// Package queue defines message payloads exchanged over the message broker.
package queue

// ReservationConfirmedEvent is published when a reservation is successfully
// admitted.  It contains enough information for downstream consumers to log,
// notify, or trigger analytics without querying the primary database.
type ReservationConfirmedEvent struct {
	ReservationID uint64 `json:"reservationId"`
	RestaurantID  uint64 `json:"restaurantId"`
	TableID       uint64 `json:"tableId"`
	CustomerName  string `json:"customerName"`
	PartySize     int    `json:"partySize"`
	StartsAt      string `json:"startsAt"`
	EndsAt        string `json:"endsAt"`
	IsPrepaid     bool   `json:"isPrepaid"`
	PrepaidAmount string `json:"prepaidAmount,omitempty"`
	ConfirmedAt   string `json:"confirmedAt"`
}
