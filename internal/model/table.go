package model

import "time"

// Table describes a physical table in a restaurant.  Tables are
// uniquely identified within a restaurant by their display number.
// Capacity records how many guests the table seats; party size is
// not enforced against it at booking time.
//
// Fields:
//  ID           – primary key identifier.
//  RestaurantID – restaurant to which this table belongs.
//  Number       – display number, unique per restaurant.
//  Capacity     – number of guests the table seats.
//  CreatedAt    – creation timestamp.
//  UpdatedAt    – last update timestamp.
type Table struct {
	ID           uint64    `json:"id"`           // tables.id
	RestaurantID uint64    `json:"restaurantId"` // tables.restaurant_id
	Number       uint32    `json:"number"`       // tables.number
	Capacity     uint32    `json:"capacity"`     // tables.capacity
	CreatedAt    time.Time `json:"createdAt"`    // tables.created_at
	UpdatedAt    time.Time `json:"updatedAt"`    // tables.updated_at
}
