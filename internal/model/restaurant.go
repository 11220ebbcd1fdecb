package model

import "time"

// Restaurant represents a venue owned by a user.  A restaurant
// contains tables, menu items and pricing rules.  This struct
// corresponds to a row in the `restaurants` table.
//
// Fields:
//  ID        – primary key identifier.
//  OwnerID   – user ID of the restaurant owner.
//  Name      – display name of the restaurant.
//  Location  – free-form location string.
//  CreatedAt – timestamp when the restaurant was created.
//  UpdatedAt – timestamp of last update.
type Restaurant struct {
	ID        uint64    `json:"id"`        // restaurants.id
	OwnerID   uint64    `json:"-"`         // restaurants.owner_id (never exposed publicly)
	Name      string    `json:"name"`      // restaurants.name
	Location  string    `json:"location"`  // restaurants.location
	CreatedAt time.Time `json:"createdAt"` // restaurants.created_at
	UpdatedAt time.Time `json:"updatedAt"` // restaurants.updated_at
}
