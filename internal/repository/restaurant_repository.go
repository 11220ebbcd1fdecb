package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// RestaurantRepo provides CRUD operations for restaurants.  A
// restaurant belongs to exactly one owner; ownership checks for
// dependent resources (tables, menu items, pricing rules) go through
// OwnerID lookups here.
type RestaurantRepo struct {
	db *sql.DB
}

// NewRestaurantRepo returns a new RestaurantRepo bound to the given database.
func NewRestaurantRepo(db *sql.DB) *RestaurantRepo { return &RestaurantRepo{db: db} }

// Create inserts a restaurant and populates the generated ID and
// timestamps on the provided model.
func (r *RestaurantRepo) Create(ctx context.Context, rest *model.Restaurant) error {
	const q = `INSERT INTO restaurants (owner_id, name, location) VALUES (?, ?, ?)`
	result, err := r.db.ExecContext(ctx, q, rest.OwnerID, rest.Name, rest.Location)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	rest.ID = uint64(id)
	const sel = `SELECT created_at, updated_at FROM restaurants WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, rest.ID).Scan(&rest.CreatedAt, &rest.UpdatedAt)
}

// List returns all restaurants ordered by ID.  Used by the public
// browse endpoint; owner IDs are stripped at the JSON layer.
func (r *RestaurantRepo) List(ctx context.Context) ([]model.Restaurant, error) {
	const q = `SELECT id, owner_id, name, location, created_at, updated_at
	           FROM restaurants ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Restaurant, 0)
	for rows.Next() {
		var rest model.Restaurant
		if err := rows.Scan(&rest.ID, &rest.OwnerID, &rest.Name, &rest.Location,
			&rest.CreatedAt, &rest.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, rest)
	}
	return out, rows.Err()
}

// OwnerID returns the owner of a restaurant.  It returns
// ErrRestaurantNotFound when no such restaurant exists.
func (r *RestaurantRepo) OwnerID(ctx context.Context, restaurantID uint64) (uint64, error) {
	const q = `SELECT owner_id FROM restaurants WHERE id = ?`
	var ownerID uint64
	err := r.db.QueryRowContext(ctx, q, restaurantID).Scan(&ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrRestaurantNotFound
	}
	if err != nil {
		return 0, err
	}
	return ownerID, nil
}
