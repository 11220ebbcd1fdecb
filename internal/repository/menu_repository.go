package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// MenuRepo provides data access to the menu_items table.  Prices are
// DECIMAL(10,2) columns scanned into decimal.Decimal.
type MenuRepo struct {
	db *sql.DB
}

// NewMenuRepo returns a new MenuRepo bound to the provided database.
func NewMenuRepo(db *sql.DB) *MenuRepo { return &MenuRepo{db: db} }

// Create inserts a menu item and populates the generated ID and
// timestamps on the provided model.
func (r *MenuRepo) Create(ctx context.Context, item *model.MenuItem) error {
	const q = `INSERT INTO menu_items (restaurant_id, name, description, price) VALUES (?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, q, item.RestaurantID, item.Name, item.Description, item.Price)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	item.ID = uint64(id)
	const sel = `SELECT created_at, updated_at FROM menu_items WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, item.ID).Scan(&item.CreatedAt, &item.UpdatedAt)
}

// ListByRestaurant returns a restaurant's menu ordered by item name.
func (r *MenuRepo) ListByRestaurant(ctx context.Context, restaurantID uint64) ([]model.MenuItem, error) {
	const q = `SELECT id, restaurant_id, name, description, price, created_at, updated_at
	           FROM menu_items WHERE restaurant_id = ? ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.MenuItem, 0)
	for rows.Next() {
		var item model.MenuItem
		if err := rows.Scan(&item.ID, &item.RestaurantID, &item.Name, &item.Description,
			&item.Price, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

// Price returns the base price of a menu item within a restaurant.
// It returns ErrMenuItemNotFound when the item does not exist or
// belongs to a different restaurant, so quote requests cannot price
// another restaurant's dishes.
func (r *MenuRepo) Price(ctx context.Context, menuItemID, restaurantID uint64) (decimal.Decimal, error) {
	const q = `SELECT price FROM menu_items WHERE id = ? AND restaurant_id = ?`
	var price decimal.Decimal
	err := r.db.QueryRowContext(ctx, q, menuItemID, restaurantID).Scan(&price)
	if errors.Is(err, sql.ErrNoRows) {
		return decimal.Decimal{}, ErrMenuItemNotFound
	}
	if err != nil {
		return decimal.Decimal{}, err
	}
	return price, nil
}
