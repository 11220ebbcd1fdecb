package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// PricingRuleRepo provides data access to the pricing_rules table.
// The resolver reads rules through ActiveRules; owners manage them
// through the CRUD methods.  Rules are soft-disabled via is_active in
// most flows rather than deleted, so historical quotes stay
// explainable.
type PricingRuleRepo struct {
	db *sql.DB
}

// NewPricingRuleRepo returns a new PricingRuleRepo bound to the given database.
func NewPricingRuleRepo(db *sql.DB) *PricingRuleRepo { return &PricingRuleRepo{db: db} }

const ruleColumns = `id, restaurant_id, table_id, category_id, day_of_week,
	start_time, end_time, adjustment_percent, is_active, created_at, updated_at`

func scanRule(scan func(dest ...interface{}) error) (model.PricingRule, error) {
	var rule model.PricingRule
	var tableID, categoryID sql.NullInt64
	err := scan(&rule.ID, &rule.RestaurantID, &tableID, &categoryID, &rule.DayOfWeek,
		&rule.StartTime, &rule.EndTime, &rule.AdjustmentPercent, &rule.IsActive,
		&rule.CreatedAt, &rule.UpdatedAt)
	if err != nil {
		return rule, err
	}
	if tableID.Valid {
		id := uint64(tableID.Int64)
		rule.TableID = &id
	}
	if categoryID.Valid {
		id := uint64(categoryID.Int64)
		rule.CategoryID = &id
	}
	return rule, nil
}

// ActiveRules returns every active rule for the restaurant on the
// given day of week (0 = Sunday).  Time-window filtering happens in
// the pricing resolver, not here, so the query stays index-friendly.
func (r *PricingRuleRepo) ActiveRules(ctx context.Context, restaurantID uint64, dayOfWeek int) ([]model.PricingRule, error) {
	const q = `SELECT ` + ruleColumns + `
	           FROM pricing_rules
	           WHERE restaurant_id = ? AND day_of_week = ? AND is_active = 1`
	rows, err := r.db.QueryContext(ctx, q, restaurantID, dayOfWeek)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.PricingRule, 0)
	for rows.Next() {
		rule, err := scanRule(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, rule)
	}
	return out, rows.Err()
}

// ListByRestaurant returns all rules of a restaurant, active or not,
// ordered by day of week then start time.  Used by owner management
// screens.
func (r *PricingRuleRepo) ListByRestaurant(ctx context.Context, restaurantID uint64) ([]model.PricingRule, error) {
	const q = `SELECT ` + ruleColumns + `
	           FROM pricing_rules
	           WHERE restaurant_id = ?
	           ORDER BY day_of_week, start_time`
	rows, err := r.db.QueryContext(ctx, q, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.PricingRule, 0)
	for rows.Next() {
		rule, err := scanRule(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, rule)
	}
	return out, rows.Err()
}

// GetByID fetches a single rule.  It returns ErrRuleNotFound when the
// rule does not exist.
func (r *PricingRuleRepo) GetByID(ctx context.Context, ruleID uint64) (model.PricingRule, error) {
	const q = `SELECT ` + ruleColumns + ` FROM pricing_rules WHERE id = ?`
	rule, err := scanRule(r.db.QueryRowContext(ctx, q, ruleID).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return rule, ErrRuleNotFound
	}
	return rule, err
}

// Create inserts a rule and populates the generated ID and timestamps.
func (r *PricingRuleRepo) Create(ctx context.Context, rule *model.PricingRule) error {
	const q = `INSERT INTO pricing_rules
	           (restaurant_id, table_id, category_id, day_of_week, start_time, end_time, adjustment_percent, is_active)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, q,
		rule.RestaurantID, nullableID(rule.TableID), nullableID(rule.CategoryID),
		rule.DayOfWeek, rule.StartTime, rule.EndTime, rule.AdjustmentPercent, rule.IsActive)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	rule.ID = uint64(id)
	const sel = `SELECT created_at, updated_at FROM pricing_rules WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, rule.ID).Scan(&rule.CreatedAt, &rule.UpdatedAt)
}

// Update persists changes to a rule's window, scope, adjustment and
// active flag.  The rule's restaurant never changes.
func (r *PricingRuleRepo) Update(ctx context.Context, rule *model.PricingRule) error {
	const q = `UPDATE pricing_rules
	           SET table_id = ?, category_id = ?, day_of_week = ?, start_time = ?,
	               end_time = ?, adjustment_percent = ?, is_active = ?
	           WHERE id = ?`
	result, err := r.db.ExecContext(ctx, q,
		nullableID(rule.TableID), nullableID(rule.CategoryID), rule.DayOfWeek,
		rule.StartTime, rule.EndTime, rule.AdjustmentPercent, rule.IsActive, rule.ID)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// RowsAffected is 0 both for a missing row and a no-op update;
		// confirm existence before reporting not found.
		if _, err := r.GetByID(ctx, rule.ID); err != nil {
			return err
		}
	}
	return nil
}

// Delete hard-deletes a rule.  Most flows should prefer toggling
// is_active through Update; Delete exists for rules created by
// mistake.
func (r *PricingRuleRepo) Delete(ctx context.Context, ruleID uint64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM pricing_rules WHERE id = ?`, ruleID)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrRuleNotFound
	}
	return nil
}

// nullableID converts an optional uint64 into a driver-friendly value.
func nullableID(id *uint64) interface{} {
	if id == nil {
		return nil
	}
	return *id
}
