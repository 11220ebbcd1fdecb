package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// ReservationRepo provides data access to the reservations table.  All
// timestamp columns are stored in UTC as DATETIME; the DSN's
// parseTime=true&loc=UTC turns them back into time.Time on reads.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

const mysqlTimeLayout = "2006-01-02 15:04:05"

// CreateIfFree atomically admits a reservation.  Inside a single
// transaction it:
//
//  1. locks the table row with SELECT ... FOR UPDATE, which serializes
//     concurrent admissions for the same table past this point;
//  2. runs the half-open overlap query
//     (starts_at < new.ends_at AND ends_at > new.starts_at);
//  3. inserts the reservation and reads back generated columns.
//
// A plain read-then-insert without the row lock admits a race where two
// overlapping requests both pass the check; the lock makes the second
// transaction wait and then observe the first insert.  It returns
// ErrTableNotFound when the table does not exist under the claimed
// restaurant and ErrConflict when the window is taken.  On success the
// reservation's ID and CreatedAt are populated.
func (r *ReservationRepo) CreateIfFree(ctx context.Context, res *model.Reservation) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var tableID uint64
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM tables WHERE id = ? AND restaurant_id = ? FOR UPDATE`,
		res.TableID, res.RestaurantID,
	).Scan(&tableID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrTableNotFound
	}
	if err != nil {
		return err
	}

	starts := res.StartsAt.UTC().Format(mysqlTimeLayout)
	ends := res.EndsAt.UTC().Format(mysqlTimeLayout)

	var existingID uint64
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM reservations WHERE table_id = ? AND starts_at < ? AND ends_at > ? LIMIT 1`,
		res.TableID, ends, starts,
	).Scan(&existingID)
	if err == nil {
		return ErrConflict
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	const ins = `INSERT INTO reservations
	             (restaurant_id, table_id, customer_name, party_size, starts_at, ends_at, status, is_prepaid, prepaid_amount)
	             VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	result, err := tx.ExecContext(ctx, ins,
		res.RestaurantID, res.TableID, res.CustomerName, res.PartySize,
		starts, ends, res.Status, res.IsPrepaid, res.PrepaidAmount)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)
	if err := tx.QueryRowContext(ctx,
		`SELECT created_at FROM reservations WHERE id = ?`, res.ID,
	).Scan(&res.CreatedAt); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// ListByRestaurant returns all reservations of a restaurant, newest
// window first.  Used by the owner view; this service never mutates
// the returned records.
func (r *ReservationRepo) ListByRestaurant(ctx context.Context, restaurantID uint64) ([]model.Reservation, error) {
	const q = `SELECT id, restaurant_id, table_id, customer_name, party_size,
	                  starts_at, ends_at, status, is_prepaid, prepaid_amount, created_at
	           FROM reservations
	           WHERE restaurant_id = ?
	           ORDER BY starts_at DESC`
	rows, err := r.db.QueryContext(ctx, q, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Reservation, 0)
	for rows.Next() {
		var res model.Reservation
		if err := rows.Scan(&res.ID, &res.RestaurantID, &res.TableID, &res.CustomerName,
			&res.PartySize, &res.StartsAt, &res.EndsAt, &res.Status,
			&res.IsPrepaid, &res.PrepaidAmount, &res.CreatedAt); err != nil {
			return nil, err
		}
		res.StartsAt = res.StartsAt.UTC()
		res.EndsAt = res.EndsAt.UTC()
		out = append(out, res)
	}
	return out, rows.Err()
}

// UpcomingByTable returns reservations on a table that end after the
// given moment, soonest first.  The reservation handler uses it to
// report the busy windows alongside a conflict response.
func (r *ReservationRepo) UpcomingByTable(ctx context.Context, tableID uint64, after time.Time) ([]model.Reservation, error) {
	const q = `SELECT id, restaurant_id, table_id, customer_name, party_size,
	                  starts_at, ends_at, status, is_prepaid, prepaid_amount, created_at
	           FROM reservations
	           WHERE table_id = ? AND ends_at > ?
	           ORDER BY starts_at`
	rows, err := r.db.QueryContext(ctx, q, tableID, after.UTC().Format(mysqlTimeLayout))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Reservation, 0)
	for rows.Next() {
		var res model.Reservation
		if err := rows.Scan(&res.ID, &res.RestaurantID, &res.TableID, &res.CustomerName,
			&res.PartySize, &res.StartsAt, &res.EndsAt, &res.Status,
			&res.IsPrepaid, &res.PrepaidAmount, &res.CreatedAt); err != nil {
			return nil, err
		}
		res.StartsAt = res.StartsAt.UTC()
		res.EndsAt = res.EndsAt.UTC()
		out = append(out, res)
	}
	return out, rows.Err()
}
