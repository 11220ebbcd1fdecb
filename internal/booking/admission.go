package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
	"github.com/iliyamo/restaurant-table-reservation/internal/repository"
)

const (
	// DefaultDurationMinutes is applied when a request omits the
	// reservation duration.
	DefaultDurationMinutes = 90

	// PrepaidMinNotice is the minimum lead time between booking and
	// reservation start for prepaid bookings.  The boundary is
	// inclusive: a start exactly this far ahead is accepted.
	PrepaidMinNotice = 48 * time.Hour
)

// Store persists reservations.  CreateIfFree must execute the overlap
// check and the insert as one atomic unit: when it returns nil, the
// stored interval was disjoint from every other reservation on the
// same table at commit time.  It returns repository.ErrTableNotFound
// when the table does not exist and repository.ErrConflict when the
// window overlaps an existing reservation.
type Store interface {
	CreateIfFree(ctx context.Context, res *model.Reservation) error
}

// Request carries one admission attempt.  A zero DurationMinutes means
// DefaultDurationMinutes.
type Request struct {
	RestaurantID    uint64
	TableID         uint64
	CustomerName    string
	PartySize       int
	StartsAt        time.Time
	DurationMinutes int
	IsPrepaid       bool
	PrepaidAmount   decimal.NullDecimal
}

// Admitter validates admission requests and commits them through a
// Store.  The clock is injected so the advance-notice rule is testable
// with deterministic time.
type Admitter struct {
	store Store
	now   func() time.Time
}

// NewAdmitter constructs an Admitter.  A nil clock defaults to
// time.Now in UTC.
func NewAdmitter(store Store, now func() time.Time) *Admitter {
	if store == nil {
		panic("nil store passed to NewAdmitter")
	}
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &Admitter{store: store, now: now}
}

// Admit validates the request and persists a confirmed reservation.
// Checks run in order and the first failure wins: input shape, then
// the prepaid advance-notice rule, then the overlap check inside the
// store.  On success the returned reservation carries the generated ID
// and timestamps.
func (a *Admitter) Admit(ctx context.Context, req Request) (*model.Reservation, error) {
	name := strings.TrimSpace(req.CustomerName)
	if name == "" {
		return nil, &ValidationError{Reason: "customerName is required"}
	}
	if req.RestaurantID == 0 || req.TableID == 0 {
		return nil, &ValidationError{Reason: "restaurantId and tableId are required"}
	}
	if req.PartySize < 1 {
		return nil, &ValidationError{Reason: "partySize must be at least 1"}
	}
	if req.StartsAt.IsZero() {
		return nil, &ValidationError{Reason: "startsAt is required"}
	}
	duration := req.DurationMinutes
	if duration == 0 {
		duration = DefaultDurationMinutes
	}
	if duration < 0 {
		return nil, &ValidationError{Reason: "durationMinutes must be positive"}
	}
	if req.PrepaidAmount.Valid && req.PrepaidAmount.Decimal.IsNegative() {
		return nil, &ValidationError{Reason: "prepaidAmount must not be negative"}
	}

	startsAt := req.StartsAt.UTC()
	endsAt := startsAt.Add(time.Duration(duration) * time.Minute)

	if req.IsPrepaid {
		minStart := a.now().Add(PrepaidMinNotice)
		if startsAt.Before(minStart) {
			return nil, &ValidationError{Reason: "prepaid reservations must be booked at least 48 hours ahead"}
		}
	}

	res := &model.Reservation{
		RestaurantID:  req.RestaurantID,
		TableID:       req.TableID,
		CustomerName:  name,
		PartySize:     req.PartySize,
		StartsAt:      startsAt,
		EndsAt:        endsAt,
		Status:        model.StatusConfirmed,
		IsPrepaid:     req.IsPrepaid,
		PrepaidAmount: req.PrepaidAmount,
	}
	if !req.IsPrepaid {
		res.PrepaidAmount = decimal.NullDecimal{}
	}

	if err := a.store.CreateIfFree(ctx, res); err != nil {
		switch {
		case errors.Is(err, repository.ErrTableNotFound):
			return nil, &NotFoundError{Resource: "table"}
		case errors.Is(err, repository.ErrConflict):
			return nil, &ConflictError{Reason: "table unavailable for requested window"}
		default:
			return nil, &RepositoryError{Err: err}
		}
	}
	return res, nil
}

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect.  Touching boundaries do not overlap: a
// reservation ending exactly when another starts is fine.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}
