package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
	"github.com/iliyamo/restaurant-table-reservation/internal/repository"
)

// memStore implements Store with an in-memory reservation list guarded
// by a mutex, matching the atomicity CreateIfFree promises.
type memStore struct {
	mu       sync.Mutex
	nextID   uint64
	existing []*model.Reservation
	missing  bool // simulate an unknown table
}

func (s *memStore) CreateIfFree(_ context.Context, res *model.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.missing {
		return repository.ErrTableNotFound
	}
	for _, other := range s.existing {
		if other.TableID == res.TableID && Overlaps(res.StartsAt, res.EndsAt, other.StartsAt, other.EndsAt) {
			return repository.ErrConflict
		}
	}
	s.nextID++
	res.ID = s.nextID
	res.CreatedAt = time.Now().UTC()
	s.existing = append(s.existing, res)
	return nil
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func validRequest(startsAt time.Time) Request {
	return Request{
		RestaurantID: 1,
		TableID:      7,
		CustomerName: "Dana",
		PartySize:    2,
		StartsAt:     startsAt,
	}
}

func TestAdmit_Success(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := &memStore{}
	a := NewAdmitter(store, fixedClock(now))

	res, err := a.Admit(context.Background(), validRequest(now.Add(24*time.Hour)))
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, model.StatusConfirmed, res.Status)
	assert.Equal(t, uint64(1), res.ID)
	// Omitted duration defaults to 90 minutes.
	assert.Equal(t, 90*time.Minute, res.EndsAt.Sub(res.StartsAt))
}

func TestAdmit_ValidationFailures(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	a := NewAdmitter(&memStore{}, fixedClock(now))
	startsAt := now.Add(24 * time.Hour)

	cases := []struct {
		name string
		mut  func(*Request)
	}{
		{"blank customer name", func(r *Request) { r.CustomerName = "   " }},
		{"zero restaurant", func(r *Request) { r.RestaurantID = 0 }},
		{"zero table", func(r *Request) { r.TableID = 0 }},
		{"party size below one", func(r *Request) { r.PartySize = 0 }},
		{"zero start", func(r *Request) { r.StartsAt = time.Time{} }},
		{"negative duration", func(r *Request) { r.DurationMinutes = -30 }},
		{"negative prepaid amount", func(r *Request) {
			r.IsPrepaid = true
			r.StartsAt = now.Add(72 * time.Hour)
			r.PrepaidAmount = decimal.NewNullDecimal(decimal.RequireFromString("-5"))
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest(startsAt)
			tc.mut(&req)
			_, err := a.Admit(context.Background(), req)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
		})
	}
}

func TestAdmit_PrepaidAdvanceNotice(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	a := NewAdmitter(&memStore{}, fixedClock(now))

	// 47h59m ahead: rejected.
	req := validRequest(now.Add(48*time.Hour - time.Minute))
	req.IsPrepaid = true
	req.PrepaidAmount = decimal.NewNullDecimal(decimal.RequireFromString("30.00"))
	_, err := a.Admit(context.Background(), req)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Reason, "48 hours")

	// Exactly 48h ahead: the boundary is inclusive.
	req = validRequest(now.Add(48 * time.Hour))
	req.IsPrepaid = true
	req.PrepaidAmount = decimal.NewNullDecimal(decimal.RequireFromString("30.00"))
	res, err := a.Admit(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, res.IsPrepaid)
	assert.True(t, res.PrepaidAmount.Valid)

	// Non-prepaid bookings have no notice requirement at all.
	req = validRequest(now.Add(time.Hour))
	res, err = a.Admit(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, res.PrepaidAmount.Valid)
}

func TestAdmit_DropsPrepaidAmountWhenNotPrepaid(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	a := NewAdmitter(&memStore{}, fixedClock(now))

	req := validRequest(now.Add(24 * time.Hour))
	req.PrepaidAmount = decimal.NewNullDecimal(decimal.RequireFromString("30.00"))
	res, err := a.Admit(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, res.PrepaidAmount.Valid)
}

func TestAdmit_ConflictAndNotFound(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := &memStore{}
	a := NewAdmitter(store, fixedClock(now))

	first := validRequest(now.Add(24 * time.Hour))
	_, err := a.Admit(context.Background(), first)
	require.NoError(t, err)

	// Fully contained in the first window: conflict.
	second := validRequest(now.Add(24*time.Hour + 30*time.Minute))
	second.DurationMinutes = 15
	_, err = a.Admit(context.Background(), second)
	var cerr *ConflictError
	require.ErrorAs(t, err, &cerr)

	// Starting exactly at the first window's end: boundaries touch but
	// do not overlap.
	third := validRequest(now.Add(24*time.Hour + 90*time.Minute))
	_, err = a.Admit(context.Background(), third)
	require.NoError(t, err)

	// Unknown table maps to a typed not-found error.
	missing := NewAdmitter(&memStore{missing: true}, fixedClock(now))
	_, err = missing.Admit(context.Background(), validRequest(now.Add(24*time.Hour)))
	var nerr *NotFoundError
	require.ErrorAs(t, err, &nerr)
	assert.Equal(t, "table not found", nerr.Error())
}

func TestAdmit_ConcurrentRequestsAdmitExactlyOne(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := &memStore{}
	a := NewAdmitter(store, fixedClock(now))
	startsAt := now.Add(24 * time.Hour)

	const n = 32
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = a.Admit(context.Background(), validRequest(startsAt))
		}(i)
	}
	wg.Wait()

	admitted := 0
	for _, err := range errs {
		if err == nil {
			admitted++
			continue
		}
		var cerr *ConflictError
		require.ErrorAs(t, err, &cerr)
	}
	assert.Equal(t, 1, admitted)
	assert.Len(t, store.existing, 1)
}

func TestOverlaps(t *testing.T) {
	base := time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC)
	end := base.Add(90 * time.Minute)

	assert.True(t, Overlaps(base, end, base.Add(30*time.Minute), base.Add(45*time.Minute)), "contained")
	assert.True(t, Overlaps(base, end, base.Add(-30*time.Minute), base.Add(30*time.Minute)), "left overlap")
	assert.True(t, Overlaps(base, end, base.Add(60*time.Minute), end.Add(time.Hour)), "right overlap")
	assert.False(t, Overlaps(base, end, end, end.Add(time.Hour)), "touching at end")
	assert.False(t, Overlaps(base, end, base.Add(-time.Hour), base), "touching at start")
	assert.False(t, Overlaps(base, end, end.Add(time.Hour), end.Add(2*time.Hour)), "disjoint")
}
