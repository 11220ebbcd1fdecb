package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/restaurant-table-reservation/internal/booking"
	"github.com/iliyamo/restaurant-table-reservation/internal/model"
	"github.com/iliyamo/restaurant-table-reservation/internal/queue"
	"github.com/iliyamo/restaurant-table-reservation/internal/repository"
)

// stubStore keeps admitted reservations in memory and enforces the
// same overlap rule the MySQL store does.
type stubStore struct {
	mu       sync.Mutex
	nextID   uint64
	existing []*model.Reservation
}

func (s *stubStore) CreateIfFree(_ context.Context, res *model.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, other := range s.existing {
		if other.TableID == res.TableID && booking.Overlaps(res.StartsAt, res.EndsAt, other.StartsAt, other.EndsAt) {
			return repository.ErrConflict
		}
	}
	s.nextID++
	res.ID = s.nextID
	s.existing = append(s.existing, res)
	return nil
}

func newTestReservationHandler(now time.Time) (*ReservationHandler, *[]queue.ReservationConfirmedEvent) {
	admitter := booking.NewAdmitter(&stubStore{}, func() time.Time { return now })
	h := &ReservationHandler{Admitter: admitter}
	var published []queue.ReservationConfirmedEvent
	h.Publish = func(_ context.Context, ev queue.ReservationConfirmedEvent) error {
		published = append(published, ev)
		return nil
	}
	return h, &published
}

func TestCreateReservation_Confirmed(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	h, published := newTestReservationHandler(now)

	e := echo.New()
	c, rec := postJSON(e, "/v1/reservations",
		`{"restaurantId":1,"tableId":7,"customerName":"Dana","partySize":2,"startsAtISO":"2025-06-02T18:00:00Z"}`)
	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Reservation model.Reservation `json:"reservation"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, model.StatusConfirmed, resp.Reservation.Status)
	assert.Equal(t, uint64(1), resp.Reservation.ID)
	// Default duration: 90 minutes.
	assert.Equal(t, 90*time.Minute, resp.Reservation.EndsAt.Sub(resp.Reservation.StartsAt))

	require.Len(t, *published, 1)
	ev := (*published)[0]
	assert.Equal(t, uint64(1), ev.ReservationID)
	assert.Equal(t, "Dana", ev.CustomerName)
	assert.Equal(t, "2025-06-02T18:00:00Z", ev.StartsAt)
}

func TestCreateReservation_OverlapIsConflict(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	h, _ := newTestReservationHandler(now)
	e := echo.New()

	c, rec := postJSON(e, "/v1/reservations",
		`{"restaurantId":1,"tableId":7,"customerName":"Dana","partySize":2,"startsAtISO":"2025-06-02T18:00:00Z"}`)
	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	// Overlapping window on the same table.
	c, rec = postJSON(e, "/v1/reservations",
		`{"restaurantId":1,"tableId":7,"customerName":"Femi","partySize":4,"startsAtISO":"2025-06-02T18:30:00Z"}`)
	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Back-to-back is fine: the earlier booking ends at 19:30.
	c, rec = postJSON(e, "/v1/reservations",
		`{"restaurantId":1,"tableId":7,"customerName":"Femi","partySize":4,"startsAtISO":"2025-06-02T19:30:00Z"}`)
	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestCreateReservation_PrepaidTooSoonRejected(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	h, published := newTestReservationHandler(now)
	e := echo.New()

	// Tomorrow evening is inside the 48 hour notice window.
	c, rec := postJSON(e, "/v1/reservations",
		`{"restaurantId":1,"tableId":7,"customerName":"Dana","partySize":2,"startsAtISO":"2025-06-02T18:00:00Z","isPrepaid":true,"prepaidAmount":30.00}`)
	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, *published)

	// Three days out is fine, and the event carries the amount.
	c, rec = postJSON(e, "/v1/reservations",
		`{"restaurantId":1,"tableId":7,"customerName":"Dana","partySize":2,"startsAtISO":"2025-06-04T18:00:00Z","isPrepaid":true,"prepaidAmount":30.00}`)
	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, *published, 1)
	assert.Equal(t, "30.00", (*published)[0].PrepaidAmount)
}

func TestCreateReservation_BadRequests(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	h, _ := newTestReservationHandler(now)
	e := echo.New()

	bodies := []string{
		`{"restaurantId":1,"tableId":7,"customerName":"Dana","partySize":2}`,                                               // missing startsAtISO
		`{"restaurantId":1,"tableId":7,"customerName":"Dana","partySize":2,"startsAtISO":"tonight"}`,                       // bad timestamp
		`{"restaurantId":1,"tableId":7,"customerName":"","partySize":2,"startsAtISO":"2025-06-02T18:00:00Z"}`,              // blank name
		`{"restaurantId":1,"tableId":7,"customerName":"Dana","partySize":0,"startsAtISO":"2025-06-02T18:00:00Z"}`,          // party size
		`{"restaurantId":1,"tableId":7,"customerName":"Dana","partySize":2,"startsAtISO":"2025-06-02T18:00:00Z","durationMinutes":0}`, // zero duration
	}
	for _, body := range bodies {
		c, rec := postJSON(e, "/v1/reservations", body)
		require.NoError(t, h.Create(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body: %s", body)
	}
}
