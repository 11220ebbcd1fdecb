package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/iliyamo/restaurant-table-reservation/internal/booking"
	"github.com/iliyamo/restaurant-table-reservation/internal/model"
	"github.com/iliyamo/restaurant-table-reservation/internal/monitoring"
	"github.com/iliyamo/restaurant-table-reservation/internal/queue"
	"github.com/iliyamo/restaurant-table-reservation/internal/repository"
	"github.com/iliyamo/restaurant-table-reservation/internal/service"
)

// ReservationHandler serves reservation admission.  The heavy lifting
// (validation, advance-notice rule, atomic overlap check) lives in the
// booking package; this handler binds the request, maps the typed
// errors onto HTTP statuses and publishes the confirmation event.
type ReservationHandler struct {
	Admitter *booking.Admitter
	// Reservations, when set, lets a conflict response list the busy
	// windows around the requested start so clients can offer
	// alternatives without a second round trip.
	Reservations *repository.ReservationRepo
	// Publish sends the confirmation event after a successful commit.
	// Failures are logged, never surfaced to the guest.  Nil disables
	// publishing (tests, broker-less deployments).
	Publish func(ctx context.Context, ev queue.ReservationConfirmedEvent) error
}

// NewReservationHandler constructs a ReservationHandler wired to the
// RabbitMQ publisher.
func NewReservationHandler(admitter *booking.Admitter, reservations *repository.ReservationRepo) *ReservationHandler {
	if admitter == nil {
		panic("nil admitter passed to NewReservationHandler")
	}
	return &ReservationHandler{
		Admitter:     admitter,
		Reservations: reservations,
		Publish:      queue_publisher.PublishReservationConfirmed,
	}
}

type reservationReq struct {
	RestaurantID    uint64           `json:"restaurantId"`
	TableID         uint64           `json:"tableId"`
	CustomerName    string           `json:"customerName"`
	PartySize       int              `json:"partySize"`
	StartsAtISO     string           `json:"startsAtISO"`
	DurationMinutes *int             `json:"durationMinutes"`
	IsPrepaid       bool             `json:"isPrepaid"`
	PrepaidAmount   *decimal.Decimal `json:"prepaidAmount"`
}

// Create handles POST /v1/reservations.  It responds 201 with the
// created reservation, 400 on malformed input or an advance-notice
// violation, 404 when the table does not exist, 409 when the window
// overlaps an existing reservation and 500 on storage failure.
func (h *ReservationHandler) Create(c echo.Context) error {
	var req reservationReq
	if err := c.Bind(&req); err != nil {
		monitoring.AdmissionHandled("bad_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.StartsAtISO == "" {
		monitoring.AdmissionHandled("bad_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "startsAtISO is required"})
	}
	startsAt, err := time.Parse(time.RFC3339, req.StartsAtISO)
	if err != nil {
		monitoring.AdmissionHandled("bad_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "startsAtISO must be RFC 3339"})
	}

	admitReq := booking.Request{
		RestaurantID: req.RestaurantID,
		TableID:      req.TableID,
		CustomerName: req.CustomerName,
		PartySize:    req.PartySize,
		StartsAt:     startsAt,
		IsPrepaid:    req.IsPrepaid,
	}
	if req.DurationMinutes != nil {
		if *req.DurationMinutes <= 0 {
			monitoring.AdmissionHandled("bad_request")
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "durationMinutes must be positive"})
		}
		admitReq.DurationMinutes = *req.DurationMinutes
	}
	if req.PrepaidAmount != nil {
		admitReq.PrepaidAmount = decimal.NewNullDecimal(*req.PrepaidAmount)
	}

	start := time.Now()
	res, err := h.Admitter.Admit(c.Request().Context(), admitReq)
	monitoring.AdmissionDuration(time.Since(start))
	if err != nil {
		return h.writeAdmitError(c, err, req.TableID, startsAt)
	}

	monitoring.AdmissionHandled("confirmed")
	h.publishConfirmed(c, res)
	return c.JSON(http.StatusCreated, echo.Map{"reservation": res})
}

// writeAdmitError maps the booking error taxonomy onto transport
// responses.  Repository errors are logged in full and returned as a
// generic message so storage details never leak to guests.
func (h *ReservationHandler) writeAdmitError(c echo.Context, err error, tableID uint64, startsAt time.Time) error {
	switch e := err.(type) {
	case *booking.ValidationError:
		monitoring.AdmissionHandled("bad_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": e.Reason})
	case *booking.NotFoundError:
		monitoring.AdmissionHandled("not_found")
		return c.JSON(http.StatusNotFound, echo.Map{"error": e.Error()})
	case *booking.ConflictError:
		monitoring.AdmissionHandled("conflict")
		body := echo.Map{"error": e.Reason}
		if busy := h.busyWindows(c, tableID, startsAt); len(busy) > 0 {
			body["busy"] = busy
		}
		return c.JSON(http.StatusConflict, body)
	default:
		c.Logger().Errorf("reservation: admit failed: %v", err)
		monitoring.AdmissionHandled("error")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create reservation"})
	}
}

type busyWindow struct {
	StartsAt string `json:"startsAt"`
	EndsAt   string `json:"endsAt"`
}

// busyWindows lists the next few occupied windows on the table starting
// from the rejected moment.  Best effort: lookup failures just omit the
// hint.
func (h *ReservationHandler) busyWindows(c echo.Context, tableID uint64, after time.Time) []busyWindow {
	if h.Reservations == nil {
		return nil
	}
	upcoming, err := h.Reservations.UpcomingByTable(c.Request().Context(), tableID, after)
	if err != nil {
		c.Logger().Warnf("reservation: upcoming lookup failed: %v", err)
		return nil
	}
	if len(upcoming) > 5 {
		upcoming = upcoming[:5]
	}
	out := make([]busyWindow, 0, len(upcoming))
	for _, r := range upcoming {
		out = append(out, busyWindow{
			StartsAt: r.StartsAt.Format(time.RFC3339),
			EndsAt:   r.EndsAt.Format(time.RFC3339),
		})
	}
	return out
}

func (h *ReservationHandler) publishConfirmed(c echo.Context, res *model.Reservation) {
	if h.Publish == nil {
		return
	}
	ev := queue.ReservationConfirmedEvent{
		ReservationID: res.ID,
		RestaurantID:  res.RestaurantID,
		TableID:       res.TableID,
		CustomerName:  res.CustomerName,
		PartySize:     res.PartySize,
		StartsAt:      res.StartsAt.Format(time.RFC3339),
		EndsAt:        res.EndsAt.Format(time.RFC3339),
		IsPrepaid:     res.IsPrepaid,
		ConfirmedAt:   time.Now().UTC().Format(time.RFC3339),
	}
	if res.PrepaidAmount.Valid {
		ev.PrepaidAmount = res.PrepaidAmount.Decimal.StringFixed(2)
	}
	if err := h.Publish(c.Request().Context(), ev); err != nil {
		c.Logger().Warnf("reservation: publish confirmed event failed: %v", err)
	}
}
