// Package monitoring exposes Prometheus metrics for the pricing and
// admission paths.  Counters and histograms are registered once via
// promauto; handlers record into them through the helper functions.
package monitoring

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	quoteTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quote_requests_total",
		Help: "Quote requests handled, labelled by HTTP status class.",
	}, []string{"status"})

	quoteSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "quote_duration_seconds",
		Help:    "Time spent resolving a price quote.",
		Buckets: prometheus.DefBuckets,
	})

	admissionTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reservation_admissions_total",
		Help: "Reservation admission attempts, labelled by outcome.",
	}, []string{"outcome"})

	admissionSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "reservation_admission_duration_seconds",
		Help:    "Time spent admitting a reservation, including the conflict check.",
		Buckets: prometheus.DefBuckets,
	})
)

// QuoteHandled counts one handled quote request.  status is one of
// "ok", "bad_request", "not_found" or "error".
func QuoteHandled(status string) {
	quoteTotal.WithLabelValues(status).Inc()
}

// QuoteDuration records how long a quote took end to end.
func QuoteDuration(d time.Duration) {
	quoteSeconds.Observe(d.Seconds())
}

// AdmissionHandled counts one admission attempt.  outcome is one of
// "confirmed", "bad_request", "not_found", "conflict" or "error".
func AdmissionHandled(outcome string) {
	admissionTotal.WithLabelValues(outcome).Inc()
}

// AdmissionDuration records how long an admission took end to end.
func AdmissionDuration(d time.Duration) {
	admissionSeconds.Observe(d.Seconds())
}

// Handler adapts the Prometheus scrape handler to echo for GET /metrics.
func Handler() echo.HandlerFunc {
	h := promhttp.Handler()
	return func(c echo.Context) error {
		h.ServeHTTP(c.Response(), c.Request())
		return nil
	}
}
