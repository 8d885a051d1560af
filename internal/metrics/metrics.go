package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	DraftsOpened = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "lodgix_drafts_opened_total",
			Help: "Total number of booking drafts opened",
		},
	)

	DraftsExpired = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "lodgix_drafts_expired_total",
			Help: "Total number of drafts dropped after their TTL",
		},
	)

	DraftTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lodgix_draft_transitions_total",
			Help: "Booking flow transitions by source stage, target stage and result",
		},
		[]string{"from", "to", "result"}, // result: ok, blocked
	)

	BookingsFinalized = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lodgix_bookings_finalized_total",
			Help: "Total number of finalized bookings",
		},
		[]string{"payment_method", "status"},
	)

	BookingAmount = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "lodgix_booking_amount",
			Help:    "Total amount of finalized bookings in currency units",
			Buckets: prometheus.ExponentialBuckets(1000, 2, 10), //nolint:gomnd
		},
	)

	Notifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lodgix_booking_notifications_total",
			Help: "Outbound booking notifications by result",
		},
		[]string{"result"}, // sent, failed, rejected, skipped
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "lodgix_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "lodgix_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)
