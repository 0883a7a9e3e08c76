package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the prometheus instruments shared across handlers and use cases.
type Metrics struct {
	RequestsTotal     *prometheus.CounterVec
	RequestDuration   *prometheus.HistogramVec
	SlotsGenerated    prometheus.Counter
	BookingsCreated   *prometheus.CounterVec
	BookingsCancelled prometheus.Counter
	ClaimConflicts    prometheus.Counter
}

// New registers the instruments with reg. Production wiring passes the
// default registerer; tests pass a fresh registry so repeated construction
// doesn't collide.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "slotbook_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),

		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "slotbook_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),

		SlotsGenerated: factory.NewCounter(prometheus.CounterOpts{
			Name: "slotbook_slots_generated_total",
			Help: "Total number of time slots inserted by the generator",
		}),

		BookingsCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "slotbook_bookings_created_total",
			Help: "Total number of bookings created",
		}, []string{"kind"}),

		BookingsCancelled: factory.NewCounter(prometheus.CounterOpts{
			Name: "slotbook_bookings_cancelled_total",
			Help: "Total number of bookings cancelled",
		}),

		ClaimConflicts: factory.NewCounter(prometheus.CounterOpts{
			Name: "slotbook_slot_claim_conflicts_total",
			Help: "Reservation attempts that lost the conditional slot claim",
		}),
	}
}
