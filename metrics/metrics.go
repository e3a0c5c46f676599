package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	bookingCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "roombooking",
			Name:      "booking_created_total",
			Help:      "Count of bookings created.",
		},
	)

	bookingConflict = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "roombooking",
			Name:      "booking_conflict_total",
			Help:      "Count of booking attempts rejected due to slot conflicts.",
		},
	)

	bookingCancelled = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "roombooking",
			Name:      "booking_cancelled_total",
			Help:      "Count of bookings cancelled by their organizers.",
		},
	)

	managerDecision = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "roombooking",
			Name:      "manager_decision_total",
			Help:      "Count of manager decisions over pending bookings.",
		},
		[]string{"decision"},
	)

	invitationResponse = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "roombooking",
			Name:      "invitation_response_total",
			Help:      "Count of invitation responses by outcome.",
		},
		[]string{"response"},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(bookingCreated, bookingConflict, bookingCancelled, managerDecision, invitationResponse)
	})
}

func IncBookingCreated() {
	bookingCreated.Inc()
}

func IncBookingConflict() {
	bookingConflict.Inc()
}

func IncBookingCancelled() {
	bookingCancelled.Inc()
}

func IncManagerDecision(decision string) {
	managerDecision.WithLabelValues(decision).Inc()
}

func IncInvitationResponse(response string) {
	invitationResponse.WithLabelValues(response).Inc()
}
