package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SeatConflictsTotal  = promauto.NewCounter(prometheus.CounterOpts{Namespace: "ride_pool", Name: "seat_conflicts_total", Help: "Seat reservations retried after a concurrent write"})
	RidesCompletedTotal = promauto.NewCounter(prometheus.CounterOpts{Namespace: "ride_pool", Name: "rides_completed_total", Help: "Rides promoted to completed by the sweeper"})
	SweepDuration       = promauto.NewHistogram(prometheus.HistogramOpts{Namespace: "ride_pool", Name: "sweep_duration_seconds", Help: "Lifecycle sweeper run duration"})

	BookingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "ride_pool", Name: "bookings_total", Help: "Booking attempts by outcome"},
		[]string{"outcome"},
	)

	RideRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "ride_pool", Name: "ride_requests_resolved_total", Help: "Ride requests resolved by status"},
		[]string{"status"},
	)

	AgreementsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "ride_pool", Name: "agreements_resolved_total", Help: "Agreements resolved by status"},
		[]string{"status"},
	)

	SweepRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "ride_pool", Name: "sweep_runs_total", Help: "Lifecycle sweeper runs by result"},
		[]string{"result"},
	)
)
