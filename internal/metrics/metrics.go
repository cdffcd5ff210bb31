// Package metrics registers the Prometheus instruments exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// BookingsCreated counts successfully admitted bookings.
	BookingsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bookings_created_total",
		Help: "Number of bookings admitted.",
	})

	// BookingConflicts counts admissions rejected because the requested
	// window overlapped an existing booking.
	BookingConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "booking_conflicts_total",
		Help: "Number of booking requests rejected due to an interval conflict.",
	})

	// StatusTransitions counts lifecycle transitions by edge.
	StatusTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "booking_status_transitions_total",
		Help: "Number of booking status transitions.",
	}, []string{"from", "to"})
)
