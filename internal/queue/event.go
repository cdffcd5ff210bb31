// Package queue defines message payloads exchanged over the message broker
// and the background consumer that turns them into an audit trail.
package queue

// EventQueueName is the durable queue all booking lifecycle events go
// through.  One queue with a typed payload keeps consumer wiring simple.
const EventQueueName = "booking.events"

// Event kinds carried in BookingEvent.Kind.
const (
	KindBookingCreated       = "booking.created"
	KindBookingStatusChanged = "booking.status_changed"
)

// BookingEvent is published when a booking is admitted or moves through its
// lifecycle.  It carries enough for downstream consumers to log, notify or
// feed analytics without querying the primary database.  FromStatus is empty
// for creation events.
type BookingEvent struct {
	Kind           string  `json:"kind"`
	BookingID      uint64  `json:"booking_id"`
	Reference      string  `json:"reference"`
	RoomCategoryID uint64  `json:"room_category_id"`
	UserID         *uint64 `json:"user_id,omitempty"`
	CustomerEmail  string  `json:"customer_email"`
	StayType       string  `json:"stay_type"`
	StartAt        string  `json:"start_at"`
	EndAt          string  `json:"end_at"`
	TotalPrice     int64   `json:"total_price"`
	Currency       string  `json:"currency"`
	FromStatus     string  `json:"from_status,omitempty"`
	Status         string  `json:"status"`
	OccurredAt     string  `json:"occurred_at"`
}
