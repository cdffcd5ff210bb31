package booking

import "github.com/mzohaibq/roomstay/internal/model"

// transitions encodes the booking lifecycle:
//
//	PENDING   -> CONFIRMED | CANCELLED
//	CONFIRMED -> COMPLETED | CANCELLED
//
// COMPLETED and CANCELLED are terminal.  There are no automatic time-driven
// transitions; every change is caller-driven and role-authorized at the
// HTTP layer.
var transitions = map[model.BookingStatus][]model.BookingStatus{
	model.BookingPending:   {model.BookingConfirmed, model.BookingCancelled},
	model.BookingConfirmed: {model.BookingCompleted, model.BookingCancelled},
}

// CanTransition reports whether a booking may move from one status to
// another.
func CanTransition(from, to model.BookingStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ParseStatus validates a wire status value.
func ParseStatus(s string) (model.BookingStatus, bool) {
	switch model.BookingStatus(s) {
	case model.BookingPending, model.BookingConfirmed, model.BookingCancelled, model.BookingCompleted:
		return model.BookingStatus(s), true
	}
	return "", false
}
