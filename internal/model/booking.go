package model

import "time"

// BookingStatus enumerates the booking lifecycle.  PENDING and CONFIRMED are
// live states; CANCELLED and COMPLETED are terminal.
type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCancelled BookingStatus = "CANCELLED"
	BookingCompleted BookingStatus = "COMPLETED"
)

// Booking records an admitted stay on a room category over the half-open
// interval [StartAt, EndAt).  UserID is nil for guest bookings.  TotalPrice
// is computed by the server from the category's tier matching StayType at
// creation and never recomputed, even if the category's prices change later.
//
// Invariant: for one room category, the intervals of all bookings whose
// status is not CANCELLED are pairwise disjoint.
type Booking struct {
	ID             uint64
	Reference      string // public lookup code (uuid), safe to hand to guests
	RoomCategoryID uint64
	UserID         *uint64
	CustomerName   string
	CustomerEmail  string
	CustomerPhone  *string
	Guests         uint32
	StayType       string // one of "4h", "6h", "12h", "24h"
	StartAt        time.Time
	EndAt          time.Time
	TotalPrice     int64
	Currency       string
	PaymentMethod  string
	Status         BookingStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Active reports whether the booking currently blocks its interval.
// Cancelled bookings release the slot for re-booking immediately.
func (b *Booking) Active() bool { return b.Status != BookingCancelled }
