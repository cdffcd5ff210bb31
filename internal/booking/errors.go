// Package booking implements the admission engine for new bookings:
// input validation, availability checking on half-open intervals, tier
// pricing and the status state machine.  It is independent of the HTTP and
// storage layers; handlers translate the sentinel errors below into HTTP
// responses.
package booking

import (
	"errors"
	"fmt"
)

var (
	// ErrRoomCategoryNotFound is returned when the requested room category
	// id does not resolve to an existing row.  Handlers translate this into
	// HTTP 404.
	ErrRoomCategoryNotFound = errors.New("booking: room category not found")

	// ErrPropertyNotBookable is returned when the owning property is
	// deactivated or its vendor is not approved.
	ErrPropertyNotBookable = errors.New("booking: property is not accepting bookings")

	// ErrInvalidInterval is returned when end is not strictly after start.
	ErrInvalidInterval = errors.New("booking: end must be after start")

	// ErrStartInPast is returned when the requested start is not strictly
	// in the future at submission time.
	ErrStartInPast = errors.New("booking: start must be in the future")

	// ErrUnknownStayType is returned for a stay type outside 4h/6h/12h/24h.
	// Unrecognized values are rejected, never silently priced at the 4h tier.
	ErrUnknownStayType = errors.New("booking: unknown stay type")

	// ErrMissingCustomer is returned when the customer name or email is empty.
	ErrMissingCustomer = errors.New("booking: customer name and email are required")

	// ErrInvalidGuests is returned when the guest count is zero.
	ErrInvalidGuests = errors.New("booking: guests must be positive")

	// ErrTooManyGuests is returned when the guest count exceeds the room
	// category's capacity.
	ErrTooManyGuests = errors.New("booking: guests exceed room capacity")

	// ErrUnknownPaymentMethod is returned for a payment method outside
	// cash/card/online.
	ErrUnknownPaymentMethod = errors.New("booking: unknown payment method")

	// ErrInvalidTransition is returned for a status change the lifecycle
	// does not allow.
	ErrInvalidTransition = errors.New("booking: invalid status transition")
)

// ConflictError reports that the requested interval overlaps an existing
// non-cancelled booking on the same room category.  Handlers translate it
// into HTTP 409.
type ConflictError struct {
	BookingID uint64 // the conflicting booking
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("booking: room not available for the selected period (conflicts with booking %d)", e.BookingID)
}
