// Package repository contains data access logic separated from HTTP
// handlers.  This file defines sentinel error values reused across the
// repositories so that handlers can distinguish failure scenarios: for
// example ErrForbidden indicates the caller does not own the resource, while
// ErrNotFound covers missing rows where a per-entity sentinel is not worth
// defining.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own.  Handlers translate this into HTTP 403.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when a delete or update cannot proceed because of
// dependent state, such as deleting a room category that still has live
// bookings.  Handlers translate this into HTTP 409.
var ErrConflict = errors.New("conflict")

// ErrPropertyNotFound is returned when a property cannot be found.
var ErrPropertyNotFound = errors.New("property not found")

// ErrRoomCategoryNotFound is returned when a room category cannot be found.
var ErrRoomCategoryNotFound = errors.New("room category not found")

// ErrBookingNotFound is returned when a booking cannot be found.
var ErrBookingNotFound = errors.New("booking not found")
