// Package booking contains the booking lifecycle: availability
// derivation, conflict rules and the create/update/cancel operations.
// It depends only on the Store and Notifier abstractions so the rules
// can be exercised without a database.
package booking

import "errors"

// Sentinel errors returned by the Service.  Handlers translate these
// into HTTP responses; everything else is treated as an internal
// failure.
var (
	// ErrInvalidInput is returned when a required field is missing or
	// malformed (e.g. no table id).  Handlers map it to 400.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidRange is returned when a requested interval does not
	// satisfy start < end.  Handlers map it to 400.
	ErrInvalidRange = errors.New("invalid time range")

	// ErrTableNotFound is returned when the table id does not resolve.
	ErrTableNotFound = errors.New("table not found")

	// ErrBookingNotFound is returned when the booking id does not resolve.
	ErrBookingNotFound = errors.New("booking not found")

	// ErrForbidden is returned when the requester is not allowed to act
	// on the booking (not the owner, and not an admin where admins are
	// accepted).  Handlers map it to 403.
	ErrForbidden = errors.New("forbidden")

	// ErrSlotTaken is returned when an active booking already overlaps
	// the requested interval on the same table.  Handlers map it to 409.
	ErrSlotTaken = errors.New("table already booked for this time")
)
