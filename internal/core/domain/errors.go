package domain

import "errors"

// Business failures returned by the reservation service. Callers match
// them with errors.Is and map them to their own surface.
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrTransportNotFound = errors.New("transport not found")
	ErrSeatUnavailable   = errors.New("seat is not available")

	// ErrTicketNotFound covers both an unknown ticket id and a ticket
	// that was already cancelled; the two cases are not distinguished.
	ErrTicketNotFound = errors.New("ticket not found or already cancelled")
)
