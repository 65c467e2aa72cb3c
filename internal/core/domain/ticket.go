package domain

import "time"

type TicketStatus string

const (
	TicketConfirmed TicketStatus = "CONFIRMED"
	TicketCancelled TicketStatus = "CANCELLED"
)

// Ticket records a single seat booking. Every field except Status is
// fixed at creation; TransportType and the route are snapshots taken
// from the transport at booking time. Cancelled tickets stay in the
// history, they are never deleted.
type Ticket struct {
	ID            string        `json:"ticket_id"`
	UserID        string        `json:"user_id"`
	TransportID   string        `json:"transport_id"`
	TransportType TransportKind `json:"transport_type"`
	SeatNumber    int           `json:"seat_number"`
	Source        string        `json:"source"`
	Destination   string        `json:"destination"`
	Price         float64       `json:"price"`
	BookedAt      time.Time     `json:"booked_at"`
	Status        TicketStatus  `json:"status"`
}

func (t *Ticket) IsConfirmed() bool {
	return t.Status == TicketConfirmed
}
