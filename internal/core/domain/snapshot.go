package domain

// Snapshot is the full persisted state of the reservation system: the
// ticket history with its id counter, the user catalog, and the
// remaining available seats per transport. Transports themselves are
// seeded by the bootstrap fleet, only their seat state is persisted.
type Snapshot struct {
	Tickets          []*Ticket        `json:"tickets"`
	TicketCounter    int              `json:"ticket_counter"`
	Users            map[string]*User `json:"users"`
	SeatsByTransport map[string][]int `json:"seats_by_transport"`
}
