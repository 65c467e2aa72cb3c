package domain

import (
	"sort"
	"strings"
)

type TransportKind string

const (
	KindBus   TransportKind = "BUS"
	KindTrain TransportKind = "TRAIN"
)

// Transport is a bookable route instance. Bus and Train share all state;
// they differ only in Kind and the pricing rule dispatched on it.
type Transport struct {
	ID          string
	Kind        TransportKind
	Source      string
	Destination string
	TotalSeats  int
	BasePrice   float64
	// Category holds the bus type (AC, Non-AC, Sleeper, ...) for buses
	// and the class (1A, 2A, 3A, SL, ...) for trains.
	Category string

	available map[int]struct{}
}

func NewBus(id, source, destination string, totalSeats int, basePrice float64, busType string) *Transport {
	return newTransport(id, KindBus, source, destination, totalSeats, basePrice, busType)
}

func NewTrain(id, source, destination string, totalSeats int, basePrice float64, trainClass string) *Transport {
	return newTransport(id, KindTrain, source, destination, totalSeats, basePrice, trainClass)
}

func newTransport(id string, kind TransportKind, source, destination string, totalSeats int, basePrice float64, category string) *Transport {
	t := &Transport{
		ID:          id,
		Kind:        kind,
		Source:      source,
		Destination: destination,
		TotalSeats:  totalSeats,
		BasePrice:   basePrice,
		Category:    category,
		available:   make(map[int]struct{}, totalSeats),
	}
	for i := 1; i <= totalSeats; i++ {
		t.available[i] = struct{}{}
	}
	return t
}

// Price computes the fare for a seat. It is a pure function of the seat
// number and the transport's category; it does not care whether the seat
// is currently booked.
func (t *Transport) Price(seatNumber int) float64 {
	price := t.BasePrice

	switch t.Kind {
	case KindBus:
		// Window seats (odd numbers) cost more.
		if seatNumber%2 != 0 {
			price += 50
		}
		switch {
		case strings.EqualFold(t.Category, "AC"):
			price += 200
		case strings.EqualFold(t.Category, "Sleeper"):
			price += 300
		}
	case KindTrain:
		// Lower berths (1-20) cost more.
		if seatNumber <= 20 {
			price += 100
		}
		switch strings.ToUpper(t.Category) {
		case "1A":
			price += 500
		case "2A":
			price += 350
		case "3A":
			price += 200
		case "SL":
			price += 50
		}
	}

	return price
}

// BookSeat removes the seat from the available set. It fails without
// mutation when the seat is already booked or out of range.
func (t *Transport) BookSeat(seatNumber int) bool {
	if _, ok := t.available[seatNumber]; !ok {
		return false
	}
	delete(t.available, seatNumber)
	return true
}

// CancelSeat returns a booked seat to the available set. Cancelling a
// seat that is already available fails, so a seat can never be released
// twice.
func (t *Transport) CancelSeat(seatNumber int) bool {
	if seatNumber < 1 || seatNumber > t.TotalSeats {
		return false
	}
	if _, ok := t.available[seatNumber]; ok {
		return false
	}
	t.available[seatNumber] = struct{}{}
	return true
}

func (t *Transport) IsSeatAvailable(seatNumber int) bool {
	_, ok := t.available[seatNumber]
	return ok
}

// AvailableSeats returns a sorted copy of the available seat numbers.
// Mutating the returned slice does not affect the transport.
func (t *Transport) AvailableSeats() []int {
	seats := make([]int, 0, len(t.available))
	for seat := range t.available {
		seats = append(seats, seat)
	}
	sort.Ints(seats)
	return seats
}

func (t *Transport) AvailableCount() int {
	return len(t.available)
}

// SetAvailableSeats replaces the available set from persisted state.
// Seat numbers outside [1, TotalSeats] are discarded.
func (t *Transport) SetAvailableSeats(seats []int) {
	t.available = make(map[int]struct{}, len(seats))
	for _, seat := range seats {
		if seat < 1 || seat > t.TotalSeats {
			continue
		}
		t.available[seat] = struct{}{}
	}
}
