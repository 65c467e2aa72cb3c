package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Mokshithanaidu/goreservee/internal/core/domain"
	"github.com/Mokshithanaidu/goreservee/internal/core/ports"
)

const (
	ticketCounterStart = 1000
	seatCacheTTL       = 30 * time.Second
)

// SeatReport is the read-only availability view for one transport.
type SeatReport struct {
	TransportID    string `json:"transport_id"`
	TotalSeats     int    `json:"total_seats"`
	AvailableCount int    `json:"available_count"`
	AvailableSeats []int  `json:"available_seats"`
}

// ReservationService owns the in-memory catalogs and orchestrates every
// booking operation. Mutations are serialized by a single mutex so the
// at-most-one-confirmed-ticket-per-seat invariant holds under concurrent
// callers. Durability is best effort: a failed snapshot save is logged
// and the in-memory result is still returned.
type ReservationService struct {
	mu sync.Mutex

	store ports.SnapshotStore
	cache *redis.Client

	transports    map[string]*domain.Transport
	users         map[string]*domain.User
	tickets       []*domain.Ticket
	ticketCounter int
}

// NewReservationService seeds the transport catalog from the bootstrap
// fleet. The redis client is optional; a nil client disables the seat
// cache.
func NewReservationService(store ports.SnapshotStore, cache *redis.Client, fleet []*domain.Transport) *ReservationService {
	transports := make(map[string]*domain.Transport, len(fleet))
	for _, t := range fleet {
		transports[t.ID] = t
	}

	return &ReservationService{
		store:         store,
		cache:         cache,
		transports:    transports,
		users:         make(map[string]*domain.User),
		tickets:       nil,
		ticketCounter: ticketCounterStart,
	}
}

// Restore loads the persisted snapshot into the catalogs. Any load
// failure, including a corrupt snapshot, degrades to a fresh start.
// Persisted seat state for a transport id not in the bootstrap fleet is
// ignored.
func (s *ReservationService) Restore(ctx context.Context) {
	snap, err := s.store.Load(ctx)
	if err != nil {
		if errors.Is(err, ports.ErrNoSnapshot) {
			log.Println("No previous data found. Starting fresh.")
		} else {
			log.Printf("Failed to load snapshot, starting fresh: %v", err)
		}
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.tickets = snap.Tickets
	if snap.TicketCounter >= ticketCounterStart {
		s.ticketCounter = snap.TicketCounter
	}
	if snap.Users != nil {
		s.users = snap.Users
	}
	for id, seats := range snap.SeatsByTransport {
		if transport, ok := s.transports[id]; ok {
			transport.SetAvailableSeats(seats)
		}
	}

	log.Printf("Snapshot restored: %d users, %d tickets", len(s.users), len(s.tickets))
}

// RegisterUser creates a user with the next sequential id. Duplicate
// emails or phones are allowed; registration never fails.
func (s *ReservationService) RegisterUser(ctx context.Context, name, email, phone string) *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := &domain.User{
		ID:    fmt.Sprintf("USER%04d", len(s.users)+1),
		Name:  name,
		Email: email,
		Phone: phone,
	}
	s.users[user.ID] = user

	s.persist(ctx)

	return user
}

func (s *ReservationService) GetUser(userID string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

// SearchTransports matches source and destination exactly, ignoring
// case. The result order follows catalog iteration and is unspecified.
func (s *ReservationService) SearchTransports(source, destination string) []*domain.Transport {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result []*domain.Transport
	for _, t := range s.transports {
		if strings.EqualFold(t.Source, source) && strings.EqualFold(t.Destination, destination) {
			result = append(result, t)
		}
	}
	return result
}

func (s *ReservationService) AllTransports() []*domain.Transport {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]*domain.Transport, 0, len(s.transports))
	for _, t := range s.transports {
		result = append(result, t)
	}
	return result
}

// BookTicket marks the seat booked, prices it, and appends a CONFIRMED
// ticket to the history. Failures are reported in order: unknown user,
// unknown transport, seat unavailable.
func (s *ReservationService) BookTicket(ctx context.Context, userID, transportID string, seatNumber int) (*domain.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}

	transport, ok := s.transports[transportID]
	if !ok {
		return nil, domain.ErrTransportNotFound
	}

	if !transport.IsSeatAvailable(seatNumber) {
		return nil, domain.ErrSeatUnavailable
	}

	if !transport.BookSeat(seatNumber) {
		return nil, domain.ErrSeatUnavailable
	}

	price := transport.Price(seatNumber)
	ticketID := fmt.Sprintf("TKT%06d", s.ticketCounter)
	s.ticketCounter++

	ticket := &domain.Ticket{
		ID:            ticketID,
		UserID:        user.ID,
		TransportID:   transport.ID,
		TransportType: transport.Kind,
		SeatNumber:    seatNumber,
		Source:        transport.Source,
		Destination:   transport.Destination,
		Price:         price,
		BookedAt:      time.Now(),
		Status:        domain.TicketConfirmed,
	}
	s.tickets = append(s.tickets, ticket)

	s.persist(ctx)
	s.invalidateSeatCache(ctx, transport.ID)

	return ticket, nil
}

// CancelTicket releases the seat of a CONFIRMED ticket and flips its
// status. An unknown id and an already cancelled ticket fail the same
// way; callers cannot tell the two apart.
func (s *ReservationService) CancelTicket(ctx context.Context, ticketID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, ticket := range s.tickets {
		if ticket.ID != ticketID || !ticket.IsConfirmed() {
			continue
		}

		transport, ok := s.transports[ticket.TransportID]
		if !ok {
			break
		}

		transport.CancelSeat(ticket.SeatNumber)
		ticket.Status = domain.TicketCancelled

		s.persist(ctx)
		s.invalidateSeatCache(ctx, transport.ID)

		return nil
	}

	return domain.ErrTicketNotFound
}

func (s *ReservationService) GetTicket(ticketID string) (*domain.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, ticket := range s.tickets {
		if ticket.ID == ticketID {
			return ticket, nil
		}
	}
	return nil, domain.ErrTicketNotFound
}

// GetUserBookings returns the user's tickets of any status in creation
// order. An unknown user simply gets an empty history.
func (s *ReservationService) GetUserBookings(userID string) []*domain.Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result []*domain.Ticket
	for _, ticket := range s.tickets {
		if ticket.UserID == userID {
			result = append(result, ticket)
		}
	}
	return result
}

// AvailableSeats reports the current availability for one transport,
// served from the redis cache when warm.
func (s *ReservationService) AvailableSeats(ctx context.Context, transportID string) (*SeatReport, error) {
	if report := s.cachedSeatReport(ctx, transportID); report != nil {
		return report, nil
	}

	s.mu.Lock()
	transport, ok := s.transports[transportID]
	if !ok {
		s.mu.Unlock()
		return nil, domain.ErrTransportNotFound
	}

	report := &SeatReport{
		TransportID:    transport.ID,
		TotalSeats:     transport.TotalSeats,
		AvailableCount: transport.AvailableCount(),
		AvailableSeats: transport.AvailableSeats(),
	}
	s.mu.Unlock()

	s.storeSeatReport(ctx, report)

	return report, nil
}

func seatCacheKey(transportID string) string {
	return fmt.Sprintf("seats:%s", transportID)
}

func (s *ReservationService) cachedSeatReport(ctx context.Context, transportID string) *SeatReport {
	if s.cache == nil {
		return nil
	}

	data, err := s.cache.Get(ctx, seatCacheKey(transportID)).Result()
	if err != nil {
		return nil
	}

	var report SeatReport
	if err := json.Unmarshal([]byte(data), &report); err != nil {
		return nil
	}
	return &report
}

func (s *ReservationService) storeSeatReport(ctx context.Context, report *SeatReport) {
	if s.cache == nil {
		return
	}

	data, err := json.Marshal(report)
	if err != nil {
		return
	}

	if err := s.cache.Set(ctx, seatCacheKey(report.TransportID), data, seatCacheTTL).Err(); err != nil {
		log.Printf("Failed to cache seats for %s: %v", report.TransportID, err)
	}
}

func (s *ReservationService) invalidateSeatCache(ctx context.Context, transportID string) {
	if s.cache == nil {
		return
	}

	if err := s.cache.Del(ctx, seatCacheKey(transportID)).Err(); err != nil {
		log.Printf("Failed to invalidate seat cache for %s: %v", transportID, err)
	}
}

// persist writes a full snapshot of the catalogs. Callers must hold the
// mutex. Failures never roll back the in-memory mutation.
func (s *ReservationService) persist(ctx context.Context) {
	seats := make(map[string][]int, len(s.transports))
	for id, transport := range s.transports {
		seats[id] = transport.AvailableSeats()
	}

	users := make(map[string]*domain.User, len(s.users))
	for id, user := range s.users {
		users[id] = user
	}

	snap := &domain.Snapshot{
		Tickets:          append([]*domain.Ticket(nil), s.tickets...),
		TicketCounter:    s.ticketCounter,
		Users:            users,
		SeatsByTransport: seats,
	}

	if err := s.store.Save(ctx, snap); err != nil {
		log.Printf("Failed to save snapshot: %v", err)
	}
}
