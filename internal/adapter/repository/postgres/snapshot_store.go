package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/Mokshithanaidu/goreservee/internal/core/domain"
	"github.com/Mokshithanaidu/goreservee/internal/core/ports"
)

// SnapshotStore persists the reservation snapshot in Postgres. Each Save
// replaces the previous snapshot inside one transaction, matching the
// full-catalog write contract of the port.
type SnapshotStore struct {
	db *sql.DB
}

func NewSnapshotStore(db *sql.DB) *SnapshotStore {
	return &SnapshotStore{db: db}
}

// EnsureSchema creates the snapshot tables when they do not exist yet.
func (s *SnapshotStore) EnsureSchema(ctx context.Context) error {
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS reservation_counters (
			name TEXT PRIMARY KEY,
			value INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS reservation_users (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL,
			phone TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS reservation_tickets (
			id TEXT PRIMARY KEY,
			seq INTEGER NOT NULL,
			user_id TEXT NOT NULL,
			transport_id TEXT NOT NULL,
			transport_type TEXT NOT NULL,
			seat_number INTEGER NOT NULL,
			source TEXT NOT NULL,
			destination TEXT NOT NULL,
			price DOUBLE PRECISION NOT NULL,
			booked_at TIMESTAMPTZ NOT NULL,
			status TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS transport_seats (
			transport_id TEXT PRIMARY KEY,
			seats INTEGER[] NOT NULL
		)`,
	}

	for _, stmt := range ddl {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create snapshot schema: %w", err)
		}
	}
	return nil
}

func (s *SnapshotStore) Save(ctx context.Context, snap *domain.Snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin snapshot transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"reservation_counters", "reservation_users", "reservation_tickets", "transport_seats"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO reservation_counters (name, value) VALUES ('ticket', $1)`,
		snap.TicketCounter,
	); err != nil {
		return fmt.Errorf("failed to save ticket counter: %w", err)
	}

	for _, user := range snap.Users {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO reservation_users (id, name, email, phone) VALUES ($1, $2, $3, $4)`,
			user.ID, user.Name, user.Email, user.Phone,
		); err != nil {
			return fmt.Errorf("failed to save user %s: %w", user.ID, err)
		}
	}

	for i, ticket := range snap.Tickets {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO reservation_tickets
			 (id, seq, user_id, transport_id, transport_type, seat_number, source, destination, price, booked_at, status)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			ticket.ID, i, ticket.UserID, ticket.TransportID, string(ticket.TransportType),
			ticket.SeatNumber, ticket.Source, ticket.Destination, ticket.Price,
			ticket.BookedAt, string(ticket.Status),
		); err != nil {
			return fmt.Errorf("failed to save ticket %s: %w", ticket.ID, err)
		}
	}

	for transportID, seats := range snap.SeatsByTransport {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO transport_seats (transport_id, seats) VALUES ($1, $2)`,
			transportID, pq.Array(seats),
		); err != nil {
			return fmt.Errorf("failed to save seats for %s: %w", transportID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}
	return nil
}

func (s *SnapshotStore) Load(ctx context.Context) (*domain.Snapshot, error) {
	snap := &domain.Snapshot{
		Users:            make(map[string]*domain.User),
		SeatsByTransport: make(map[string][]int),
	}

	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM reservation_counters WHERE name = 'ticket'`,
	).Scan(&snap.TicketCounter)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ports.ErrNoSnapshot
		}
		return nil, fmt.Errorf("failed to load ticket counter: %w", err)
	}

	userRows, err := s.db.QueryContext(ctx,
		`SELECT id, name, email, phone FROM reservation_users`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	defer userRows.Close()

	for userRows.Next() {
		var user domain.User
		if err := userRows.Scan(&user.ID, &user.Name, &user.Email, &user.Phone); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		snap.Users[user.ID] = &user
	}
	if err := userRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}

	ticketRows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, transport_id, transport_type, seat_number, source, destination, price, booked_at, status
		 FROM reservation_tickets
		 ORDER BY seq`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load tickets: %w", err)
	}
	defer ticketRows.Close()

	for ticketRows.Next() {
		var ticket domain.Ticket
		if err := ticketRows.Scan(
			&ticket.ID, &ticket.UserID, &ticket.TransportID, &ticket.TransportType,
			&ticket.SeatNumber, &ticket.Source, &ticket.Destination, &ticket.Price,
			&ticket.BookedAt, &ticket.Status,
		); err != nil {
			return nil, fmt.Errorf("failed to scan ticket: %w", err)
		}
		snap.Tickets = append(snap.Tickets, &ticket)
	}
	if err := ticketRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to load tickets: %w", err)
	}

	seatRows, err := s.db.QueryContext(ctx,
		`SELECT transport_id, seats FROM transport_seats`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load seat availability: %w", err)
	}
	defer seatRows.Close()

	for seatRows.Next() {
		var transportID string
		var seats pq.Int64Array
		if err := seatRows.Scan(&transportID, &seats); err != nil {
			return nil, fmt.Errorf("failed to scan seat availability: %w", err)
		}
		numbers := make([]int, len(seats))
		for i, seat := range seats {
			numbers[i] = int(seat)
		}
		snap.SeatsByTransport[transportID] = numbers
	}
	if err := seatRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to load seat availability: %w", err)
	}

	return snap, nil
}
