package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mokshithanaidu/goreservee/internal/adapter/repository/file"
	"github.com/Mokshithanaidu/goreservee/internal/core/domain"
	"github.com/Mokshithanaidu/goreservee/internal/core/ports"
)

func TestSnapshotStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "reservations.json")
	store := file.NewSnapshotStore(path)

	snap := &domain.Snapshot{
		Tickets: []*domain.Ticket{
			{
				ID: "TKT001000", UserID: "USER0001", TransportID: "BUS001",
				TransportType: domain.KindBus, SeatNumber: 5,
				Source: "Mumbai", Destination: "Pune", Price: 750,
				BookedAt: time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC),
				Status:   domain.TicketConfirmed,
			},
		},
		TicketCounter: 1001,
		Users: map[string]*domain.User{
			"USER0001": {ID: "USER0001", Name: "Alice", Email: "alice@example.com", Phone: "111"},
		},
		SeatsByTransport: map[string][]int{
			"BUS001": {1, 2, 3, 4},
		},
	}

	require.NoError(t, store.Save(context.Background(), snap))

	loaded, err := store.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, snap.TicketCounter, loaded.TicketCounter)
	assert.Equal(t, snap.Users, loaded.Users)
	assert.Equal(t, snap.SeatsByTransport, loaded.SeatsByTransport)
	require.Len(t, loaded.Tickets, 1)
	assert.Equal(t, "TKT001000", loaded.Tickets[0].ID)
	assert.True(t, snap.Tickets[0].BookedAt.Equal(loaded.Tickets[0].BookedAt))
}

func TestSnapshotStore_LoadMissingFile(t *testing.T) {
	store := file.NewSnapshotStore(filepath.Join(t.TempDir(), "missing.json"))

	snap, err := store.Load(context.Background())

	assert.ErrorIs(t, err, ports.ErrNoSnapshot)
	assert.Nil(t, snap)
}

func TestSnapshotStore_LoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reservations.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	store := file.NewSnapshotStore(path)

	snap, err := store.Load(context.Background())

	assert.Error(t, err)
	assert.NotErrorIs(t, err, ports.ErrNoSnapshot)
	assert.Nil(t, snap)
}

func TestSnapshotStore_SaveOverwritesPrevious(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reservations.json")
	store := file.NewSnapshotStore(path)

	first := &domain.Snapshot{TicketCounter: 1000}
	second := &domain.Snapshot{TicketCounter: 1005}

	require.NoError(t, store.Save(context.Background(), first))
	require.NoError(t, store.Save(context.Background(), second))

	loaded, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1005, loaded.TicketCounter)

	// no temp file left behind
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}
