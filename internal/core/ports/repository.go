package ports

import (
	"context"
	"errors"

	"github.com/Mokshithanaidu/goreservee/internal/core/domain"
)

// ErrNoSnapshot signals that the store holds no previously persisted
// state, i.e. a first run.
var ErrNoSnapshot = errors.New("no snapshot found")

// SnapshotStore persists the full reservation state. Save replaces any
// previous snapshot wholesale; there is no incremental log. Load returns
// ErrNoSnapshot when nothing has been persisted yet.
type SnapshotStore interface {
	Load(ctx context.Context) (*domain.Snapshot, error)
	Save(ctx context.Context, snap *domain.Snapshot) error
}
