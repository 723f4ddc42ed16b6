package ports

import (
	"context"

	"dispatch-route-planner/internal/domain"
)

// Snapshot is the single persisted record: the whole stop list and the last
// route result. There is no versioning; unreadable data is treated as absent.
type Snapshot struct {
	Locations      []domain.Stop       `json:"locations"`
	OptimizedRoute *domain.RouteResult `json:"optimizedRoute"`
}

// Port: best-effort persistence for planner state.
//
// The store is an unreliable cache of the in-memory truth, never the source
// of truth: Load returns an empty snapshot for a missing or corrupt record,
// and callers log-and-ignore Save failures.
type SnapshotStore interface {
	Load(ctx context.Context) (Snapshot, error)
	Save(ctx context.Context, snap Snapshot) error
	Clear(ctx context.Context) error
}
