package registry

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"dispatch-route-planner/internal/domain"
	"dispatch-route-planner/internal/ports"

	"github.com/google/uuid"
)

// ErrCapacity is returned when an add would exceed domain.MaxStops.
// No external call is made and no state changes.
var ErrCapacity = fmt.Errorf("stop limit reached (max %d)", domain.MaxStops)

// ErrNotFound is returned for operations on an unknown stop id.
var ErrNotFound = errors.New("stop not found")

// Registry owns the ordered stop list, the depot designation, sequential
// display naming, the current selection and the last route result.
//
// Invariants maintained across every mutation:
//   - at most one stop is flagged depot, and it is the earliest-added
//     remaining stop once any stop exists;
//   - the route result is invalidated by any change to the stop set, so a
//     stale plan is never shown against a different stop set;
//   - the selection always refers to an existing stop or nothing.
//
// Every mutation is mirrored to the snapshot store when one is configured.
// Store failures are logged and ignored; in-memory state is the truth.
type Registry struct {
	mu         sync.Mutex
	stops      []domain.Stop
	route      *domain.RouteResult
	selectedID string
	generation uint64

	store ports.SnapshotStore
}

// New creates an empty registry. store may be nil to disable persistence.
func New(store ports.SnapshotStore) *Registry {
	return &Registry{store: store}
}

// Restore loads persisted state, best effort. A missing or corrupt snapshot
// leaves the registry empty; no error reaches the caller.
func (r *Registry) Restore(ctx context.Context) {
	if r.store == nil {
		return
	}

	snap, err := r.store.Load(ctx)
	if err != nil {
		log.Printf("snapshot restore failed: %v", err)
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.stops = snap.Locations
	r.route = snap.OptimizedRoute
}

// AddAt appends a new stop at the given coordinates.
// The first stop ever added becomes the depot with the fixed depot label;
// later stops get the next sequential auto label. The new stop is selected
// and the route result is invalidated.
func (r *Registry) AddAt(ctx context.Context, coords domain.Coordinates) (domain.Stop, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.stops) >= domain.MaxStops {
		return domain.Stop{}, ErrCapacity
	}

	stop := domain.Stop{
		ID:          uuid.NewString(),
		Coordinates: coords,
		Status:      domain.StatusPending,
	}

	if len(r.stops) == 0 {
		stop.IsDepot = true
		stop.DisplayName = domain.DepotLabel
	} else {
		stop.DisplayName = domain.AutoLabel(r.nonDepotCountLocked())
	}

	r.stops = append(r.stops, stop)
	r.selectedID = stop.ID
	r.invalidateLocked()
	r.persistLocked(ctx)

	return stop, nil
}

// AddBatch appends imported stops in one batch, assigning ids. If the
// registry was empty, the first stop of the batch becomes the depot (its
// import-assigned display name is kept). The whole batch is rejected when it
// would exceed the stop limit.
func (r *Registry) AddBatch(ctx context.Context, stops []domain.Stop) ([]domain.Stop, error) {
	if len(stops) == 0 {
		return nil, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.stops)+len(stops) > domain.MaxStops {
		return nil, ErrCapacity
	}

	added := make([]domain.Stop, 0, len(stops))
	for i, stop := range stops {
		stop.ID = uuid.NewString()
		if stop.Status == "" {
			stop.Status = domain.StatusPending
		}
		stop.IsDepot = len(r.stops) == 0 && i == 0

		r.stops = append(r.stops, stop)
		added = append(added, stop)
	}

	r.invalidateLocked()
	r.persistLocked(ctx)

	return added, nil
}

// Remove deletes a stop by id. Removing the depot promotes the earliest
// remaining stop, overwriting its label with the fixed depot label.
// Auto-labeled stops are renumbered to their new sequential position;
// custom-named stops keep their names.
func (r *Registry) Remove(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := -1
	for i, s := range r.stops {
		if s.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrNotFound
	}

	wasDepot := r.stops[idx].IsDepot
	r.stops = append(r.stops[:idx], r.stops[idx+1:]...)

	if wasDepot && len(r.stops) > 0 {
		r.stops[0].IsDepot = true
		r.stops[0].DisplayName = domain.DepotLabel
	}

	seq := 0
	for i := range r.stops {
		if r.stops[i].IsDepot {
			continue
		}
		if domain.IsAutoLabel(r.stops[i].DisplayName) {
			r.stops[i].DisplayName = domain.AutoLabel(seq)
		}
		seq++
	}

	if r.selectedID == id {
		r.selectedID = ""
	}

	r.invalidateLocked()
	r.persistLocked(ctx)

	return nil
}

// Reset clears all stops, the route result, the selection and the persisted
// snapshot. Confirmation is the caller's responsibility.
func (r *Registry) Reset(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.stops = nil
	r.route = nil
	r.selectedID = ""
	r.generation++

	if r.store != nil {
		if err := r.store.Clear(ctx); err != nil {
			log.Printf("snapshot clear failed: %v", err)
		}
	}
}

// Select marks a stop as the current selection.
func (r *Registry) Select(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range r.stops {
		if s.ID == id {
			r.selectedID = id
			return nil
		}
	}
	return ErrNotFound
}

// Deselect clears the selection.
func (r *Registry) Deselect() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.selectedID = ""
}

// Selected returns the currently selected stop, if any.
func (r *Registry) Selected() (domain.Stop, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range r.stops {
		if s.ID == r.selectedID {
			return s, true
		}
	}
	return domain.Stop{}, false
}

// Stops returns a copy of the ordered stop list.
func (r *Registry) Stops() []domain.Stop {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.Stop, len(r.stops))
	copy(out, r.stops)
	return out
}

// StopsWithGeneration returns the stop list together with the generation it
// was read at, under one lock. Callers that compute against the list and
// install via SetRouteAt must use this pair; reading the two separately
// leaves a window where a mutation lands between the reads and the install
// check passes against the wrong stop set.
func (r *Registry) StopsWithGeneration() ([]domain.Stop, uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.Stop, len(r.stops))
	copy(out, r.stops)
	return out, r.generation
}

// Count returns the number of stops.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.stops)
}

// Depot returns the stop flagged as depot, or the first stop if none is
// flagged, mirroring the optimizer precondition.
func (r *Registry) Depot() (domain.Stop, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range r.stops {
		if s.IsDepot {
			return s, true
		}
	}
	if len(r.stops) > 0 {
		return r.stops[0], true
	}
	return domain.Stop{}, false
}

// Route returns the last route result, or nil when none is current.
func (r *Registry) Route() *domain.RouteResult {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.route == nil {
		return nil
	}
	cp := *r.route
	return &cp
}

// Generation returns the mutation counter for the stop set. Long-running
// flows snapshot it before calling external services so a result computed
// against an outdated stop set is never applied.
func (r *Registry) Generation() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.generation
}

// SetRouteAt atomically replaces the route result, but only if the stop set
// has not changed since gen was observed. Returns false when the result was
// discarded as stale.
func (r *Registry) SetRouteAt(ctx context.Context, gen uint64, route *domain.RouteResult) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.generation != gen {
		return false
	}

	r.route = route
	r.persistLocked(ctx)
	return true
}

func (r *Registry) nonDepotCountLocked() int {
	n := 0
	for _, s := range r.stops {
		if !s.IsDepot {
			n++
		}
	}
	return n
}

func (r *Registry) invalidateLocked() {
	r.route = nil
	r.generation++
}

func (r *Registry) persistLocked(ctx context.Context) {
	if r.store == nil {
		return
	}

	snap := ports.Snapshot{
		Locations:      make([]domain.Stop, len(r.stops)),
		OptimizedRoute: r.route,
	}
	copy(snap.Locations, r.stops)

	if err := r.store.Save(ctx, snap); err != nil {
		log.Printf("snapshot write failed: %v", err)
	}
}
