package services

import (
	"errors"
	"sync"
)

// ErrBusy is returned when a flow is triggered while a previous run of the
// same flow is still in flight.
var ErrBusy = errors.New("operation already in progress")

// FlowGuard is a one-at-a-time task guard with a human-readable status, the
// state-machine replacement for boolean "isCalculating"-style flags. One
// guard instance exists per flow (import, optimize); no two runs of the same
// flow ever overlap.
type FlowGuard struct {
	mu      sync.Mutex
	running bool
	status  string
}

// TryStart claims the guard, or returns ErrBusy if a run is in flight.
func (g *FlowGuard) TryStart(status string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.running {
		return ErrBusy
	}
	g.running = true
	g.status = status
	return nil
}

// SetStatus updates the incremental status message of the running flow.
func (g *FlowGuard) SetStatus(status string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.status = status
}

// Finish releases the guard.
func (g *FlowGuard) Finish() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.running = false
	g.status = ""
}

// Status reports whether the flow is running and its current message.
func (g *FlowGuard) Status() (bool, string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.running, g.status
}
