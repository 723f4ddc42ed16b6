package ports

import (
	"context"

	"dispatch-route-planner/internal/domain"
)

// RoadPath is real road geometry plus flattened turn-by-turn steps for an
// ordered list of waypoints.
type RoadPath struct {
	Geometry []domain.Coordinates
	Steps    []domain.NavigationStep
}

// Port: the external road-routing service (OSRM-compatible).
type RoadRouter interface {
	// Route fetches geometry and navigation steps through the waypoints in
	// order. Implementations may try several mirrors; an error means every
	// mirror failed and the caller should fall back to straight lines.
	Route(ctx context.Context, waypoints []domain.Coordinates) (RoadPath, error)
}
