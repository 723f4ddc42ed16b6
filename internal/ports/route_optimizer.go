package ports

import (
	"context"

	"dispatch-route-planner/internal/domain"
)

// OptimizeStop is the subset of stop data sent to the optimization service.
type OptimizeStop struct {
	ID          string             `json:"id"`
	DisplayName string             `json:"displayName"`
	Coordinates domain.Coordinates `json:"coordinates"`
	Zone        string             `json:"zone,omitempty"`
}

// OptimizeRequest carries the depot, the remaining stops and the vehicle
// context for one optimization call.
type OptimizeRequest struct {
	Depot    OptimizeStop
	Stops    []OptimizeStop
	Vehicle  domain.VehicleProfile
	Currency string
}

// RoutePlan is the optimizer's raw answer before normalization: an ordering
// of stop ids, per-leg estimates and aggregate stats. None of it is trusted
// as-is; see services.NormalizePlan.
type RoutePlan struct {
	OptimizedOrder []string
	Segments       []domain.Segment
	Stats          domain.RouteStats
}

// Port: the external text-to-route optimization service.
type RouteOptimizer interface {
	// OptimizeRoute asks the service for a depot-first visiting order.
	OptimizeRoute(ctx context.Context, req OptimizeRequest) (RoutePlan, error)
}
