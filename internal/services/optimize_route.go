package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"dispatch-route-planner/internal/domain"
	"dispatch-route-planner/internal/platform/obs"
	"dispatch-route-planner/internal/ports"
	"dispatch-route-planner/internal/registry"
)

// ErrTooFewStops is returned before any external call when fewer than two
// stops exist.
var ErrTooFewStops = errors.New("at least 2 stops are required")

// OptimizeService orchestrates one route computation: optimizer call,
// response normalization, road-geometry enrichment, atomic result install.
//
// Failure semantics follow the call order: an optimizer failure surfaces an
// error and leaves the previous route result untouched; a road-routing
// failure is non-fatal and only costs the real geometry.
type OptimizeService struct {
	Optimizer ports.RouteOptimizer
	Roads     ports.RoadRouter
	Registry  *registry.Registry
	Guard     *FlowGuard
	Metrics   *obs.Collector

	// Currency labels all monetary fields requested from the optimizer.
	Currency string
}

// Calculate runs the full orchestration for the current stop set using the
// given vehicle profile label (empty selects the default profile).
// A second concurrent calculation is rejected with ErrBusy.
func (s *OptimizeService) Calculate(ctx context.Context, vehicleLabel string) (_ *domain.RouteResult, err error) {
	// The stop list and its generation are read as one atomic pair: the
	// result is computed against exactly this snapshot, and if the set
	// mutates before the install, the result is dropped rather than shown
	// stale.
	stops, gen := s.Registry.StopsWithGeneration()
	if len(stops) < 2 {
		return nil, ErrTooFewStops
	}

	if err := s.Guard.TryStart("calculating route"); err != nil {
		return nil, err
	}
	defer s.Guard.Finish()

	defer obs.Time(ctx, "optimize.calculate")(&err)
	start := time.Now()

	if s.Metrics != nil {
		s.Metrics.OptimizationsRun.Inc()
	}

	profile, ok := domain.ProfileByLabel(vehicleLabel)
	if !ok {
		profile = domain.DefaultProfile()
	}

	req := buildOptimizeRequest(stops, profile, s.Currency)

	plan, err := s.Optimizer.OptimizeRoute(ctx, req)
	if err != nil {
		if s.Metrics != nil {
			s.Metrics.OptimizeFailures.Inc()
		}
		return nil, fmt.Errorf("optimize route: %w", err)
	}

	plan = NormalizePlan(plan, req.Depot.ID, profile.Label)
	plan.Stats.Currency = s.Currency

	result := &domain.RouteResult{
		OptimizedOrder: plan.OptimizedOrder,
		Segments:       plan.Segments,
		Stats:          plan.Stats,
	}

	if s.Roads != nil {
		if waypoints := orderedCoordinates(stops, plan.OptimizedOrder); len(waypoints) >= 2 {
			path, roadErr := s.Roads.Route(ctx, waypoints)
			if roadErr != nil {
				// Straight-line rendering is the fallback; the plan itself
				// is still valid.
				log.Printf("road geometry unavailable: %v", roadErr)
			} else {
				result.PathPolyline = path.Geometry
				result.NavigationInstructions = path.Steps
			}
		}
	}

	if !s.Registry.SetRouteAt(ctx, gen, result) {
		return nil, errors.New("optimize route: stop set changed during calculation")
	}

	if s.Metrics != nil {
		s.Metrics.OptimizeDuration.Observe(time.Since(start).Seconds())
	}

	return result, nil
}

// buildOptimizeRequest splits the stop set into depot and remaining stops.
// The flagged depot wins; with no flag the first stop stands in.
func buildOptimizeRequest(stops []domain.Stop, profile domain.VehicleProfile, currency string) ports.OptimizeRequest {
	depotIdx := 0
	for i, s := range stops {
		if s.IsDepot {
			depotIdx = i
			break
		}
	}

	req := ports.OptimizeRequest{
		Depot:    toOptimizeStop(stops[depotIdx]),
		Stops:    make([]ports.OptimizeStop, 0, len(stops)-1),
		Vehicle:  profile,
		Currency: currency,
	}
	for i, s := range stops {
		if i != depotIdx {
			req.Stops = append(req.Stops, toOptimizeStop(s))
		}
	}
	return req
}

func toOptimizeStop(s domain.Stop) ports.OptimizeStop {
	return ports.OptimizeStop{
		ID:          s.ID,
		DisplayName: s.DisplayName,
		Coordinates: s.Coordinates,
		Zone:        s.Zone,
	}
}

// orderedCoordinates resolves the normalized order against known stops,
// dropping ids the optimizer invented.
func orderedCoordinates(stops []domain.Stop, order []string) []domain.Coordinates {
	byID := make(map[string]domain.Coordinates, len(stops))
	for _, s := range stops {
		byID[s.ID] = s.Coordinates
	}

	coords := make([]domain.Coordinates, 0, len(order))
	for _, id := range order {
		if c, ok := byID[id]; ok {
			coords = append(coords, c)
		}
	}
	return coords
}
