package services

import (
	"context"
	"errors"
	"testing"

	"dispatch-route-planner/internal/domain"
	"dispatch-route-planner/internal/ports"
	"dispatch-route-planner/internal/registry"
)

type mockOptimizer struct {
	plan   ports.RoutePlan
	err    error
	onCall func(req ports.OptimizeRequest)
}

func (m *mockOptimizer) OptimizeRoute(ctx context.Context, req ports.OptimizeRequest) (ports.RoutePlan, error) {
	if m.onCall != nil {
		m.onCall(req)
	}
	return m.plan, m.err
}

type mockRoads struct {
	path ports.RoadPath
	err  error
}

func (m *mockRoads) Route(ctx context.Context, waypoints []domain.Coordinates) (ports.RoadPath, error) {
	return m.path, m.err
}

func newOptimizeService(t *testing.T, stops int, opt ports.RouteOptimizer, roads ports.RoadRouter) (*OptimizeService, *registry.Registry, []domain.Stop) {
	t.Helper()

	reg := registry.New(nil)
	added := make([]domain.Stop, 0, stops)
	for i := 0; i < stops; i++ {
		s, err := reg.AddAt(context.Background(), domain.Coordinates{Lat: float64(i), Lon: float64(i)})
		if err != nil {
			t.Fatalf("add stop: %v", err)
		}
		added = append(added, s)
	}

	svc := &OptimizeService{
		Optimizer: opt,
		Roads:     roads,
		Registry:  reg,
		Guard:     &FlowGuard{},
		Currency:  "VND",
	}
	return svc, reg, added
}

func TestCalculateTooFewStops(t *testing.T) {
	svc, _, _ := newOptimizeService(t, 1, &mockOptimizer{}, nil)

	if _, err := svc.Calculate(context.Background(), "van"); !errors.Is(err, ErrTooFewStops) {
		t.Fatalf("err = %v, want ErrTooFewStops", err)
	}
}

func TestCalculateNormalizesAndAttachesGeometry(t *testing.T) {
	roads := &mockRoads{path: ports.RoadPath{
		Geometry: []domain.Coordinates{{Lat: 0, Lon: 0}, {Lat: 1, Lon: 1}},
		Steps:    []domain.NavigationStep{{Instruction: "Depart"}},
	}}

	opt := &mockOptimizer{}
	svc, reg, stops := newOptimizeService(t, 3, opt, roads)
	depotID := stops[0].ID

	// Optimizer forgets the depot; normalization must prepend it.
	opt.plan = ports.RoutePlan{
		OptimizedOrder: []string{stops[2].ID, stops[1].ID},
		Stats:          domain.RouteStats{TotalDistanceKm: 12},
	}

	route, err := svc.Calculate(context.Background(), "truck")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if route.OptimizedOrder[0] != depotID {
		t.Fatalf("order[0] = %q, want depot %q", route.OptimizedOrder[0], depotID)
	}
	if route.Segments == nil {
		t.Fatal("segments should default to an empty list")
	}
	if route.Stats.VehicleType != "truck" {
		t.Fatalf("vehicle type = %q, want truck", route.Stats.VehicleType)
	}
	if route.Stats.Currency != "VND" {
		t.Fatalf("currency = %q, want VND", route.Stats.Currency)
	}
	if len(route.PathPolyline) != 2 || len(route.NavigationInstructions) != 1 {
		t.Fatal("road geometry should be attached")
	}

	installed := reg.Route()
	if installed == nil || installed.OptimizedOrder[0] != depotID {
		t.Fatal("result should be installed in the registry")
	}
}

func TestCalculateRoadFailureNonFatal(t *testing.T) {
	opt := &mockOptimizer{}
	roads := &mockRoads{err: errors.New("all mirrors failed")}
	svc, reg, stops := newOptimizeService(t, 2, opt, roads)

	opt.plan = ports.RoutePlan{OptimizedOrder: []string{stops[0].ID, stops[1].ID}}

	route, err := svc.Calculate(context.Background(), "")
	if err != nil {
		t.Fatalf("road failure must not fail the calculation: %v", err)
	}
	if len(route.PathPolyline) != 0 || len(route.NavigationInstructions) != 0 {
		t.Fatal("geometry should be empty on road failure")
	}
	if reg.Route() == nil {
		t.Fatal("result should still be installed")
	}
}

func TestCalculateOptimizerFailureKeepsPriorResult(t *testing.T) {
	opt := &mockOptimizer{}
	svc, reg, stops := newOptimizeService(t, 2, opt, nil)

	opt.plan = ports.RoutePlan{OptimizedOrder: []string{stops[0].ID, stops[1].ID}}
	if _, err := svc.Calculate(context.Background(), "van"); err != nil {
		t.Fatalf("first calculation: %v", err)
	}
	prior := reg.Route()
	if prior == nil {
		t.Fatal("first result should be installed")
	}

	opt.err = errors.New("model unavailable")
	if _, err := svc.Calculate(context.Background(), "van"); err == nil {
		t.Fatal("expected optimizer failure to surface")
	}

	after := reg.Route()
	if after == nil || after.OptimizedOrder[0] != prior.OptimizedOrder[0] {
		t.Fatal("prior result should be untouched after a failure")
	}
}

func TestCalculateDropsStaleResult(t *testing.T) {
	opt := &mockOptimizer{}
	svc, reg, stops := newOptimizeService(t, 2, opt, nil)

	opt.plan = ports.RoutePlan{OptimizedOrder: []string{stops[0].ID, stops[1].ID}}
	// The stop set mutates while the optimizer call is in flight.
	opt.onCall = func(ports.OptimizeRequest) {
		if _, err := reg.AddAt(context.Background(), domain.Coordinates{Lat: 9, Lon: 9}); err != nil {
			t.Errorf("concurrent add: %v", err)
		}
	}

	if _, err := svc.Calculate(context.Background(), "van"); err == nil {
		t.Fatal("stale result should surface an error")
	}
	if reg.Route() != nil {
		t.Fatal("stale result must not be installed")
	}
}
