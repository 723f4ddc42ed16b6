package registry

import (
	"testing"

	"dispatch-route-planner/internal/domain"
)

func TestGroupByZone(t *testing.T) {
	stops := []domain.Stop{
		{ID: "1", Zone: "District 1"},
		{ID: "2", Zone: ""},
		{ID: "3", Zone: "District 3"},
		{ID: "4", Zone: "District 1"},
	}

	groups := GroupByZone(stops)
	if len(groups) != 3 {
		t.Fatalf("groups = %d, want 3", len(groups))
	}

	if groups[0].Zone != "District 1" || len(groups[0].Stops) != 2 {
		t.Fatalf("group 0 = %q (%d stops)", groups[0].Zone, len(groups[0].Stops))
	}
	if groups[1].Zone != UnzonedGroup {
		t.Fatalf("group 1 = %q, want %q", groups[1].Zone, UnzonedGroup)
	}
	if groups[2].Zone != "District 3" {
		t.Fatalf("group 2 = %q, want District 3", groups[2].Zone)
	}
}

func TestOrderedStopsDropsUnknownIDs(t *testing.T) {
	stops := []domain.Stop{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	route := &domain.RouteResult{OptimizedOrder: []string{"b", "ghost", "a"}}

	ordered := OrderedStops(stops, route)
	if len(ordered) != 2 {
		t.Fatalf("ordered = %d, want 2", len(ordered))
	}
	if ordered[0].ID != "b" || ordered[1].ID != "a" {
		t.Fatalf("order = [%s %s], want [b a]", ordered[0].ID, ordered[1].ID)
	}
}

func TestOrderedStopsWithoutRoute(t *testing.T) {
	stops := []domain.Stop{{ID: "a"}, {ID: "b"}}

	ordered := OrderedStops(stops, nil)
	if len(ordered) != 2 || ordered[0].ID != "a" {
		t.Fatalf("nil route should return stops as-is, got %v", ordered)
	}
}
