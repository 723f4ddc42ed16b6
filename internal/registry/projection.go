package registry

import "dispatch-route-planner/internal/domain"

// View projections are pure functions over the current stop list and route
// result, recomputed on demand. Nothing here is separately maintained state.

// UnzonedGroup labels stops that carry no zone.
const UnzonedGroup = "Unzoned"

// ZoneGroup is one display group of stops sharing a zone label.
type ZoneGroup struct {
	Zone  string        `json:"zone"`
	Stops []domain.Stop `json:"stops"`
}

// GroupByZone groups stops by zone in first-appearance order. Stops with an
// empty zone fall into the Unzoned group.
func GroupByZone(stops []domain.Stop) []ZoneGroup {
	index := make(map[string]int)
	groups := make([]ZoneGroup, 0)

	for _, s := range stops {
		zone := s.Zone
		if zone == "" {
			zone = UnzonedGroup
		}

		i, ok := index[zone]
		if !ok {
			i = len(groups)
			index[zone] = i
			groups = append(groups, ZoneGroup{Zone: zone})
		}
		groups[i].Stops = append(groups[i].Stops, s)
	}

	return groups
}

// OrderedStops renders the optimized visiting order against the current stop
// list. Ids the registry no longer knows are dropped; a nil route yields the
// stop list as-is.
func OrderedStops(stops []domain.Stop, route *domain.RouteResult) []domain.Stop {
	if route == nil || len(route.OptimizedOrder) == 0 {
		out := make([]domain.Stop, len(stops))
		copy(out, stops)
		return out
	}

	byID := make(map[string]domain.Stop, len(stops))
	for _, s := range stops {
		byID[s.ID] = s
	}

	out := make([]domain.Stop, 0, len(route.OptimizedOrder))
	for _, id := range route.OptimizedOrder {
		if s, ok := byID[id]; ok {
			out = append(out, s)
		}
	}
	return out
}
