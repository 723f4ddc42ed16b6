package services

import (
	"dispatch-route-planner/internal/domain"
	"dispatch-route-planner/internal/ports"
)

// NormalizePlan reconciles a raw optimizer response into a trustworthy plan:
//
//   - the depot id is forced to index 0: moved to the front if it appears
//     elsewhere, inserted if the service dropped it entirely;
//   - a missing segment list becomes an empty one;
//   - stats are stamped with the vehicle profile actually used, regardless
//     of what the service echoed back.
//
// The returned order may still reference ids unknown to the registry; those
// are dropped at render time, not here.
func NormalizePlan(plan ports.RoutePlan, depotID, vehicleLabel string) ports.RoutePlan {
	order := make([]string, 0, len(plan.OptimizedOrder)+1)
	order = append(order, depotID)
	for _, id := range plan.OptimizedOrder {
		if id != depotID {
			order = append(order, id)
		}
	}
	plan.OptimizedOrder = order

	if plan.Segments == nil {
		plan.Segments = []domain.Segment{}
	}

	plan.Stats.VehicleType = vehicleLabel

	return plan
}
