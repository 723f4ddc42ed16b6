package dto

import "dispatch-route-planner/internal/domain"

type PlanRequest struct {
	Vehicle string `json:"vehicle"`
}

type SegmentResponse struct {
	FromID      string  `json:"from_id"`
	ToID        string  `json:"to_id"`
	DistanceKm  float64 `json:"distance_km"`
	TimeMinutes float64 `json:"time_minutes"`
}

type StatsResponse struct {
	TotalDistanceKm  float64 `json:"total_distance_km"`
	TotalTimeMinutes float64 `json:"total_time_minutes"`
	FuelCost         float64 `json:"fuel_cost"`
	TollCost         float64 `json:"toll_cost"`
	TotalCost        float64 `json:"total_cost"`
	Currency         string  `json:"currency,omitempty"`
	VehicleType      string  `json:"vehicle_type"`
	Advice           string  `json:"advice,omitempty"`
}

type CoordinateResponse struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type NavigationStepResponse struct {
	Instruction     string  `json:"instruction"`
	DistanceMeters  float64 `json:"distance_meters"`
	DurationSeconds float64 `json:"duration_seconds"`
	Maneuver        string  `json:"maneuver"`
}

type PlanResponse struct {
	OptimizedOrder []string                 `json:"optimized_order"`
	OrderedStops   []StopResponse           `json:"ordered_stops"`
	Segments       []SegmentResponse        `json:"segments"`
	Stats          StatsResponse            `json:"stats"`
	PathPolyline   []CoordinateResponse     `json:"path_polyline,omitempty"`
	Navigation     []NavigationStepResponse `json:"navigation,omitempty"`
}

type VehicleResponse struct {
	Label              string  `json:"label"`
	FuelLitersPer100Km float64 `json:"fuel_liters_per_100km"`
	TollRatePerKm      float64 `json:"toll_rate_per_km"`
	Constraints        string  `json:"constraints"`
}

type ListVehiclesResponse struct {
	Vehicles []VehicleResponse `json:"vehicles"`
}

func FromRoute(route *domain.RouteResult, orderedStops []domain.Stop) PlanResponse {
	res := PlanResponse{
		OptimizedOrder: route.OptimizedOrder,
		OrderedStops:   FromStops(orderedStops),
		Segments:       make([]SegmentResponse, 0, len(route.Segments)),
		Stats: StatsResponse{
			TotalDistanceKm:  route.Stats.TotalDistanceKm,
			TotalTimeMinutes: route.Stats.TotalTimeMinutes,
			FuelCost:         route.Stats.FuelCost,
			TollCost:         route.Stats.TollCost,
			TotalCost:        route.Stats.TotalCost,
			Currency:         route.Stats.Currency,
			VehicleType:      route.Stats.VehicleType,
			Advice:           route.Stats.Advice,
		},
	}

	for _, seg := range route.Segments {
		res.Segments = append(res.Segments, SegmentResponse{
			FromID:      seg.FromID,
			ToID:        seg.ToID,
			DistanceKm:  seg.DistanceKm,
			TimeMinutes: seg.TimeMinutes,
		})
	}

	for _, c := range route.PathPolyline {
		res.PathPolyline = append(res.PathPolyline, CoordinateResponse{Lat: c.Lat, Lon: c.Lon})
	}

	for _, step := range route.NavigationInstructions {
		res.Navigation = append(res.Navigation, NavigationStepResponse{
			Instruction:     step.Instruction,
			DistanceMeters:  step.DistanceMeters,
			DurationSeconds: step.DurationSeconds,
			Maneuver:        step.Maneuver,
		})
	}

	return res
}
