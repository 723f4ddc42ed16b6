package domain

// Segment is the estimate for one leg between two consecutive stops
// in the optimized order.
type Segment struct {
	FromID      string  `json:"fromId"`
	ToID        string  `json:"toId"`
	DistanceKm  float64 `json:"distanceKm"`
	TimeMinutes float64 `json:"timeMinutes"`
}

// RouteStats aggregates the optimizer's totals for a plan.
// Monetary fields are expressed in the configured local currency.
type RouteStats struct {
	TotalDistanceKm  float64 `json:"totalDistanceKm"`
	TotalTimeMinutes float64 `json:"totalTimeMinutes"`
	FuelCost         float64 `json:"fuelCost"`
	TollCost         float64 `json:"tollCost"`
	TotalCost        float64 `json:"totalCost"`
	Currency         string  `json:"currency,omitempty"`
	VehicleType      string  `json:"vehicleType"`
	Advice           string  `json:"advice,omitempty"`
}

// NavigationStep is one human-readable turn instruction derived from
// road-routing output.
type NavigationStep struct {
	Instruction     string  `json:"instruction"`
	DistanceMeters  float64 `json:"distanceMeters"`
	DurationSeconds float64 `json:"durationSeconds"`
	Maneuver        string  `json:"maneuver"`
}

// RouteResult is the reconciled output of one optimization run:
// the optimizer's ordering and estimates merged with the road-routing
// service's geometry and turn steps.
//
// OptimizedOrder always starts with the depot id (enforced by
// normalization, never trusted from the external call). PathPolyline and
// NavigationInstructions are empty when every road-routing mirror failed;
// callers then fall back to straight lines between stops.
type RouteResult struct {
	OptimizedOrder         []string         `json:"optimizedOrder"`
	Segments               []Segment        `json:"segments"`
	Stats                  RouteStats       `json:"stats"`
	PathPolyline           []Coordinates    `json:"pathPolyline,omitempty"`
	NavigationInstructions []NavigationStep `json:"navigationInstructions,omitempty"`
}
