package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"dispatch-route-planner/internal/domain"
	"dispatch-route-planner/internal/ports"
)

const optimizeSystemPrompt = `You are a delivery route optimizer.
Given a depot, delivery stops and a vehicle profile, produce a visiting order that minimizes total travel time.
Return ONLY a JSON object:
{
  "optimizedOrder": [stop ids, depot id first],
  "segments": [{"fromId", "toId", "distanceKm", "timeMinutes"} for each consecutive pair],
  "stats": {"totalDistanceKm", "totalTimeMinutes", "fuelCost", "tollCost", "totalCost", "advice"}
}
All costs in the requested currency, distances in kilometers, times in minutes.
"advice" is one short free-text note about the route (traffic, tolls, ordering rationale).
No prose, no markdown.`

type optimizePayload struct {
	Depot    ports.OptimizeStop   `json:"depot"`
	Stops    []ports.OptimizeStop `json:"stops"`
	Vehicle  vehiclePayload       `json:"vehicle"`
	Currency string               `json:"currency"`
}

type vehiclePayload struct {
	Label              string  `json:"label"`
	FuelLitersPer100Km float64 `json:"fuelLitersPer100Km"`
	TollRatePerKm      float64 `json:"tollRatePerKm"`
	Constraints        string  `json:"constraints"`
}

type optimizeResult struct {
	OptimizedOrder []string         `json:"optimizedOrder"`
	Segments       []domain.Segment `json:"segments"`
	Stats          struct {
		TotalDistanceKm  float64 `json:"totalDistanceKm"`
		TotalTimeMinutes float64 `json:"totalTimeMinutes"`
		FuelCost         float64 `json:"fuelCost"`
		TollCost         float64 `json:"tollCost"`
		TotalCost        float64 `json:"totalCost"`
		Advice           string  `json:"advice"`
	} `json:"stats"`
}

// OptimizeRoute implements ports.RouteOptimizer.
func (c *Client) OptimizeRoute(ctx context.Context, req ports.OptimizeRequest) (ports.RoutePlan, error) {
	payload, err := json.Marshal(optimizePayload{
		Depot: req.Depot,
		Stops: req.Stops,
		Vehicle: vehiclePayload{
			Label:              req.Vehicle.Label,
			FuelLitersPer100Km: req.Vehicle.FuelLitersPer100Km,
			TollRatePerKm:      req.Vehicle.TollRatePerKm,
			Constraints:        req.Vehicle.Constraints,
		},
		Currency: req.Currency,
	})
	if err != nil {
		return ports.RoutePlan{}, fmt.Errorf("optimize route: marshal request: %w", err)
	}

	out, err := c.chat(ctx, optimizeSystemPrompt, string(payload))
	if err != nil {
		return ports.RoutePlan{}, fmt.Errorf("optimize route: %w", err)
	}

	raw, err := extractJSON(out, jsonObjectRe)
	if err != nil {
		return ports.RoutePlan{}, fmt.Errorf("optimize route: %w", err)
	}

	var decoded optimizeResult
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return ports.RoutePlan{}, fmt.Errorf("optimize route: parse model output: %w", err)
	}

	if len(decoded.OptimizedOrder) == 0 {
		return ports.RoutePlan{}, fmt.Errorf("optimize route: model returned empty order")
	}

	return ports.RoutePlan{
		OptimizedOrder: decoded.OptimizedOrder,
		Segments:       decoded.Segments,
		Stats: domain.RouteStats{
			TotalDistanceKm:  decoded.Stats.TotalDistanceKm,
			TotalTimeMinutes: decoded.Stats.TotalTimeMinutes,
			FuelCost:         decoded.Stats.FuelCost,
			TollCost:         decoded.Stats.TollCost,
			TotalCost:        decoded.Stats.TotalCost,
			Advice:           decoded.Stats.Advice,
		},
	}, nil
}
