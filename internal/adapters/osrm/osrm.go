// Package osrm is the road-geometry adapter: it turns an ordered coordinate
// list into real road geometry and turn-by-turn navigation steps using an
// OSRM-compatible routing service, failing over across mirror endpoints.
package osrm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"dispatch-route-planner/internal/domain"
	"dispatch-route-planner/internal/platform/obs"
	"dispatch-route-planner/internal/ports"
)

// MirrorFailovers, when set, counts mirrors skipped after a failure.
type MirrorFailovers interface {
	Inc()
}

// Client queries mirrors in fixed priority order. A mirror is usable when it
// answers HTTP 200 with code "Ok" and at least one route candidate; the
// first usable answer wins. There is no per-mirror retry: the next mirror is
// the retry.
type Client struct {
	session  *http.Client
	mirrors  []string
	failover MirrorFailovers
}

func NewClient(mirrors []string, failover MirrorFailovers) (*Client, error) {
	if len(mirrors) == 0 {
		return nil, errors.New("osrm: mirror list is empty")
	}

	return &Client{
		session:  &http.Client{Timeout: 15 * time.Second},
		mirrors:  mirrors,
		failover: failover,
	}, nil
}

type osrmResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
		Legs []osrmLeg `json:"legs"`
	} `json:"routes"`
}

type osrmLeg struct {
	Steps []osrmStep `json:"steps"`
}

type osrmStep struct {
	Name     string  `json:"name"`
	Distance float64 `json:"distance"`
	Duration float64 `json:"duration"`
	Maneuver struct {
		Type     string `json:"type"`
		Modifier string `json:"modifier"`
	} `json:"maneuver"`
}

// Route implements ports.RoadRouter.
func (c *Client) Route(ctx context.Context, waypoints []domain.Coordinates) (_ ports.RoadPath, err error) {
	defer obs.Time(ctx, "osrm.route")(&err)

	if len(waypoints) < 2 {
		return ports.RoadPath{}, errors.New("osrm: at least 2 waypoints required")
	}

	path := coordinatePath(waypoints)

	var lastErr error
	for _, mirror := range c.mirrors {
		resp, err := c.tryMirror(ctx, mirror, path)
		if err != nil {
			lastErr = err
			log.Printf("osrm mirror failed url=%s err=%v", mirror, err)
			if c.failover != nil {
				c.failover.Inc()
			}
			continue
		}
		return resp, nil
	}

	return ports.RoadPath{}, fmt.Errorf("osrm: all mirrors failed: %w", lastErr)
}

func (c *Client) tryMirror(ctx context.Context, baseURL, path string) (ports.RoadPath, error) {
	url := fmt.Sprintf(
		"%s/route/v1/driving/%s?overview=full&geometries=geojson&steps=true",
		strings.TrimRight(baseURL, "/"), path,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return ports.RoadPath{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.session.Do(req)
	if err != nil {
		return ports.RoadPath{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ports.RoadPath{}, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var decoded osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return ports.RoadPath{}, fmt.Errorf("decode response: %w", err)
	}

	if decoded.Code != "Ok" || len(decoded.Routes) == 0 {
		return ports.RoadPath{}, fmt.Errorf("no usable route (code=%q routes=%d)", decoded.Code, len(decoded.Routes))
	}

	route := decoded.Routes[0]

	geometry := make([]domain.Coordinates, 0, len(route.Geometry.Coordinates))
	for _, pair := range route.Geometry.Coordinates {
		if len(pair) != 2 {
			return ports.RoadPath{}, errors.New("invalid geometry coordinate")
		}
		geometry = append(geometry, domain.Coordinates{Lon: pair[0], Lat: pair[1]})
	}

	steps := flattenLegs(route.Legs)

	return ports.RoadPath{Geometry: geometry, Steps: steps}, nil
}

// flattenLegs merges all legs' steps into one sequence, inserting a
// synthetic "arrived at stop N" marker at every intermediate destination.
func flattenLegs(legs []osrmLeg) []domain.NavigationStep {
	steps := make([]domain.NavigationStep, 0)

	for i, leg := range legs {
		for _, s := range leg.Steps {
			steps = append(steps, domain.NavigationStep{
				Instruction:     Instruction(s.Maneuver.Type, s.Maneuver.Modifier, s.Name),
				DistanceMeters:  s.Distance,
				DurationSeconds: s.Duration,
				Maneuver:        maneuverDescriptor(s.Maneuver.Type, s.Maneuver.Modifier),
			})
		}

		if i < len(legs)-1 {
			steps = append(steps, domain.NavigationStep{
				Instruction: fmt.Sprintf("Arrived at stop %d", i+1),
				Maneuver:    "arrive",
			})
		}
	}

	return steps
}

// coordinatePath renders waypoints as OSRM's "lon,lat;lon,lat" path segment.
func coordinatePath(waypoints []domain.Coordinates) string {
	var b strings.Builder
	for i, w := range waypoints {
		if i > 0 {
			b.WriteByte(';')
		}
		fmt.Fprintf(&b, "%.6f,%.6f", w.Lon, w.Lat)
	}
	return b.String()
}
