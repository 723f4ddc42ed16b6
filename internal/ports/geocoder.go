package ports

import (
	"context"
	"errors"

	"dispatch-route-planner/internal/domain"
)

// ErrNoMatch is returned when the geocoding service resolves zero results
// for an address.
var ErrNoMatch = errors.New("no geocode match")

// Port: forward geocoding, limited to the single best result.
type Geocoder interface {
	// Geocode resolves a free-text address to coordinates.
	Geocode(ctx context.Context, address string) (domain.Coordinates, error)
}
