package services

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"dispatch-route-planner/internal/domain"
	"dispatch-route-planner/internal/platform/obs"
	"dispatch-route-planner/internal/ports"
	"dispatch-route-planner/internal/registry"
)

// FallbackJitterDegrees bounds the random offset applied to the reference
// coordinate when an address cannot be geocoded, so fallback markers spread
// out instead of stacking on one point.
const FallbackJitterDegrees = 0.01

// DefaultGeocodeDelay spaces sequential geocoding calls to respect the
// external service's rate expectations.
const DefaultGeocodeDelay = 800 * time.Millisecond

// ImportService is the order import pipeline: one extraction call, then one
// geocoding call per order, strictly sequential with a fixed delay.
//
// Per-address geocoding failures degrade to a placeholder stop near the
// fallback reference point; only an extraction failure (or an empty
// extraction result) aborts the whole import.
type ImportService struct {
	Extractor ports.OrderExtractor
	Geocoder  ports.Geocoder
	Registry  *registry.Registry
	Guard     *FlowGuard
	Metrics   *obs.Collector

	// Fallback is the reference coordinate for unresolved addresses.
	Fallback domain.Coordinates

	// Delay between geocoding calls; DefaultGeocodeDelay when zero is not
	// explicitly wanted. Tests set it to a negligible value.
	Delay time.Duration
}

// ImportSummary describes one finished import batch.
type ImportSummary struct {
	Total      int
	Resolved   int
	Unresolved int
	Stops      []domain.Stop
}

// ImportText runs the full pipeline over one pasted text block.
// A second concurrent import is rejected with ErrBusy.
func (s *ImportService) ImportText(ctx context.Context, text string) (_ ImportSummary, err error) {
	if err := s.Guard.TryStart("parsing orders"); err != nil {
		return ImportSummary{}, err
	}
	defer s.Guard.Finish()

	defer obs.Time(ctx, "import.text")(&err)
	start := time.Now()

	orders, err := s.Extractor.ExtractOrders(ctx, text)
	if err != nil {
		return ImportSummary{}, fmt.Errorf("import orders: extract: %w", err)
	}
	if len(orders) == 0 {
		return ImportSummary{}, ports.ErrNoOrders
	}

	s.Guard.SetStatus(fmt.Sprintf("resolving %d addresses", len(orders)))

	stops := make([]domain.Stop, 0, len(orders))
	unresolved := 0

	for i, order := range orders {
		stop := domain.Stop{
			DisplayName:  order.CustomerName,
			Address:      order.Address,
			CustomerName: order.CustomerName,
			PhoneNumber:  order.PhoneNumber,
			Zone:         order.Zone,
		}

		coords, geocodeErr := s.Geocoder.Geocode(ctx, order.Address)
		if geocodeErr != nil {
			// No match and transport failures are treated alike: the stop
			// still exists, parked near the reference point.
			log.Printf("geocode failed addr=%q err=%v", order.Address, geocodeErr)
			stop.Coordinates = s.jitteredFallback()
			stop.DisplayName = order.CustomerName + domain.UnresolvedSuffix
			stop.Zone = domain.UnresolvedZone
			unresolved++
			if s.Metrics != nil {
				s.Metrics.GeocodeFallbacks.Inc()
			}
		} else {
			stop.Coordinates = coords
		}

		stops = append(stops, stop)
		s.Guard.SetStatus(fmt.Sprintf("resolved %d of %d addresses", i+1, len(orders)))

		if i < len(orders)-1 {
			if err := s.pause(ctx); err != nil {
				return ImportSummary{}, err
			}
		}
	}

	added, err := s.Registry.AddBatch(ctx, stops)
	if err != nil {
		return ImportSummary{}, fmt.Errorf("import orders: append batch: %w", err)
	}

	if s.Metrics != nil {
		s.Metrics.ImportsRun.Inc()
		s.Metrics.ImportOrders.Add(float64(len(added)))
		s.Metrics.ImportDuration.Observe(time.Since(start).Seconds())
	}

	return ImportSummary{
		Total:      len(added),
		Resolved:   len(added) - unresolved,
		Unresolved: unresolved,
		Stops:      added,
	}, nil
}

// pause waits the configured inter-call delay, honoring cancellation.
func (s *ImportService) pause(ctx context.Context) error {
	delay := s.Delay
	if delay == 0 {
		delay = DefaultGeocodeDelay
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (s *ImportService) jitteredFallback() domain.Coordinates {
	return domain.Coordinates{
		Lat: s.Fallback.Lat + (rand.Float64()*2-1)*FallbackJitterDegrees,
		Lon: s.Fallback.Lon + (rand.Float64()*2-1)*FallbackJitterDegrees,
	}
}
