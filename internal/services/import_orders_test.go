package services

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"dispatch-route-planner/internal/domain"
	"dispatch-route-planner/internal/ports"
	"dispatch-route-planner/internal/registry"
)

type mockExtractor struct {
	orders []ports.ExtractedOrder
	err    error
}

func (m *mockExtractor) ExtractOrders(ctx context.Context, text string) ([]ports.ExtractedOrder, error) {
	return m.orders, m.err
}

type mockGeocoder struct {
	coords map[string]domain.Coordinates
}

func (m *mockGeocoder) Geocode(ctx context.Context, address string) (domain.Coordinates, error) {
	c, ok := m.coords[address]
	if !ok {
		return domain.Coordinates{}, ports.ErrNoMatch
	}
	return c, nil
}

func newImportService(extractor ports.OrderExtractor, geocoder ports.Geocoder) (*ImportService, *registry.Registry) {
	reg := registry.New(nil)
	return &ImportService{
		Extractor: extractor,
		Geocoder:  geocoder,
		Registry:  reg,
		Guard:     &FlowGuard{},
		Fallback:  domain.Coordinates{Lat: 10.7769, Lon: 106.7009},
		Delay:     time.Nanosecond,
	}, reg
}

func TestImportAllResolved(t *testing.T) {
	orders := []ports.ExtractedOrder{
		{CustomerName: "A", Address: "addr a", Zone: "Z1"},
		{CustomerName: "B", Address: "addr b", Zone: "Z2"},
		{CustomerName: "C", Address: "addr c", Zone: "Z1"},
	}
	geo := &mockGeocoder{coords: map[string]domain.Coordinates{
		"addr a": {Lat: 1, Lon: 1},
		"addr b": {Lat: 2, Lon: 2},
		"addr c": {Lat: 3, Lon: 3},
	}}

	svc, reg := newImportService(&mockExtractor{orders: orders}, geo)

	summary, err := svc.ImportText(context.Background(), "three orders")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.Total != 3 || summary.Resolved != 3 || summary.Unresolved != 0 {
		t.Fatalf("summary = %+v", summary)
	}
	if reg.Count() != 3 {
		t.Fatalf("registry count = %d, want 3", reg.Count())
	}

	for _, s := range reg.Stops() {
		if strings.Contains(s.DisplayName, domain.UnresolvedSuffix) {
			t.Fatalf("stop %q should not carry the unresolved marker", s.DisplayName)
		}
	}

	// First order of the first import into an empty registry is the depot.
	if !reg.Stops()[0].IsDepot {
		t.Fatal("first imported stop should be depot")
	}
}

func TestImportOneGeocodeFailureDegrades(t *testing.T) {
	orders := []ports.ExtractedOrder{
		{CustomerName: "A", Address: "addr a", Zone: "Z1"},
		{CustomerName: "B", Address: "addr unknown", Zone: "Z2"},
		{CustomerName: "C", Address: "addr c", Zone: "Z1"},
	}
	geo := &mockGeocoder{coords: map[string]domain.Coordinates{
		"addr a": {Lat: 1, Lon: 1},
		"addr c": {Lat: 3, Lon: 3},
	}}

	svc, reg := newImportService(&mockExtractor{orders: orders}, geo)

	summary, err := svc.ImportText(context.Background(), "three orders")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.Total != 3 || summary.Unresolved != 1 {
		t.Fatalf("summary = %+v", summary)
	}

	var fallback *domain.Stop
	for _, s := range reg.Stops() {
		if s.Zone == domain.UnresolvedZone {
			cp := s
			fallback = &cp
		}
	}
	if fallback == nil {
		t.Fatal("no fallback stop found")
	}

	if !strings.HasSuffix(fallback.DisplayName, domain.UnresolvedSuffix) {
		t.Fatalf("fallback label = %q", fallback.DisplayName)
	}
	if math.Abs(fallback.Coordinates.Lat-svc.Fallback.Lat) > FallbackJitterDegrees ||
		math.Abs(fallback.Coordinates.Lon-svc.Fallback.Lon) > FallbackJitterDegrees {
		t.Fatalf("fallback coordinate %+v outside jitter range of %+v", fallback.Coordinates, svc.Fallback)
	}
}

func TestImportEmptyExtractionAborts(t *testing.T) {
	svc, reg := newImportService(&mockExtractor{orders: nil}, &mockGeocoder{})

	_, err := svc.ImportText(context.Background(), "nothing here")
	if !errors.Is(err, ports.ErrNoOrders) {
		t.Fatalf("err = %v, want ErrNoOrders", err)
	}
	if reg.Count() != 0 {
		t.Fatal("no stops should be created")
	}
}

func TestImportExtractionFailureAborts(t *testing.T) {
	boom := errors.New("service down")
	svc, reg := newImportService(&mockExtractor{err: boom}, &mockGeocoder{})

	_, err := svc.ImportText(context.Background(), "text")
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped service error", err)
	}
	if reg.Count() != 0 {
		t.Fatal("no stops should be created")
	}
}

func TestImportRejectsConcurrentRun(t *testing.T) {
	svc, _ := newImportService(&mockExtractor{}, &mockGeocoder{})

	if err := svc.Guard.TryStart("busy"); err != nil {
		t.Fatalf("guard start: %v", err)
	}
	defer svc.Guard.Finish()

	_, err := svc.ImportText(context.Background(), "text")
	if !errors.Is(err, ErrBusy) {
		t.Fatalf("err = %v, want ErrBusy", err)
	}
}
