package geocode

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"dispatch-route-planner/internal/ports"
)

func TestGeocodeBestMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("limit") != "1" || q.Get("format") != "json" {
			t.Errorf("unexpected query %q", r.URL.RawQuery)
		}
		w.Write([]byte(`[{"lat": "10.7769", "lon": "106.7009"}]`))
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, "test-agent")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	coords, err := c.Geocode(context.Background(), "1 Le Loi, District 1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if coords.Lat != 10.7769 || coords.Lon != 106.7009 {
		t.Fatalf("coords = %+v", coords)
	}
}

func TestGeocodeNoMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, "")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	if _, err := c.Geocode(context.Background(), "nowhere"); !errors.Is(err, ports.ErrNoMatch) {
		t.Fatalf("err = %v, want ErrNoMatch", err)
	}
}

func TestGeocodeServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, "")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	if _, err := c.Geocode(context.Background(), "addr"); err == nil {
		t.Fatal("expected error for server failure")
	}
}
