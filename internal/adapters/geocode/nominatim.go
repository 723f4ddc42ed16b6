// Package geocode implements forward geocoding against a Nominatim-style
// search endpoint, limited to the single best match.
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"dispatch-route-planner/internal/domain"
	"dispatch-route-planner/internal/platform/obs"
	"dispatch-route-planner/internal/ports"
)

// Client resolves addresses via GET {base}/search?format=json&limit=1.
// Rate limiting is the caller's job (the import pipeline spaces its calls);
// the client itself does not retry, since a per-address failure only
// degrades that one stop.
type Client struct {
	session   *http.Client
	baseURL   string
	userAgent string
}

func NewClient(baseURL, userAgent string) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("geocoder base url is empty")
	}

	return &Client{
		session:   &http.Client{Timeout: 10 * time.Second},
		baseURL:   baseURL,
		userAgent: userAgent,
	}, nil
}

// The service answers with stringly-typed coordinates.
type searchResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Geocode implements ports.Geocoder.
func (c *Client) Geocode(ctx context.Context, address string) (_ domain.Coordinates, err error) {
	defer obs.Time(ctx, "geocode.search")(&err)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search", nil)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("geocode: create request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	q := req.URL.Query()
	q.Set("q", address)
	q.Set("format", "json")
	q.Set("limit", "1")
	req.URL.RawQuery = q.Encode()

	resp, err := c.session.Do(req)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("geocode: execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Coordinates{}, fmt.Errorf("geocode: unexpected status: %d", resp.StatusCode)
	}

	var results []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return domain.Coordinates{}, fmt.Errorf("geocode: decode response: %w", err)
	}

	if len(results) == 0 {
		return domain.Coordinates{}, ports.ErrNoMatch
	}

	lat, latErr := strconv.ParseFloat(results[0].Lat, 64)
	lon, lonErr := strconv.ParseFloat(results[0].Lon, 64)
	if latErr != nil || lonErr != nil {
		return domain.Coordinates{}, fmt.Errorf("geocode: invalid coordinates for %q", address)
	}

	return domain.Coordinates{Lat: lat, Lon: lon}, nil
}
