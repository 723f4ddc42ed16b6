package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"dispatch-route-planner/internal/domain"
	"dispatch-route-planner/internal/ports"
)

// chatServer returns a stub chat-completions endpoint answering every call
// with the given assistant content.
func chatServer(t *testing.T, content string) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("missing bearer auth")
		}

		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": content}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
}

func newTestClient(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()

	c, err := NewClient(srv.URL, "test-key", "test-model")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return c
}

func TestExtractOrdersParsesFencedJSON(t *testing.T) {
	content := "Here are the orders:\n```json\n[" +
		`{"customerName": "Nguyen Van A", "phoneNumber": "0901", "address": "1 Le Loi", "zone": "District 1"},` +
		`{"customerName": "Tran B", "address": "", "zone": "District 3"},` +
		`{"customerName": "Le C", "address": "5 Nguyen Hue", "zone": "District 1"}` +
		"]\n```"

	srv := chatServer(t, content)
	defer srv.Close()

	orders, err := newTestClient(t, srv).ExtractOrders(context.Background(), "raw text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The address-less order is dropped.
	if len(orders) != 2 {
		t.Fatalf("orders = %d, want 2", len(orders))
	}
	if orders[0].CustomerName != "Nguyen Van A" || orders[0].Address != "1 Le Loi" {
		t.Fatalf("order 0 = %+v", orders[0])
	}
}

func TestExtractOrdersEmptyArray(t *testing.T) {
	srv := chatServer(t, "[]")
	defer srv.Close()

	_, err := newTestClient(t, srv).ExtractOrders(context.Background(), "no orders here")
	if !errors.Is(err, ports.ErrNoOrders) {
		t.Fatalf("err = %v, want ErrNoOrders", err)
	}
}

func TestExtractOrdersNoJSON(t *testing.T) {
	srv := chatServer(t, "I could not find any structured data, sorry.")
	defer srv.Close()

	_, err := newTestClient(t, srv).ExtractOrders(context.Background(), "text")
	if err == nil {
		t.Fatal("expected error for prose-only output")
	}
}

func TestOptimizeRouteParsesResponse(t *testing.T) {
	content := "```json\n" + `{
		"optimizedOrder": ["depot", "b", "a"],
		"segments": [
			{"fromId": "depot", "toId": "b", "distanceKm": 3.2, "timeMinutes": 11},
			{"fromId": "b", "toId": "a", "distanceKm": 1.1, "timeMinutes": 5}
		],
		"stats": {"totalDistanceKm": 4.3, "totalTimeMinutes": 16, "fuelCost": 9000, "tollCost": 0, "totalCost": 9000, "advice": "avoid rush hour"}
	}` + "\n```"

	srv := chatServer(t, content)
	defer srv.Close()

	plan, err := newTestClient(t, srv).OptimizeRoute(context.Background(), ports.OptimizeRequest{
		Depot:    ports.OptimizeStop{ID: "depot"},
		Stops:    []ports.OptimizeStop{{ID: "a"}, {ID: "b"}},
		Vehicle:  domain.DefaultProfile(),
		Currency: "VND",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(plan.OptimizedOrder) != 3 || plan.OptimizedOrder[0] != "depot" {
		t.Fatalf("order = %v", plan.OptimizedOrder)
	}
	if len(plan.Segments) != 2 || plan.Segments[0].DistanceKm != 3.2 {
		t.Fatalf("segments = %+v", plan.Segments)
	}
	if plan.Stats.TotalCost != 9000 || plan.Stats.Advice != "avoid rush hour" {
		t.Fatalf("stats = %+v", plan.Stats)
	}
}

func TestOptimizeRouteEmptyOrder(t *testing.T) {
	srv := chatServer(t, `{"optimizedOrder": [], "segments": [], "stats": {}}`)
	defer srv.Close()

	_, err := newTestClient(t, srv).OptimizeRoute(context.Background(), ports.OptimizeRequest{
		Depot: ports.OptimizeStop{ID: "depot"},
	})
	if err == nil {
		t.Fatal("expected error for empty order")
	}
}
