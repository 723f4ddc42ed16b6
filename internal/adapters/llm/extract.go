package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"dispatch-route-planner/internal/ports"
)

const extractSystemPrompt = `You extract delivery orders from free text.
Return ONLY a JSON array. Each element: {"customerName": string, "phoneNumber": string (optional), "address": string, "zone": string}.
The zone is a short district/area label inferred from the address.
Return [] if the text contains no orders. No prose, no markdown.`

// ExtractOrders implements ports.OrderExtractor.
func (c *Client) ExtractOrders(ctx context.Context, text string) ([]ports.ExtractedOrder, error) {
	out, err := c.chat(ctx, extractSystemPrompt, text)
	if err != nil {
		return nil, fmt.Errorf("extract orders: %w", err)
	}

	raw, err := extractJSON(out, jsonArrayRe)
	if err != nil {
		return nil, fmt.Errorf("extract orders: %w", err)
	}

	var orders []ports.ExtractedOrder
	if err := json.Unmarshal([]byte(raw), &orders); err != nil {
		return nil, fmt.Errorf("extract orders: parse model output: %w", err)
	}

	// Orders without an address cannot be placed at all; drop them rather
	// than geocoding an empty string.
	kept := orders[:0]
	for _, o := range orders {
		if strings.TrimSpace(o.Address) != "" {
			kept = append(kept, o)
		}
	}

	if len(kept) == 0 {
		return nil, ports.ErrNoOrders
	}

	return kept, nil
}
