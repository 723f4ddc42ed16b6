package ports

import (
	"context"
	"errors"
)

// ErrNoOrders is returned when the extraction service answers with an empty
// array: valid transport, nothing to import.
var ErrNoOrders = errors.New("no orders found in text")

// ExtractedOrder is one structured order pulled out of free text.
type ExtractedOrder struct {
	CustomerName string `json:"customerName"`
	PhoneNumber  string `json:"phoneNumber,omitempty"`
	Address      string `json:"address"`
	Zone         string `json:"zone"`
}

// Port: turns a raw pasted text block into structured orders.
type OrderExtractor interface {
	// ExtractOrders returns every order found in text, or ErrNoOrders.
	ExtractOrders(ctx context.Context, text string) ([]ExtractedOrder, error)
}
