package domain

import (
	"fmt"
	"regexp"
)

const (
	// MaxStops bounds the registry size; adds beyond it are rejected locally.
	MaxStops = 30

	// DepotLabel is the fixed display name of the route-start stop.
	DepotLabel = "Depot"

	// StopLabelPrefix is used for auto-generated stop labels ("Stop 0", "Stop 1", ...).
	StopLabelPrefix = "Stop"

	// UnresolvedZone marks stops whose address could not be geocoded.
	UnresolvedZone = "Unresolved"

	// UnresolvedSuffix is appended to the display name of a fallback stop.
	UnresolvedSuffix = " (unresolved)"
)

// DeliveryStatus tracks delivery progress for a stop.
// It is carried on the model but not mutated by any planning flow.
type DeliveryStatus string

const (
	StatusPending   DeliveryStatus = "pending"
	StatusDelivered DeliveryStatus = "delivered"
	StatusFailed    DeliveryStatus = "failed"
)

// Stop is a single delivery point.
// Customer fields are populated only by the order import pipeline;
// map-click stops carry coordinates and an auto-generated label.
type Stop struct {
	ID           string         `json:"id"`
	DisplayName  string         `json:"displayName"`
	Coordinates  Coordinates    `json:"coordinates"`
	Address      string         `json:"address,omitempty"`
	CustomerName string         `json:"customerName,omitempty"`
	PhoneNumber  string         `json:"phoneNumber,omitempty"`
	Zone         string         `json:"zone,omitempty"`
	IsDepot      bool           `json:"isDepot"`
	Status       DeliveryStatus `json:"status,omitempty"`
}

var autoLabelPattern = regexp.MustCompile(`^` + StopLabelPrefix + ` \d+$`)

// AutoLabel returns the generated label for the i-th non-depot stop (zero-based).
func AutoLabel(i int) string {
	return fmt.Sprintf("%s %d", StopLabelPrefix, i)
}

// IsAutoLabel reports whether a display name was auto-generated.
// Only auto-labeled stops are renumbered after a removal; custom and
// import-assigned names are never rewritten.
func IsAutoLabel(name string) bool {
	return autoLabelPattern.MatchString(name)
}
