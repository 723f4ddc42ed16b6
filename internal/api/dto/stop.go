package dto

import "dispatch-route-planner/internal/domain"

type AddStopRequest struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type StopIDRequest struct {
	ID string `json:"id"`
}

type ResetRequest struct {
	Confirm bool `json:"confirm"`
}

type StopResponse struct {
	ID           string  `json:"id"`
	DisplayName  string  `json:"display_name"`
	Lat          float64 `json:"lat"`
	Lon          float64 `json:"lon"`
	Address      string  `json:"address,omitempty"`
	CustomerName string  `json:"customer_name,omitempty"`
	PhoneNumber  string  `json:"phone_number,omitempty"`
	Zone         string  `json:"zone,omitempty"`
	IsDepot      bool    `json:"is_depot"`
	Status       string  `json:"status,omitempty"`
}

type ZoneGroupResponse struct {
	Zone  string         `json:"zone"`
	Stops []StopResponse `json:"stops"`
}

type ListStopsResponse struct {
	Stops      []StopResponse      `json:"stops"`
	Zones      []ZoneGroupResponse `json:"zones"`
	SelectedID string              `json:"selected_id,omitempty"`
}

func FromStop(s domain.Stop) StopResponse {
	return StopResponse{
		ID:           s.ID,
		DisplayName:  s.DisplayName,
		Lat:          s.Coordinates.Lat,
		Lon:          s.Coordinates.Lon,
		Address:      s.Address,
		CustomerName: s.CustomerName,
		PhoneNumber:  s.PhoneNumber,
		Zone:         s.Zone,
		IsDepot:      s.IsDepot,
		Status:       string(s.Status),
	}
}

func FromStops(stops []domain.Stop) []StopResponse {
	out := make([]StopResponse, 0, len(stops))
	for _, s := range stops {
		out = append(out, FromStop(s))
	}
	return out
}
