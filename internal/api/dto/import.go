package dto

type ImportRequest struct {
	Text string `json:"text"`
}

type ImportResponse struct {
	Total      int            `json:"total"`
	Resolved   int            `json:"resolved"`
	Unresolved int            `json:"unresolved"`
	Stops      []StopResponse `json:"stops"`
}

type FlowStatusResponse struct {
	Importing       bool   `json:"importing"`
	ImportingStatus string `json:"importing_status,omitempty"`
	Calculating     bool   `json:"calculating"`
}
