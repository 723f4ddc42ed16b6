package handlers

import (
	"errors"
	"log"
	"net/http"

	"dispatch-route-planner/internal/api/dto"
	"dispatch-route-planner/internal/domain"
	"dispatch-route-planner/internal/platform/obs"
	"dispatch-route-planner/internal/registry"
)

// StopHandler exposes the stop registry: list, add (map click), select
// (marker click), remove and reset.
type StopHandler struct {
	Registry *registry.Registry
	Metrics  *obs.Collector
}

// List returns the ordered stop list, its zone-grouped projection and the
// current selection.
func (h *StopHandler) List(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	stops := h.Registry.Stops()

	res := dto.ListStopsResponse{
		Stops: dto.FromStops(stops),
		Zones: make([]dto.ZoneGroupResponse, 0),
	}
	for _, g := range registry.GroupByZone(stops) {
		res.Zones = append(res.Zones, dto.ZoneGroupResponse{
			Zone:  g.Zone,
			Stops: dto.FromStops(g.Stops),
		})
	}
	if selected, ok := h.Registry.Selected(); ok {
		res.SelectedID = selected.ID
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Add appends a stop at the clicked coordinates.
func (h *StopHandler) Add(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.AddStopRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if req.Lat < -90 || req.Lat > 90 || req.Lon < -180 || req.Lon > 180 {
		writeError(w, r, http.StatusBadRequest, "coordinates out of range")
		return
	}

	stop, err := h.Registry.AddAt(r.Context(), domain.Coordinates{Lat: req.Lat, Lon: req.Lon})
	if err != nil {
		if errors.Is(err, registry.ErrCapacity) {
			writeError(w, r, http.StatusConflict, err.Error())
			return
		}
		log.Printf("add stop failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	if h.Metrics != nil {
		h.Metrics.StopsAdded.Inc()
	}

	writeJSON(w, r, http.StatusCreated, dto.FromStop(stop))
}

// Select marks a stop as selected.
func (h *StopHandler) Select(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.StopIDRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.Registry.Select(req.ID); err != nil {
		writeError(w, r, http.StatusNotFound, "stop not found")
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]string{"selected_id": req.ID})
}

// Remove deletes a stop by id.
func (h *StopHandler) Remove(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.StopIDRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.Registry.Remove(r.Context(), req.ID); err != nil {
		writeError(w, r, http.StatusNotFound, "stop not found")
		return
	}

	if h.Metrics != nil {
		h.Metrics.StopsRemoved.Inc()
	}

	writeJSON(w, r, http.StatusOK, map[string]string{"removed_id": req.ID})
}

// Reset clears all planner state. The explicit confirm flag stands in for
// the UI's confirmation dialog.
func (h *StopHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.ResetRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if !req.Confirm {
		writeError(w, r, http.StatusBadRequest, "reset requires confirmation")
		return
	}

	h.Registry.Reset(r.Context())
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "reset"})
}
