package handlers

import (
	"errors"
	"log"
	"net/http"

	"dispatch-route-planner/internal/api/dto"
	"dispatch-route-planner/internal/domain"
	"dispatch-route-planner/internal/registry"
	"dispatch-route-planner/internal/services"
)

// PlanHandler runs the route optimization orchestrator and serves the
// current plan.
type PlanHandler struct {
	Service  *services.OptimizeService
	Registry *registry.Registry
}

// Calculate runs one optimization for the current stop set.
func (h *PlanHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.PlanRequest
	if !decodeBody(w, r, &req) {
		return
	}

	route, err := h.Service.Calculate(r.Context(), req.Vehicle)
	switch {
	case errors.Is(err, services.ErrTooFewStops):
		writeError(w, r, http.StatusBadRequest, services.ErrTooFewStops.Error())
		return
	case errors.Is(err, services.ErrBusy):
		writeError(w, r, http.StatusConflict, "a calculation is already running")
		return
	case err != nil:
		log.Printf("calculate failed: %v", err)
		writeError(w, r, http.StatusBadGateway, "route optimization failed")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.FromRoute(route, registry.OrderedStops(h.Registry.Stops(), route)))
}

// Get returns the current plan, or 404 when no plan is current for the
// present stop set.
func (h *PlanHandler) Get(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	route := h.Registry.Route()
	if route == nil {
		writeError(w, r, http.StatusNotFound, "no current plan")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.FromRoute(route, registry.OrderedStops(h.Registry.Stops(), route)))
}

// Vehicles lists the selectable vehicle profiles.
func (h *PlanHandler) Vehicles(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	res := dto.ListVehiclesResponse{Vehicles: make([]dto.VehicleResponse, 0)}
	for _, p := range domain.VehicleProfiles() {
		res.Vehicles = append(res.Vehicles, dto.VehicleResponse{
			Label:              p.Label,
			FuelLitersPer100Km: p.FuelLitersPer100Km,
			TollRatePerKm:      p.TollRatePerKm,
			Constraints:        p.Constraints,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
