package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"dispatch-route-planner/internal/api/dto"
	"dispatch-route-planner/internal/ports"
	"dispatch-route-planner/internal/registry"
	"dispatch-route-planner/internal/services"
)

// ImportHandler runs the order import pipeline and reports flow status.
type ImportHandler struct {
	Service       *services.ImportService
	ImportGuard   *services.FlowGuard
	OptimizeGuard *services.FlowGuard
}

// Create imports one pasted text block.
func (h *ImportHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.ImportRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if strings.TrimSpace(req.Text) == "" {
		writeError(w, r, http.StatusBadRequest, "text is required")
		return
	}

	summary, err := h.Service.ImportText(r.Context(), req.Text)
	switch {
	case errors.Is(err, services.ErrBusy):
		writeError(w, r, http.StatusConflict, "an import is already running")
		return
	case errors.Is(err, ports.ErrNoOrders):
		writeError(w, r, http.StatusUnprocessableEntity, ports.ErrNoOrders.Error())
		return
	case errors.Is(err, registry.ErrCapacity):
		writeError(w, r, http.StatusConflict, registry.ErrCapacity.Error())
		return
	case err != nil:
		log.Printf("import failed: %v", err)
		writeError(w, r, http.StatusBadGateway, "order extraction failed")
		return
	}

	writeJSON(w, r, http.StatusCreated, dto.ImportResponse{
		Total:      summary.Total,
		Resolved:   summary.Resolved,
		Unresolved: summary.Unresolved,
		Stops:      dto.FromStops(summary.Stops),
	})
}

// Status reports the mutual-exclusion flags of both long-running flows.
func (h *ImportHandler) Status(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	importing, importStatus := h.ImportGuard.Status()
	calculating, _ := h.OptimizeGuard.Status()

	writeJSON(w, r, http.StatusOK, dto.FlowStatusResponse{
		Importing:       importing,
		ImportingStatus: importStatus,
		Calculating:     calculating,
	})
}
