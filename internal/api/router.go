package api

import (
	"net/http"

	"dispatch-route-planner/internal/api/handlers"
	"dispatch-route-planner/internal/platform/obs"
	"dispatch-route-planner/internal/registry"
	"dispatch-route-planner/internal/services"
)

// NewRouter wires HTTP handlers with their dependencies and returns an
// http.Handler. This is the API composition root (handlers stay unaware of
// concrete adapters).
func NewRouter(
	reg *registry.Registry,
	importSvc *services.ImportService,
	optimizeSvc *services.OptimizeService,
	metrics *obs.Collector,
) http.Handler {
	mux := http.NewServeMux()

	stopHandler := &handlers.StopHandler{Registry: reg, Metrics: metrics}
	importHandler := &handlers.ImportHandler{
		Service:       importSvc,
		ImportGuard:   importSvc.Guard,
		OptimizeGuard: optimizeSvc.Guard,
	}
	planHandler := &handlers.PlanHandler{Service: optimizeSvc, Registry: reg}

	mux.HandleFunc("/health", handlers.Health)

	mux.HandleFunc("/stops", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			stopHandler.Add(w, r)
			return
		}
		stopHandler.List(w, r)
	})
	mux.HandleFunc("/stops/select", stopHandler.Select)
	mux.HandleFunc("/stops/remove", stopHandler.Remove)
	mux.HandleFunc("/reset", stopHandler.Reset)

	mux.HandleFunc("/imports", importHandler.Create)
	mux.HandleFunc("/imports/status", importHandler.Status)

	mux.HandleFunc("/plans", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			planHandler.Calculate(w, r)
			return
		}
		planHandler.Get(w, r)
	})
	mux.HandleFunc("/vehicles", planHandler.Vehicles)

	return loggingMiddleware(mux)
}
