package obs

import (
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds the planner's Prometheus metrics on a private registry.
// A nil Collector disables metrics; call sites nil-check before recording.
type Collector struct {
	reg *prometheus.Registry

	StopsAdded        prometheus.Counter
	StopsRemoved      prometheus.Counter
	ImportsRun        prometheus.Counter
	ImportOrders      prometheus.Counter
	GeocodeFallbacks  prometheus.Counter
	OptimizationsRun  prometheus.Counter
	OptimizeFailures  prometheus.Counter
	MirrorFailovers   prometheus.Counter
	SnapshotWriteErrs prometheus.Counter

	ImportDuration   prometheus.Histogram
	OptimizeDuration prometheus.Histogram
}

func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		StopsAdded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "planner_stops_added_total",
			Help: "Total stops added to the registry.",
		}),
		StopsRemoved: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "planner_stops_removed_total",
			Help: "Total stops removed from the registry.",
		}),
		ImportsRun: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "planner_imports_total",
			Help: "Total order import pipeline runs.",
		}),
		ImportOrders: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "planner_import_orders_total",
			Help: "Total orders produced by imports, resolved or fallback.",
		}),
		GeocodeFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "planner_geocode_fallbacks_total",
			Help: "Total imported stops placed at the jittered fallback coordinate.",
		}),
		OptimizationsRun: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "planner_optimizations_total",
			Help: "Total route optimization runs.",
		}),
		OptimizeFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "planner_optimization_failures_total",
			Help: "Total optimization runs that surfaced an error.",
		}),
		MirrorFailovers: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "planner_road_mirror_failovers_total",
			Help: "Total road-routing mirror endpoints skipped after a failure.",
		}),
		SnapshotWriteErrs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "planner_snapshot_write_errors_total",
			Help: "Total ignored snapshot write failures.",
		}),
		ImportDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "planner_import_duration_seconds",
			Help:    "Duration of full import pipeline runs.",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 12),
		}),
		OptimizeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "planner_optimize_duration_seconds",
			Help:    "Duration of full optimization runs.",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 12),
		}),
	}

	reg.MustRegister(
		c.StopsAdded, c.StopsRemoved,
		c.ImportsRun, c.ImportOrders, c.GeocodeFallbacks,
		c.OptimizationsRun, c.OptimizeFailures, c.MirrorFailovers,
		c.SnapshotWriteErrs,
		c.ImportDuration, c.OptimizeDuration,
	)

	return c
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on its own listener. The listener lives for the
// whole process; there is no shutdown path.
func (c *Collector) Serve(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("metrics server error: %v", err)
		}
	}()
	log.Printf("metrics listening on %s", addr)
}
