package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"dispatch-route-planner/internal/adapters/geocode"
	"dispatch-route-planner/internal/adapters/llm"
	"dispatch-route-planner/internal/adapters/osrm"
	"dispatch-route-planner/internal/adapters/snapshot"
	"dispatch-route-planner/internal/api"
	"dispatch-route-planner/internal/config"
	"dispatch-route-planner/internal/domain"
	"dispatch-route-planner/internal/platform/db"
	"dispatch-route-planner/internal/platform/obs"
	"dispatch-route-planner/internal/ports"
	"dispatch-route-planner/internal/registry"
	"dispatch-route-planner/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"
)

// main is the application composition root.
// It wires concrete adapters (LLM, geocoder, OSRM, snapshot store) behind
// ports and starts the HTTP server.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	var metrics *obs.Collector
	if cfg.MetricsAddr != "" {
		metrics = obs.NewCollector()
		metrics.Serve(cfg.MetricsAddr)
	}

	store, err := openSnapshotStore(cfg)
	if err != nil {
		log.Fatal(err)
	}
	if metrics != nil {
		store = snapshot.WithWriteErrorCounter(store, metrics.SnapshotWriteErrs)
	}

	reg := registry.New(store)
	reg.Restore(context.Background())
	log.Printf("registry restored stops=%d", reg.Count())

	llmClient, err := llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel)
	if err != nil {
		log.Fatal(err)
	}

	geocoder, err := geocode.NewClient(cfg.GeocoderBaseURL, cfg.GeocoderUserAgent)
	if err != nil {
		log.Fatal(err)
	}

	var failovers osrm.MirrorFailovers
	if metrics != nil {
		failovers = metrics.MirrorFailovers
	}
	roads, err := osrm.NewClient(cfg.OSRMMirrors, failovers)
	if err != nil {
		log.Fatal(err)
	}

	importSvc := &services.ImportService{
		Extractor: llmClient,
		Geocoder:  geocoder,
		Registry:  reg,
		Guard:     &services.FlowGuard{},
		Metrics:   metrics,
		Fallback:  domain.Coordinates{Lat: cfg.FallbackLat, Lon: cfg.FallbackLon},
		Delay:     cfg.GeocodeDelay,
	}

	optimizeSvc := &services.OptimizeService{
		Optimizer: llmClient,
		Roads:     roads,
		Registry:  reg,
		Guard:     &services.FlowGuard{},
		Metrics:   metrics,
		Currency:  cfg.Currency,
	}

	router := api.NewRouter(reg, importSvc, optimizeSvc, metrics)

	// Timeouts are tuned for optimization runs backed by external API latency.
	log.Printf("Server listening addr=:%s", cfg.Port)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

func openSnapshotStore(cfg *config.Config) (ports.SnapshotStore, error) {
	switch cfg.SnapshotBackend {
	case "redis":
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		return snapshot.NewRedisStore(rdb, cfg.SnapshotKey)
	case "postgres":
		sqlDB, err := db.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := snapshot.InitSchema(sqlDB); err != nil {
			return nil, err
		}
		return snapshot.NewPostgresStore(sqlDB, cfg.SnapshotKey)
	default:
		log.Println("persistence disabled (SNAPSHOT_BACKEND=none)")
		return nil, nil
	}
}
