package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every knob the server reads from the environment.
type Config struct {
	Port string

	LLMBaseURL string
	LLMAPIKey  string
	LLMModel   string

	GeocoderBaseURL   string
	GeocoderUserAgent string
	GeocodeDelay      time.Duration

	OSRMMirrors []string

	SnapshotBackend string // "redis", "postgres" or "none"
	SnapshotKey     string
	RedisAddr       string
	DatabaseURL     string

	Currency    string
	FallbackLat float64
	FallbackLon float64

	MetricsAddr string
}

// Load reads .env (if present) and the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port: getenvDefault("PORT", "8080"),

		LLMBaseURL: getenvDefault("LLM_BASE_URL", "https://api.openai.com/v1"),
		LLMAPIKey:  os.Getenv("LLM_API_KEY"),
		LLMModel:   getenvDefault("LLM_MODEL", "gpt-4o-mini"),

		GeocoderBaseURL:   getenvDefault("GEOCODER_BASE_URL", "https://nominatim.openstreetmap.org"),
		GeocoderUserAgent: getenvDefault("GEOCODER_USER_AGENT", "dispatch-route-planner/1.0"),

		SnapshotBackend: strings.ToLower(getenvDefault("SNAPSHOT_BACKEND", "none")),
		SnapshotKey:     getenvDefault("SNAPSHOT_KEY", "dispatch:planner:v1"),
		RedisAddr:       getenvDefault("REDIS_ADDR", "127.0.0.1:6379"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),

		Currency:    getenvDefault("CURRENCY", "VND"),
		MetricsAddr: os.Getenv("METRICS_ADDR"),
	}

	if strings.TrimSpace(cfg.LLMAPIKey) == "" {
		return nil, fmt.Errorf("LLM_API_KEY is required")
	}

	mirrors := getenvDefault(
		"OSRM_MIRRORS",
		"https://router.project-osrm.org,https://routing.openstreetmap.de/routed-car",
	)
	for _, m := range strings.Split(mirrors, ",") {
		if m = strings.TrimSpace(m); m != "" {
			cfg.OSRMMirrors = append(cfg.OSRMMirrors, m)
		}
	}

	switch cfg.SnapshotBackend {
	case "none", "redis", "postgres":
	default:
		return nil, fmt.Errorf("invalid SNAPSHOT_BACKEND: %q", cfg.SnapshotBackend)
	}
	if cfg.SnapshotBackend == "postgres" && strings.TrimSpace(cfg.DatabaseURL) == "" {
		return nil, fmt.Errorf("DATABASE_URL is required for the postgres snapshot backend")
	}

	delayMs, err := intEnv("GEOCODE_DELAY_MS", 800)
	if err != nil {
		return nil, err
	}
	cfg.GeocodeDelay = time.Duration(delayMs) * time.Millisecond

	cfg.FallbackLat, err = floatEnv("FALLBACK_LAT", 10.7769)
	if err != nil {
		return nil, err
	}
	cfg.FallbackLon, err = floatEnv("FALLBACK_LON", 106.7009)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

func getenvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func intEnv(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, v)
	}
	return n, nil
}

func floatEnv(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, v)
	}
	return f, nil
}
