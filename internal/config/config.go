package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"

	"github.com/couchcryptid/patent-dashboard/internal/domain"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Dataset selection.
	DataFile string
	Dataset  string // "state" or "msa"
	Schema   domain.Schema
	TopN     int
	Author   string

	// Mapbox geocoding configuration.
	MapboxToken     string
	MapboxEnabled   bool
	MapboxTimeout   time.Duration
	MapboxCacheSize int
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	httpAddr, err := parseListenAddr()
	if err != nil {
		return nil, err
	}

	dataset := sharedcfg.EnvOrDefault("DATASET", "state")
	schema, err := parseSchema(dataset)
	if err != nil {
		return nil, err
	}

	topN, err := strconv.Atoi(sharedcfg.EnvOrDefault("TOP_N", "10"))
	if err != nil || topN <= 0 {
		return nil, errors.New("invalid TOP_N: must be a positive integer")
	}

	mapboxTimeout, err := time.ParseDuration(sharedcfg.EnvOrDefault("MAPBOX_TIMEOUT", "5s"))
	if err != nil || mapboxTimeout <= 0 {
		return nil, errors.New("invalid MAPBOX_TIMEOUT")
	}

	mapboxToken := os.Getenv("MAPBOX_TOKEN")
	mapboxEnabled := mapboxToken != ""
	if v := os.Getenv("MAPBOX_ENABLED"); v != "" {
		mapboxEnabled = v == "true"
	}

	cfg := &Config{
		HTTPAddr:        httpAddr,
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		DataFile: sharedcfg.EnvOrDefault("DATA_FILE", "data/state_grouped.csv"),
		Dataset:  dataset,
		Schema:   schema,
		TopN:     topN,
		Author:   os.Getenv("DASHBOARD_AUTHOR"),

		MapboxToken:     mapboxToken,
		MapboxEnabled:   mapboxEnabled,
		MapboxTimeout:   mapboxTimeout,
		MapboxCacheSize: parseMapboxCacheSize(),
	}

	if cfg.DataFile == "" {
		return nil, errors.New("DATA_FILE is required")
	}
	if cfg.MapboxEnabled && cfg.MapboxToken == "" {
		return nil, errors.New("MAPBOX_ENABLED is true but MAPBOX_TOKEN is not set")
	}

	return cfg, nil
}

// parseListenAddr joins HOST and PORT. An empty HOST listens on all interfaces.
func parseListenAddr() (string, error) {
	host := sharedcfg.EnvOrDefault("HOST", "0.0.0.0")
	port := sharedcfg.EnvOrDefault("PORT", "8027")

	n, err := strconv.Atoi(port)
	if err != nil || n < 1 || n > 65535 {
		return "", fmt.Errorf("invalid PORT %q: must be 1-65535", port)
	}
	return net.JoinHostPort(host, port), nil
}

// parseSchema picks the preset for dataset and applies per-column overrides.
func parseSchema(dataset string) (domain.Schema, error) {
	var schema domain.Schema
	switch dataset {
	case "state":
		schema = domain.StateSchema
	case "msa":
		schema = domain.MSASchema
	default:
		return domain.Schema{}, fmt.Errorf("invalid DATASET %q: must be state or msa", dataset)
	}

	schema.Name = sharedcfg.EnvOrDefault("NAME_COLUMN", schema.Name)
	schema.Count = sharedcfg.EnvOrDefault("COUNT_COLUMN", schema.Count)
	schema.Latitude = sharedcfg.EnvOrDefault("LAT_COLUMN", schema.Latitude)
	schema.Longitude = sharedcfg.EnvOrDefault("LON_COLUMN", schema.Longitude)

	if err := schema.Validate(); err != nil {
		return domain.Schema{}, fmt.Errorf("invalid column configuration: %w", err)
	}
	return schema, nil
}

func parseMapboxCacheSize() int {
	if s := os.Getenv("MAPBOX_CACHE_SIZE"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return 1000
}
