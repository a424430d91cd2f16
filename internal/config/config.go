package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/hiroki-koketsu/go-todo-sample/internal/model"
)

// Config holds the application configuration.
type Config struct {
	// OpenTelemetry settings
	OTLPEndpoint     string `toml:"otlp_endpoint"`
	ServiceName      string `toml:"service_name"`
	Environment      string `toml:"environment"`
	TelemetryEnabled bool   `toml:"telemetry_enabled"`

	// LogFile receives JSON logs when telemetry is disabled.
	LogFile string `toml:"log_file"`

	// Initial view selections
	DefaultSort   string `toml:"default_sort"`
	DefaultFilter string `toml:"default_filter"`

	Sort   model.SortOrder `toml:"-"`
	Filter model.Filter    `toml:"-"`
}

// Load returns configuration with sensible defaults, overridden by the TOML
// file named in TODO_CONFIG, overridden in turn by environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		OTLPEndpoint:     "localhost:4317",
		ServiceName:      "go-todo",
		Environment:      "development",
		TelemetryEnabled: true,
		DefaultSort:      "ascending",
		DefaultFilter:    "all",
	}

	if path := os.Getenv("TODO_CONFIG"); path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	cfg.OTLPEndpoint = getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", cfg.OTLPEndpoint)
	cfg.ServiceName = getEnv("OTEL_SERVICE_NAME", cfg.ServiceName)
	cfg.Environment = getEnv("ENVIRONMENT", cfg.Environment)
	cfg.LogFile = getEnv("LOG_FILE", cfg.LogFile)
	cfg.DefaultSort = getEnv("TODO_SORT", cfg.DefaultSort)
	cfg.DefaultFilter = getEnv("TODO_FILTER", cfg.DefaultFilter)

	// OTEL_SDK_DISABLED follows the OpenTelemetry convention.
	if v := os.Getenv("OTEL_SDK_DISABLED"); v != "" {
		disabled, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("parsing OTEL_SDK_DISABLED: %w", err)
		}
		cfg.TelemetryEnabled = !disabled
	}

	var err error
	if cfg.Sort, err = model.ParseSortOrder(cfg.DefaultSort); err != nil {
		return nil, fmt.Errorf("default sort: %w", err)
	}
	if cfg.Filter, err = model.ParseFilter(cfg.DefaultFilter); err != nil {
		return nil, fmt.Errorf("default filter: %w", err)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
