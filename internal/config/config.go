package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap/zapcore"
)

// Telemetry modes.
const (
	TelemetryNone = "none"
	TelemetryOTLP = "otlp"
)

// Config holds process settings read from the environment.
type Config struct {
	Addr            string
	ServiceName     string
	LogLevel        zapcore.Level
	ShutdownTimeout time.Duration
	MaxSessions     int
	// Telemetry selects whether traces, metrics and logs are exported over
	// OTLP. The exporters read their own OTEL_EXPORTER_OTLP_* variables.
	Telemetry string
}

// Load reads the configuration, applying defaults for unset variables.
func Load() (Config, error) {
	cfg := Config{
		Addr:            getenv("CALC_ADDR", ":8080"),
		ServiceName:     getenv("OTEL_SERVICE_NAME", "dotcalc"),
		ShutdownTimeout: 5 * time.Second,
		MaxSessions:     1000,
		Telemetry:       getenv("CALC_TELEMETRY", TelemetryNone),
	}

	level, err := zapcore.ParseLevel(getenv("CALC_LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, fmt.Errorf("CALC_LOG_LEVEL: %w", err)
	}
	cfg.LogLevel = level

	if v := os.Getenv("CALC_SHUTDOWN_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("CALC_SHUTDOWN_TIMEOUT: %w", err)
		}
		cfg.ShutdownTimeout = d
	}

	if v := os.Getenv("CALC_MAX_SESSIONS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("CALC_MAX_SESSIONS: %w", err)
		}
		if n <= 0 {
			return Config{}, fmt.Errorf("CALC_MAX_SESSIONS: must be positive, got %d", n)
		}
		cfg.MaxSessions = n
	}

	switch cfg.Telemetry {
	case TelemetryNone, TelemetryOTLP:
	default:
		return Config{}, fmt.Errorf("CALC_TELEMETRY: unknown mode %q", cfg.Telemetry)
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
