package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/marmos91/snapserve/pkg/lifecycle"
	"github.com/marmos91/snapserve/pkg/metrics"
	"github.com/marmos91/snapserve/pkg/resolver"
	"github.com/marmos91/snapserve/pkg/server"
)

// ApplyDefaults sets default values for any unspecified configuration fields.
//
// Default Strategy:
//   - Zero values (0, "", false, nil) are replaced with defaults
//   - Explicit values are preserved
//   - lifecycle.exit_after and server.max_file_size keep zero, which means
//     "disabled" and "unlimited"
func ApplyDefaults(cfg *Config) {
	applyLoggingDefaults(&cfg.Logging)
	applyTelemetryDefaults(&cfg.Telemetry)
	applyMetricsDefaults(&cfg.Metrics)
	applyServerDefaults(&cfg.Server)
	applyLifecycleDefaults(&cfg.Lifecycle)
}

// applyLoggingDefaults sets logging defaults and normalizes values.
func applyLoggingDefaults(cfg *LoggingConfig) {
	if cfg.Level == "" {
		cfg.Level = "INFO"
	}
	// Normalize log level to uppercase for consistent internal representation
	cfg.Level = strings.ToUpper(cfg.Level)

	if cfg.Format == "" {
		cfg.Format = "text"
	}
	if cfg.Output == "" {
		cfg.Output = "stdout"
	}
}

// applyTelemetryDefaults sets OpenTelemetry defaults.
func applyTelemetryDefaults(cfg *TelemetryConfig) {
	// Default endpoint is localhost:4317 (standard OTLP gRPC port)
	if cfg.Endpoint == "" {
		cfg.Endpoint = "localhost:4317"
	}

	if cfg.SampleRate == 0 {
		cfg.SampleRate = 1.0
	}

	applyProfilingDefaults(&cfg.Profiling)
}

// applyProfilingDefaults sets Pyroscope profiling defaults.
func applyProfilingDefaults(cfg *ProfilingConfig) {
	if cfg.Endpoint == "" {
		cfg.Endpoint = "http://localhost:4040"
	}

	if len(cfg.ProfileTypes) == 0 {
		cfg.ProfileTypes = []string{
			"cpu",
			"alloc_objects",
			"alloc_space",
			"inuse_objects",
			"inuse_space",
			"goroutines",
		}
	}
}

func applyMetricsDefaults(cfg *MetricsConfig) {
	if cfg.Port == 0 {
		cfg.Port = metrics.DefaultPort
	}
}

func applyServerDefaults(cfg *ServerConfig) {
	if cfg.Port == 0 {
		cfg.Port = server.DefaultPort
	}
	if cfg.Root == "" {
		cfg.Root = DefaultRoot()
	}
	if cfg.Index == "" {
		cfg.Index = resolver.DefaultIndex
	}
	if cfg.Containment == "" {
		cfg.Containment = string(resolver.ContainmentStrict)
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = 10 * time.Second
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = 10 * time.Second
	}
	if cfg.IdleTimeout == 0 {
		cfg.IdleTimeout = 60 * time.Second
	}
}

func applyLifecycleDefaults(cfg *LifecycleConfig) {
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = lifecycle.DefaultShutdownTimeout
	}
	if cfg.HookTimeout == 0 {
		cfg.HookTimeout = lifecycle.DefaultHookTimeout
	}
}

// DefaultRoot returns the directory containing the running executable, or
// the working directory when that cannot be determined.
func DefaultRoot() string {
	exe, err := os.Executable()
	if err == nil {
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		return filepath.Dir(exe)
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

// GetDefaultConfig returns a Config with all defaults applied.
func GetDefaultConfig() *Config {
	cfg := &Config{
		Lifecycle: LifecycleConfig{
			ExitAfter: lifecycle.DefaultExitAfter,
		},
	}
	ApplyDefaults(cfg)
	return cfg
}
