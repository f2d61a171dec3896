package config

import (
	"github.com/marmos91/snapserve/internal/logger"
	"github.com/marmos91/snapserve/internal/telemetry"
	"github.com/marmos91/snapserve/pkg/resolver"
	"github.com/marmos91/snapserve/pkg/server"
)

// LoggerConfig returns the logger settings.
func (c *Config) LoggerConfig() logger.Config {
	return logger.Config{
		Level:  c.Logging.Level,
		Format: c.Logging.Format,
		Output: c.Logging.Output,
	}
}

// TracingConfig returns the OpenTelemetry settings for the given version.
func (c *Config) TracingConfig(version string) telemetry.Config {
	tc := telemetry.DefaultConfig()
	tc.Enabled = c.Telemetry.Enabled
	tc.Endpoint = c.Telemetry.Endpoint
	tc.Insecure = c.Telemetry.Insecure
	tc.SampleRate = c.Telemetry.SampleRate
	if version != "" {
		tc.ServiceVersion = version
	}
	return tc
}

// ProfilingConfig returns the Pyroscope settings for the given version.
func (c *Config) ProfilingConfig(version string) telemetry.ProfilingConfig {
	return telemetry.ProfilingConfig{
		Enabled:        c.Telemetry.Profiling.Enabled,
		ServiceName:    telemetry.DefaultConfig().ServiceName,
		ServiceVersion: version,
		Endpoint:       c.Telemetry.Profiling.Endpoint,
		ProfileTypes:   c.Telemetry.Profiling.ProfileTypes,
	}
}

// ResolverOptions returns the static file resolver options.
func (c *Config) ResolverOptions() resolver.Options {
	return resolver.Options{
		Root:        c.Server.Root,
		Index:       c.Server.Index,
		Containment: resolver.Containment(c.Server.Containment),
		MaxFileSize: c.Server.MaxFileSize,
	}
}

// HTTPConfig returns the static HTTP server settings.
func (c *Config) HTTPConfig() server.Config {
	return server.Config{
		Port:            c.Server.Port,
		ReadTimeout:     c.Server.ReadTimeout,
		WriteTimeout:    c.Server.WriteTimeout,
		IdleTimeout:     c.Server.IdleTimeout,
		ShutdownTimeout: c.Lifecycle.ShutdownTimeout,
	}
}
