package commands

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/marmos91/snapserve/internal/logger"
	"github.com/marmos91/snapserve/pkg/config"
)

// InitLogger initializes the structured logger from configuration.
func InitLogger(cfg *config.Config) error {
	if err := logger.Init(cfg.LoggerConfig()); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

// getConfigSource returns a description of where the config was loaded from.
func getConfigSource(configFile string) string {
	if configFile != "" {
		return configFile
	}
	if config.DefaultConfigExists() {
		return config.GetDefaultConfigPath()
	}
	return "defaults"
}

// noColor reports whether colored output is disabled (NO_COLOR or no TTY).
func noColor() bool {
	return color.NoColor
}
