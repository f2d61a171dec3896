package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/marmos91/snapserve/internal/cli/output"
	"github.com/marmos91/snapserve/pkg/config"
	"github.com/marmos91/snapserve/pkg/resolver"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration file",
	Long: `Validate the snapserve configuration file.

Checks for syntax errors, missing required fields, and invalid values.

Examples:
  # Validate default config
  snapserve config validate

  # Validate specific config file
  snapserve config validate --config ./snapserve.yaml`,
	RunE: runConfigValidate,
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	// Get config path from parent's persistent flag
	configPath, _ := cmd.Flags().GetString("config")

	cfg, err := config.MustLoad(configPath)
	if err != nil {
		return err
	}

	displayPath := configPath
	if displayPath == "" {
		displayPath = config.GetDefaultConfigPath()
	}

	printer := output.NewPrinter(cmd.OutOrStdout(), output.FormatTable, false)
	printer.Printf("Configuration file: %s\n", displayPath)
	printer.Success("Validation: OK")

	if warnings := configWarnings(cfg); len(warnings) > 0 {
		printer.Println("\nWarnings:")
		for _, w := range warnings {
			printer.Warning("  - " + w)
		}
	}

	exitAfter := cfg.Lifecycle.ExitAfter.String()
	if cfg.Lifecycle.ExitAfter == 0 {
		exitAfter = "disabled"
	}
	metricsPort := "disabled"
	if cfg.Metrics.Enabled {
		metricsPort = strconv.Itoa(cfg.Metrics.Port)
	}

	printer.Println("\nConfiguration summary:")
	return output.SimpleTable(printer.Writer(), [][2]string{
		{"  Root", cfg.Server.Root},
		{"  Port", strconv.Itoa(cfg.Server.Port)},
		{"  Index", cfg.Server.Index},
		{"  Containment", cfg.Server.Containment},
		{"  Exit after", exitAfter},
		{"  Metrics port", metricsPort},
		{"  Log level", cfg.Logging.Level},
	})
}

// configWarnings reports settings that are valid but likely unintended.
func configWarnings(cfg *config.Config) []string {
	var warnings []string

	info, err := os.Stat(cfg.Server.Root)
	switch {
	case err != nil:
		warnings = append(warnings, fmt.Sprintf("root %s is not accessible; every request will get 404", cfg.Server.Root))
	case !info.IsDir():
		warnings = append(warnings, fmt.Sprintf("root %s is not a directory", cfg.Server.Root))
	}

	if cfg.Server.Containment == string(resolver.ContainmentLegacy) {
		warnings = append(warnings, "legacy containment serves files outside the root for paths containing ..")
	}

	if cfg.Lifecycle.ExitAfter > 0 && cfg.Lifecycle.HookTimeout >= cfg.Lifecycle.ExitAfter {
		warnings = append(warnings, "hook_timeout is not shorter than exit_after")
	}

	return warnings
}
