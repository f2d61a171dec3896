package config

import (
	"github.com/spf13/cobra"

	"github.com/marmos91/snapserve/internal/cli/output"
	"github.com/marmos91/snapserve/pkg/config"
)

var showOutput string

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Display current configuration",
	Long: `Display the effective snapserve configuration, with defaults and
environment overrides applied.

By default outputs YAML format. Use --output to change format.

Examples:
  # Show default config as YAML
  snapserve config show

  # Show as JSON
  snapserve config show --output json

  # Show specific config file
  snapserve config show --config ./snapserve.yaml`,
	RunE: runConfigShow,
}

func init() {
	showCmd.Flags().StringVarP(&showOutput, "output", "o", "yaml", "Output format (yaml|json|toml)")
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	// Get config path from parent's persistent flag
	configPath, _ := cmd.Flags().GetString("config")

	cfg, err := config.MustLoad(configPath)
	if err != nil {
		return err
	}

	format, err := output.ParseFormat(showOutput)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch format {
	case output.FormatJSON:
		return output.PrintJSON(out, cfg)
	case output.FormatTOML:
		return output.PrintTOML(out, cfg)
	default:
		return output.PrintYAML(out, cfg)
	}
}
