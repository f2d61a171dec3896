package commands

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/marmos91/snapserve/internal/cli/output"
	"github.com/marmos91/snapserve/internal/cli/prompt"
	"github.com/marmos91/snapserve/pkg/config"
	"github.com/marmos91/snapserve/pkg/resolver"
)

var (
	initForce       bool
	initInteractive bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a sample configuration file",
	Long: `Initialize a sample snapserve configuration file.

By default, the configuration file is created at $XDG_CONFIG_HOME/snapserve/config.yaml.
Use --config to specify a custom path.

Examples:
  # Initialize with default location
  snapserve init

  # Initialize with custom path
  snapserve init --config ./snapserve.yaml

  # Answer a few questions instead of writing the defaults
  snapserve init --interactive

  # Force overwrite existing config
  snapserve init --force`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Force overwrite existing config file")
	initCmd.Flags().BoolVarP(&initInteractive, "interactive", "i", false, "Prompt for the main settings")
}

func runInit(cmd *cobra.Command, args []string) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), output.FormatTable, !noColor())

	var (
		configPath string
		err        error
	)
	if initInteractive {
		configPath, err = initInteractively()
		if prompt.IsAborted(err) {
			printer.Warning("Aborted, nothing written")
			return nil
		}
	} else if configFile := GetConfigFile(); configFile != "" {
		// Use custom path
		configPath = configFile
		err = config.InitConfigToPath(configFile, initForce)
	} else {
		// Use default path
		configPath, err = config.InitConfig(initForce)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	printer.Success(fmt.Sprintf("Configuration file created at: %s", configPath))
	printer.Println("\nNext steps:")
	printer.Println("  1. Edit the configuration file to customize your setup")
	printer.Println("  2. Start the server with: snapserve serve")
	printer.Printf("  3. Or specify custom config: snapserve serve --config %s\n", configPath)

	return nil
}

// initInteractively asks for the main settings and writes them to the
// configured or default path.
func initInteractively() (string, error) {
	configPath := GetConfigFile()
	if configPath == "" {
		configPath = config.GetDefaultConfigPath()
	}

	force, err := askOverwrite(configPath, initForce)
	if err != nil {
		return "", err
	}

	cfg := config.SampleConfig()
	if err := askSettings(cfg); err != nil {
		return "", err
	}

	if err := config.WriteSampleConfig(configPath, cfg, force); err != nil {
		return "", err
	}
	return configPath, nil
}

// askOverwrite confirms replacing an existing file. It returns force
// unchanged when there is nothing to overwrite.
func askOverwrite(path string, force bool) (bool, error) {
	if force {
		return true, nil
	}
	if _, err := os.Stat(path); err != nil {
		return false, nil
	}
	ok, err := prompt.Confirm(fmt.Sprintf("%s already exists. Overwrite", path))
	if err != nil {
		return false, err
	}
	if !ok {
		return false, prompt.ErrAborted
	}
	return true, nil
}

func askSettings(cfg *config.Config) error {
	port, err := prompt.InputPort("Port", cfg.Server.Port)
	if err != nil {
		return err
	}
	cfg.Server.Port = port

	root, err := prompt.Input("Root directory (empty: executable directory)", cfg.Server.Root)
	if err != nil {
		return err
	}
	if root != "" {
		if err := prompt.ValidateDirectory(root); err != nil {
			return err
		}
	}
	cfg.Server.Root = root

	containment, err := prompt.Select("Path containment", []prompt.SelectOption{
		{
			Label:       string(resolver.ContainmentStrict),
			Value:       string(resolver.ContainmentStrict),
			Description: "Answer 404 for paths that leave the root directory",
		},
		{
			Label:       string(resolver.ContainmentLegacy),
			Value:       string(resolver.ContainmentLegacy),
			Description: "Join request paths to the root without checks",
		},
	})
	if err != nil {
		return err
	}
	cfg.Server.Containment = containment

	exitAfter, err := prompt.InputDuration("Exit after (0 keeps serving)", cfg.Lifecycle.ExitAfter)
	if err != nil {
		return err
	}
	cfg.Lifecycle.ExitAfter = exitAfter

	enableMetrics, err := prompt.Confirm("Expose Prometheus metrics on port " + strconv.Itoa(cfg.Metrics.Port))
	if err != nil {
		return err
	}
	cfg.Metrics.Enabled = enableMetrics

	return nil
}
