// Package commands implements the snapserve CLI.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/marmos91/snapserve/cmd/snapserve/commands/config"
)

var (
	// Version information injected at build time.
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"

	// Global flags.
	cfgFile string
)

// rootCmd serves files when called without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "snapserve",
	Short: "snapserve - serve a directory over HTTP, then exit",
	Long: `snapserve serves static files from a directory over HTTP and exits
shortly after it starts listening. It is meant for scripted and headless use,
such as capturing a screenshot of a page together with the data it loads.

Running snapserve without a subcommand is the same as "snapserve serve".

Use "snapserve [command] --help" for more information about a command.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.NoArgs,
	RunE:          runServe,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

// GetRootCmd returns the root command for testing purposes.
func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $XDG_CONFIG_HOME/snapserve/config.yaml)")
	addServeFlags(rootCmd)

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(typesCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(config.Cmd)
	rootCmd.AddCommand(completionCmd)

	// Hide the default completion command (we provide our own)
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// GetConfigFile returns the config file path from the global flag.
func GetConfigFile() string {
	return cfgFile
}
