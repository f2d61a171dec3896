package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const sampleHeader = `# snapserve Configuration File
#
# Every value can be overridden with an environment variable named
# SNAPSERVE_<SECTION>_<KEY>, for example SNAPSERVE_SERVER_PORT=9000.
#
# server.root left empty serves the directory containing the executable.
# lifecycle.exit_after set to 0 keeps the server running until it is
# interrupted.

`

// InitConfig writes a sample configuration to the default location and
// returns its path. An existing file is only replaced when force is true.
func InitConfig(force bool) (string, error) {
	path := GetDefaultConfigPath()
	if err := InitConfigToPath(path, force); err != nil {
		return "", err
	}
	return path, nil
}

// InitConfigToPath writes the default sample configuration to path.
func InitConfigToPath(path string, force bool) error {
	return WriteSampleConfig(path, SampleConfig(), force)
}

// SampleConfig returns the defaults with a portable (empty) root.
func SampleConfig() *Config {
	cfg := GetDefaultConfig()
	cfg.Server.Root = ""
	return cfg
}

// WriteSampleConfig writes cfg as commented YAML.
func WriteSampleConfig(path string, cfg *Config, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("configuration file already exists at %s (use --force to overwrite)", path)
		}
	}

	body, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return writeConfigFile(path, append([]byte(sampleHeader), body...))
}
