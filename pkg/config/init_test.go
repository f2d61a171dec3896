package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestInitConfig_Success(t *testing.T) {
	// XDG_CONFIG_HOME works on every OS, unlike HOME.
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	configPath, err := InitConfig(false)
	if err != nil {
		t.Fatalf("InitConfig failed: %v", err)
	}

	content, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("Failed to read config file: %v", err)
	}

	contentStr := string(content)
	for _, section := range []string{
		"# snapserve Configuration File",
		"logging:",
		"telemetry:",
		"metrics:",
		"server:",
		"lifecycle:",
		"exit_after: 100ms",
		"containment: strict",
	} {
		if !strings.Contains(contentStr, section) {
			t.Errorf("Config file missing %q", section)
		}
	}

	var cfg Config
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		t.Fatalf("Generated config is not valid YAML: %v", err)
	}
	if cfg.Server.Root != "" {
		t.Errorf("Expected empty root in sample, got %q", cfg.Server.Root)
	}
}

func TestInitConfig_AlreadyExists(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	if _, err := InitConfig(false); err != nil {
		t.Fatalf("First InitConfig failed: %v", err)
	}

	_, err := InitConfig(false)
	if err == nil {
		t.Fatal("Expected error when config already exists")
	}
	if !strings.Contains(err.Error(), "already exists") {
		t.Errorf("Expected 'already exists' error, got: %v", err)
	}
}

func TestInitConfigToPath_Force(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "nested", "config.yaml")

	if err := InitConfigToPath(configPath, false); err != nil {
		t.Fatalf("InitConfigToPath failed: %v", err)
	}
	if err := os.WriteFile(configPath, []byte("custom"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := InitConfigToPath(configPath, true); err != nil {
		t.Fatalf("InitConfigToPath with force failed: %v", err)
	}

	content, _ := os.ReadFile(configPath)
	if string(content) == "custom" {
		t.Error("Expected config to be overwritten")
	}
}

func TestWriteSampleConfig_Custom(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	cfg := SampleConfig()
	cfg.Server.Port = 9999
	cfg.Server.Root = "/srv/www"

	if err := WriteSampleConfig(configPath, cfg, false); err != nil {
		t.Fatalf("WriteSampleConfig failed: %v", err)
	}

	loaded, err := Load(configPath)
	if err != nil {
		t.Fatalf("Failed to load written config: %v", err)
	}
	if loaded.Server.Port != 9999 || loaded.Server.Root != "/srv/www" {
		t.Errorf("Unexpected server section: %+v", loaded.Server)
	}
}

func TestGeneratedConfigIsLoadable(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := InitConfigToPath(configPath, false); err != nil {
		t.Fatalf("InitConfigToPath failed: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Generated config is not loadable: %v", err)
	}
	if cfg.Server.Root != DefaultRoot() {
		t.Errorf("Expected root to default to %q, got %q", DefaultRoot(), cfg.Server.Root)
	}
}
