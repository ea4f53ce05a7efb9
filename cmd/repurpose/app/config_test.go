package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/agentstation/repurpose/pkg/errors"
)

// TestLoadConfig verifies basic config loading and defaults.
func TestLoadConfig(t *testing.T) {
	config, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}
	if config.LogFormat == "" {
		t.Error("LogFormat not set to default")
	}
	if config.DataDir == "" {
		t.Error("DataDir not set to default")
	}
}

// TestConfig_EnvironmentVariables verifies environment variable loading.
func TestConfig_EnvironmentVariables(t *testing.T) {
	t.Setenv("DATA_DIR", "/data/transcript")
	t.Setenv("OUTPUT", "json")
	t.Setenv("USE_SAMPLE", "true")
	t.Setenv("LOG_LEVEL", "debug")

	config, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}
	if config.DataDir != "/data/transcript" {
		t.Errorf("DataDir = %s, want /data/transcript", config.DataDir)
	}
	if config.Output != "json" {
		t.Errorf("Output = %s, want json", config.Output)
	}
	if !config.UseSample {
		t.Error("USE_SAMPLE environment variable not loaded")
	}
	if config.EnvLogLevel != "debug" {
		t.Errorf("EnvLogLevel = %s, want debug", config.EnvLogLevel)
	}
	if config.LogLevel != "" {
		t.Errorf("LogLevel = %s, want empty (flag only)", config.LogLevel)
	}
}

// TestConfig_File verifies an explicit config file is read.
func TestConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "repurpose.yaml")
	body := "data_dir: /releases/2.0.0\nratings_file: assoc.csv\nmanifest: release.yaml\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}
	if config.DataDir != "/releases/2.0.0" {
		t.Errorf("DataDir = %s, want /releases/2.0.0", config.DataDir)
	}
	if config.RatingsFile != "assoc.csv" {
		t.Errorf("RatingsFile = %s, want assoc.csv", config.RatingsFile)
	}
	if config.ConfigFile != path {
		t.Errorf("ConfigFile = %s, want %s", config.ConfigFile, path)
	}
}

// TestConfig_MissingFile verifies an explicit config file must exist.
func TestConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if _, ok := err.(*errors.ConfigError); !ok {
		t.Fatalf("LoadConfig() error = %v, want ConfigError", err)
	}
}

// TestConfig_UpdateFromFlags verifies only changed flags override config.
func TestConfig_UpdateFromFlags(t *testing.T) {
	config := &Config{DataDir: "/from/env", Output: "yaml", UseSample: true}
	flags := &Flags{DataDir: "/from/flag", Format: "json"}

	changed := func(name string) bool { return name == "data-dir" }
	config.UpdateFromFlags(flags, changed)

	if config.DataDir != "/from/flag" {
		t.Errorf("DataDir = %s, want /from/flag", config.DataDir)
	}
	if config.UseSample {
		t.Error("--data-dir should turn off the sample")
	}
	if config.Output != "yaml" {
		t.Errorf("Output = %s, want yaml (flag not changed)", config.Output)
	}
}
