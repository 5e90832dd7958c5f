package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"cubby/internal/config"
	"cubby/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	baseDir    string
}

func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)

	cfg := testsupport.NewConfig(t, opts...)

	configPath := filepath.Join(homeDir, ".config", "cubby", "config.toml")
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{
		cfg:        cfg,
		configPath: configPath,
		baseDir:    base,
	}
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()

	payload := struct {
		Paths struct {
			LogDir string `toml:"log_dir"`
		} `toml:"paths"`
		Sniffer struct {
			Enabled        bool   `toml:"enabled"`
			Binary         string `toml:"binary"`
			TimeoutSeconds int    `toml:"timeout_seconds"`
		} `toml:"sniffer"`
		Organize struct {
			Exclude []string `toml:"exclude"`
		} `toml:"organize"`
		Logging struct {
			Format        string `toml:"format"`
			Level         string `toml:"level"`
			RetentionDays int    `toml:"retention_days"`
		} `toml:"logging"`
	}{}
	payload.Paths.LogDir = cfg.Paths.LogDir
	payload.Sniffer.Enabled = cfg.Sniffer.Enabled
	payload.Sniffer.Binary = cfg.Sniffer.Binary
	payload.Sniffer.TimeoutSeconds = cfg.Sniffer.TimeoutSeconds
	payload.Organize.Exclude = append([]string{}, cfg.Organize.Exclude...)
	payload.Logging.Format = cfg.Logging.Format
	payload.Logging.Level = cfg.Logging.Level
	payload.Logging.RetentionDays = cfg.Logging.RetentionDays

	data, err := toml.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()

	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	full := args
	if configPath != "" {
		full = append([]string{"--config", configPath}, args...)
	}
	cmd.SetArgs(full)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
