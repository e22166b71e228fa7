package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// EnvStatePath overrides DefaultPath.
const EnvStatePath = "YGGAUTH_CLI_STATE"

// DefaultPath returns the state file path: $YGGAUTH_CLI_STATE, or
// ~/.yggauth/cli.yaml.
func DefaultPath() string {
	if p := os.Getenv(EnvStatePath); p != "" {
		return p
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".yggauth", "cli.yaml")
	}
	return filepath.Join(homeDir, ".yggauth", "cli.yaml")
}

// Load reads the state at path. A missing file yields Default().
func Load(path string) (*CLIConfig, error) {
	if path == "" {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read cli state: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse cli state %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path with owner-only permissions, replacing the file
// atomically.
func Save(cfg *CLIConfig, path string) error {
	if path == "" {
		path = DefaultPath()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create cli state dir: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode cli state: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".cli-*.yaml")
	if err != nil {
		return fmt.Errorf("write cli state: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write cli state: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write cli state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write cli state: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("write cli state: %w", err)
	}
	return nil
}
