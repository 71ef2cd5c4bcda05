// Package config loads and saves the clokk configuration file.
// Configuration is a plain value: operations that change it return an
// updated copy and the caller persists it.
package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// FileName is the configuration file inside the clokk directory.
const FileName = "config.toml"

// Config holds user preferences consumed by the interface layers.
type Config struct {
	DefaultProject  string `toml:"default_project"`
	DefaultBillable bool   `toml:"default_billable"`
	DefaultCurrency string `toml:"default_currency"`
	WeekStart       string `toml:"week_start"`
	DateFormat      string `toml:"date_format"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		DefaultBillable: true,
		DefaultCurrency: "USD",
		WeekStart:       "monday",
		DateFormat:      "iso",
	}
}

// Dir returns the clokk directory: $CLOKK_DIR when set, otherwise
// ~/.clokk.
func Dir() (string, error) {
	if dir := os.Getenv("CLOKK_DIR"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".clokk"), nil
}

// Path returns the configuration file path.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName), nil
}

// Load reads the configuration at path, falling back to defaults for
// a missing file and for any key the file leaves out.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Save writes the configuration to path, creating the directory if
// needed.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
