// Package config loads the process-wide ambient settings binframed starts
// from: the wire byte order (spec.md §6), a default text encoding name, and
// the logging verbosity. Apply acts on the byte order only; the encoding
// and log level are loaded but not applied, and a text-string codec with no
// encoding option uses UTF-8.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/binframe/binframe/wire"
)

// Config is the top-level document loaded from config.yaml.
type Config struct {
	ByteOrder      string `yaml:"byte_order"`
	DefaultEncoding string `yaml:"default_encoding"`
	LogLevel       string `yaml:"log_level"`
}

// Default returns the settings binframed runs with when no config file is
// present: network byte order, UTF-8, info-level logging.
func Default() Config {
	return Config{ByteOrder: "!", DefaultEncoding: "utf-8", LogLevel: "info"}
}

// Load reads and parses a YAML config document from path, falling back to
// Default() for any field it leaves unset.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
	}
	var doc Config
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Config{}, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	if doc.ByteOrder != "" {
		cfg.ByteOrder = doc.ByteOrder
	}
	if doc.DefaultEncoding != "" {
		cfg.DefaultEncoding = doc.DefaultEncoding
	}
	if doc.LogLevel != "" {
		cfg.LogLevel = doc.LogLevel
	}
	return cfg, nil
}

// Apply sets the process-wide wire byte order named by cfg.ByteOrder. Call
// once at startup, before any concurrent codec use begins (spec.md §5).
func (cfg Config) Apply() error {
	if len(cfg.ByteOrder) != 1 {
		return fmt.Errorf("config: byte_order must be a single character (one of ! > < = @), got %q", cfg.ByteOrder)
	}
	order, err := wire.ParseOrder(cfg.ByteOrder[0])
	if err != nil {
		return err
	}
	wire.SetGlobalOrder(order)
	return nil
}
