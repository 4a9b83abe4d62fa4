package main

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds operator overrides loaded from kaizoarch.yaml in the base
// directory. Every field is optional; flags take precedence over the file,
// the file over built-in defaults.
type Config struct {
	BaseROM    string `yaml:"base_rom"`
	Flips      string `yaml:"flips"`
	CatalogURL string `yaml:"catalog_url"`
}

// loadConfig reads the config file at path. A missing file yields a zero
// Config, not an error; a malformed file is an error (silently ignoring a
// typo'd config would archive against the wrong ROM).
func loadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path from resolved base dir
	if errors.Is(err, os.ErrNotExist) {
		return Config{}, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// firstNonEmpty returns the first non-empty string, for flag > config >
// default precedence chains.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
