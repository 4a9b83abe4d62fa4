package main

import (
	"os"
	"path/filepath"
)

// Default file names under the base directory.
const (
	defaultBaseROM    = "clean.smc"
	defaultFlipsName  = "flips"
	runLogDBName      = "kaizoarch.db"
	configFileName    = "kaizoarch.yaml"
)

// Paths holds all resolved archiver file paths.
// Use ResolvePaths() to populate this struct with defaults + env overrides.
type Paths struct {
	BaseDir    string // archive root, KAIZOARCH_HOME or cwd
	DBPath     string // run log database, KAIZOARCH_DB_PATH
	ConfigPath string // optional YAML config in the base dir
}

// ResolvePaths returns all archiver paths, respecting env var overrides.
// Environment variables:
//   - KAIZOARCH_HOME: base directory for the archive (default: current dir)
//   - KAIZOARCH_DB_PATH: run log database (default: $KAIZOARCH_HOME/kaizoarch.db)
//
// baseDirFlag, when non-empty, takes precedence over KAIZOARCH_HOME.
func ResolvePaths(baseDirFlag string) (*Paths, error) {
	base := baseDirFlag
	if base == "" {
		base = os.Getenv("KAIZOARCH_HOME")
	}
	if base == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		base = cwd
	}
	abs, err := filepath.Abs(base)
	if err != nil {
		return nil, err
	}

	return &Paths{
		BaseDir:    abs,
		DBPath:     resolvePathWithEnv("KAIZOARCH_DB_PATH", abs, runLogDBName),
		ConfigPath: filepath.Join(abs, configFileName),
	}, nil
}

// resolvePathWithEnv returns the path from envKey if set, otherwise joins
// base + suffix.
func resolvePathWithEnv(envKey, base, suffix string) string {
	if v := os.Getenv(envKey); v != "" {
		return v
	}
	return filepath.Join(base, suffix)
}
