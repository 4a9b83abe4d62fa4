package archive

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Manifest is the persisted per-section record of what a run archived:
// one entry per catalog record processed, with its outcome and slot paths.
// It is rewritten wholesale after each run.
type Manifest struct {
	Section   string          `toml:"section"`
	UpdatedAt time.Time       `toml:"updated_at"`
	Hacks     []ManifestEntry `toml:"hacks"`
}

// ManifestEntry describes one archived hack in a section manifest.
type ManifestEntry struct {
	ID      int64  `toml:"id"`
	Name    string `toml:"name"`
	Authors string `toml:"authors,omitempty"`
	Outcome string `toml:"outcome"`
	Zip     string `toml:"zip,omitempty"`
	Patch   string `toml:"patch,omitempty"`
	Rom     string `toml:"rom,omitempty"`
}

// LoadManifest reads a section manifest. A missing file yields an empty
// manifest, not an error.
func LoadManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path derived from the store layout
	if errors.Is(err, os.ErrNotExist) {
		return Manifest{}, nil
	}
	if err != nil {
		return Manifest{}, fmt.Errorf("read manifest %s: %w", path, err)
	}
	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	return m, nil
}

// WriteManifest writes m to path atomically (temp file + rename) so a crash
// mid-write never leaves a truncated manifest.
func WriteManifest(path string, m Manifest) error {
	data, err := toml.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	tmp := path + ".partial"
	if err := os.WriteFile(tmp, data, 0o640); err != nil { //nolint:gosec // archive data, not secrets
		return fmt.Errorf("write manifest %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename manifest into place: %w", err)
	}
	return nil
}

// manifestDirMode is applied when a manifest's parent directory is missing.
const manifestDirMode = 0o750

// EnsureManifestDir creates path's parent directory if needed.
func EnsureManifestDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), manifestDirMode)
}
