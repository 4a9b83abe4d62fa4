// Package archive maps catalog records to their on-disk archive slots and
// reports which pipeline stages are already complete for each one. Path
// derivation is pure and deterministic so repeated runs address the same
// files; stage checks are existence-only so idempotency probes stay cheap.
package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"kaizoarch/pkg/catalog"
)

// Subdirectory names under the store's base directory. Raw downloads and
// extracted patches are kept apart from patched ROM outputs, both namespaced
// by section.
const (
	zipsDir    = "zips"
	patchesDir = "patches"
	romsDir    = "roms"
)

// Store derives archive paths under a single base directory.
type Store struct {
	BaseDir string
}

// NewStore creates a store rooted at baseDir.
func NewStore(baseDir string) *Store {
	return &Store{BaseDir: baseDir}
}

// LayoutFor computes the three archive slots for a record. Pure path
// computation, no I/O. The file stem combines the sanitized display name with
// the catalog ID, so distinct IDs never collide even when names are identical.
func (s *Store) LayoutFor(section catalog.Section, rec catalog.HackRecord) Entry {
	stem := fmt.Sprintf("%s-%d", SanitizeName(rec.Name), rec.ID)
	return Entry{
		Section:   section,
		HackID:    rec.ID,
		HackName:  rec.Name,
		ZipPath:   filepath.Join(s.BaseDir, zipsDir, section.String(), stem+".zip"),
		PatchPath: filepath.Join(s.BaseDir, patchesDir, section.String(), stem+".bps"),
		RomPath:   filepath.Join(s.BaseDir, romsDir, section.String(), stem+".smc"),
	}
}

// EnsureDirs creates the three section directories if they do not exist.
func (s *Store) EnsureDirs(section catalog.Section) error {
	for _, dir := range []string{zipsDir, patchesDir, romsDir} {
		path := filepath.Join(s.BaseDir, dir, section.String())
		if err := os.MkdirAll(path, 0o750); err != nil {
			return fmt.Errorf("create %s: %w", path, err)
		}
	}
	return nil
}

// SectionManifestPath returns where a section's manifest file lives.
func (s *Store) SectionManifestPath(section catalog.Section) string {
	return filepath.Join(s.BaseDir, zipsDir, section.String(), "manifest.toml")
}

var (
	illegalChars = regexp.MustCompile(`[<>:"/\\|?*]`)
	squeezeRuns  = regexp.MustCompile(`[_\s]+`)
)

// SanitizeName strips characters that are illegal in file paths and collapses
// runs of whitespace and underscores to a single space. The result is safe as
// a path component but not guaranteed unique; callers append the catalog ID.
func SanitizeName(name string) string {
	name = illegalChars.ReplaceAllString(name, "_")
	name = strings.NewReplacer("\n", " ", "\r", " ").Replace(name)
	return strings.TrimSpace(squeezeRuns.ReplaceAllString(name, " "))
}
