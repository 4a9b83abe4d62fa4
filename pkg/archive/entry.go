package archive

import (
	"os"

	"kaizoarch/pkg/catalog"
)

// Entry is the on-disk projection of one catalog record: three independently
// present-or-absent file slots. The pipeline only ever appends stages; entries
// are never deleted (the archive is permanent).
type Entry struct {
	Section  catalog.Section
	HackID   int64
	HackName string

	ZipPath   string
	PatchPath string
	RomPath   string
}

// StageStatus reports which pipeline stages are complete for an entry.
// Completion is monotonic: Patch implies Zip, Rom implies Patch.
type StageStatus struct {
	Zip   bool
	Patch bool
	Rom   bool
}

// Status checks the three slots on disk. Existence only, no content
// validation.
func (e Entry) Status() StageStatus {
	return StageStatus{
		Zip:   fileExists(e.ZipPath),
		Patch: fileExists(e.PatchPath),
		Rom:   fileExists(e.RomPath),
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
