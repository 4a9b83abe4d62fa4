package pipeline

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"kaizoarch/pkg/archive"
)

// patchExt is the patch format the external patcher applies.
const patchExt = ".bps"

// Sentinel causes for ExtractError, discriminable with errors.Is.
var (
	ErrNoPatchInZip         = errors.New("no patch file in archive")
	ErrMultiplePatchesInZip = errors.New("multiple patch files in archive")
)

// Extractor locates and extracts the single patch file inside a downloaded
// zip.
type Extractor struct{}

// EnsureExtracted extracts the patch from entry.ZipPath to entry.PatchPath.
// A no-op when the patch is already present. The zip must contain exactly one
// .bps member: zero or multiple candidates is ambiguous and rejected rather
// than guessed at, as is a corrupted archive.
func (Extractor) EnsureExtracted(entry archive.Entry) error {
	if entry.Status().Patch {
		return nil
	}

	zr, err := zip.OpenReader(entry.ZipPath)
	if err != nil {
		return &ExtractError{HackID: entry.HackID, HackName: entry.HackName, ZipPath: entry.ZipPath,
			Err: fmt.Errorf("open zip: %w", err)}
	}
	defer zr.Close()

	var candidate *zip.File
	for _, f := range zr.File {
		if !strings.HasSuffix(strings.ToLower(f.Name), patchExt) {
			continue
		}
		if candidate != nil {
			return &ExtractError{HackID: entry.HackID, HackName: entry.HackName, ZipPath: entry.ZipPath,
				Err: ErrMultiplePatchesInZip}
		}
		candidate = f
	}
	if candidate == nil {
		return &ExtractError{HackID: entry.HackID, HackName: entry.HackName, ZipPath: entry.ZipPath,
			Err: ErrNoPatchInZip}
	}

	if err := extractMember(candidate, entry.PatchPath); err != nil {
		return &ExtractError{HackID: entry.HackID, HackName: entry.HackName, ZipPath: entry.ZipPath, Err: err}
	}
	return nil
}

// extractMember copies one zip member to path, atomically.
func extractMember(f *zip.File, path string) error {
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("open member %s: %w", f.Name, err)
	}
	defer rc.Close()

	// Zip members can lie about their size; cap the copy well above any
	// plausible patch to avoid decompression bombs filling the disk.
	const maxPatchSize = 256 << 20
	return writeAtomic(path, io.LimitReader(rc, maxPatchSize))
}

// removeIfExists deletes path, ignoring a missing file.
func removeIfExists(path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "warning: remove %s: %v\n", path, err)
	}
}
