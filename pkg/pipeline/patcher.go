package pipeline

import (
	"context"
	"fmt"
	"os"

	"kaizoarch/pkg/archive"
)

// Patcher applies extracted patches against the base ROM by invoking the
// external patch-application binary (flips). The binary and base ROM are
// read-only shared inputs; only the output ROM slot is written.
type Patcher struct {
	Runner    CommandRunner
	FlipsPath string
	BaseROM   string
}

// NewPatcher creates a patcher that invokes flipsPath against baseROM.
func NewPatcher(runner CommandRunner, flipsPath, baseROM string) *Patcher {
	return &Patcher{Runner: runner, FlipsPath: flipsPath, BaseROM: baseROM}
}

// EnsurePatched produces entry.RomPath from entry.PatchPath and the base ROM.
// A no-op when the ROM is already present. A nonzero exit status or a missing
// output file is a PatchError; partial output is removed so the ROM slot only
// ever holds a fully patched file.
func (p *Patcher) EnsurePatched(ctx context.Context, entry archive.Entry) error {
	if entry.Status().Rom {
		return nil
	}

	// flips -a <patch> <clean rom> <output rom>
	_, err := p.Runner.Run(ctx, p.FlipsPath, "-a", entry.PatchPath, p.BaseROM, entry.RomPath)
	if err != nil {
		removeIfExists(entry.RomPath)
		return &PatchError{HackID: entry.HackID, HackName: entry.HackName, Err: err}
	}

	if info, err := os.Stat(entry.RomPath); err != nil || !info.Mode().IsRegular() || info.Size() == 0 {
		removeIfExists(entry.RomPath)
		return &PatchError{HackID: entry.HackID, HackName: entry.HackName,
			Err: fmt.Errorf("patcher exited cleanly but wrote no output ROM")}
	}
	return nil
}
