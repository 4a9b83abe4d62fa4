package main

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// runPreflightChecks verifies the two read-only inputs the patch stage needs:
// the clean base ROM and the flips executable. These are the only errors that
// halt an invocation; everything after preflight is recovered per hack or per
// section.
func runPreflightChecks(baseROM, flipsPath string) error {
	info, err := os.Stat(baseROM)
	if err != nil {
		return fmt.Errorf("base ROM not found at %s (pass --base-rom or set base_rom in %s)", baseROM, configFileName)
	}
	if !info.Mode().IsRegular() || info.Size() == 0 {
		return fmt.Errorf("base ROM at %s is not a usable file", baseROM)
	}

	if err := checkFlips(flipsPath); err != nil {
		return err
	}
	return nil
}

// checkFlips accepts either a path to the flips binary or a bare command name
// resolved through PATH.
func checkFlips(flipsPath string) error {
	if strings.ContainsRune(flipsPath, os.PathSeparator) {
		info, err := os.Stat(flipsPath)
		if err != nil {
			return fmt.Errorf("flips not found at %s (pass --flips or set flips in %s)", flipsPath, configFileName)
		}
		if info.IsDir() || info.Mode().Perm()&0o111 == 0 {
			return fmt.Errorf("flips at %s is not executable", flipsPath)
		}
		return nil
	}
	if _, err := exec.LookPath(flipsPath); err != nil {
		return fmt.Errorf("flips command %q not found in PATH (pass --flips or set flips in %s)", flipsPath, configFileName)
	}
	return nil
}
